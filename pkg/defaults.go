package pkg

import "time"

// Package pkg provides default values shared across the tmpstash code-base.
// It serves as the single point of truth for every configurable constant so
// that the CLI flags, the environment layer, and the upload server stay
// consistent with each other.

// Upload server defaults
const (
	DefaultHostIP         = "0.0.0.0"
	DefaultPortNum        = uint16(8080)
	DefaultMaxRequestBody = int64(1 << 30)
	DefaultMaxAge         = 12 * time.Hour
)

// Storage defaults
const (
	DefaultPresignExpirySeconds = uint64(3600)
	DefaultListLimit            = int32(100)
)
