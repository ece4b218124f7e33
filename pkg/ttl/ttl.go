// Package ttl converts user-supplied retention values into seconds and
// durations used by the upload pipeline.
package ttl

import (
	"math"
	"time"
)

// Recognized unit tokens for retention fields.
const (
	UnitMinutes = "minutes"
	UnitHours   = "hours"
)

const (
	secondsPerMinute uint64 = 60
	secondsPerHour   uint64 = 3600
)

// Resolve converts a retention magnitude and unit token into seconds.
// "minutes" multiplies by 60; "hours" and any unrecognized token multiply by
// 3600, so a garbled unit keeps the object longer instead of expiring it
// early. The multiplication saturates at math.MaxUint64.
func Resolve(magnitude uint64, unit string) uint64 {
	factor := secondsPerHour
	if unit == UnitMinutes {
		factor = secondsPerMinute
	}
	return saturatingMul(magnitude, factor)
}

// Duration converts TTL seconds into a time.Duration, clamping at the maximum
// representable duration rather than overflowing.
func Duration(seconds uint64) time.Duration {
	if seconds > math.MaxInt64/uint64(time.Second) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(seconds) * time.Second
}

func saturatingMul(a, b uint64) uint64 {
	if a == 0 || b == 0 {
		return 0
	}
	if a > math.MaxUint64/b {
		return math.MaxUint64
	}
	return a * b
}
