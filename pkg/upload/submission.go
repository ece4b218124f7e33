// Package upload implements the ingestion pipeline: multipart parsing into
// scratch space, pre-publish validation, and publishing with deferred
// deletion.
package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/tmpstash/tmpstash/pkg/logging"
	"github.com/tmpstash/tmpstash/pkg/ttl"
)

// Form field names accepted by the ingestion endpoint.
const (
	FieldFile       = "file"
	FieldIdentifier = "identifier"
	FieldTTLValue   = "ttl_value"
	FieldTTLUnit    = "ttl_unit"
	FieldPassword   = "password"
)

// Defaults applied when a submission omits the retention fields.
const (
	DefaultTTLValue uint64 = 1
	DefaultTTLUnit         = ttl.UnitHours
)

const (
	scratchDirPrefix = "tmpstash-"
	unnamedFile      = "unnamed"

	// Text fields are read fully into memory, so cap them.
	maxTextFieldBytes = 4096
)

// newSubmissionToken names the per-submission scratch directory. Swappable
// for deterministic tests.
var newSubmissionToken = func() string {
	return uuid.New().String()
}

// StagedFile is one uploaded file parked in scratch space ahead of publishing.
type StagedFile struct {
	OriginalName string
	Path         string
}

// Submission is the decoded content of one multipart request. It is owned by
// a single request goroutine and discarded once the response is written.
type Submission struct {
	Files      []*StagedFile
	Identifier string
	TTLValue   uint64
	TTLUnit    string
	Password   string

	scratchDir string
}

// ScratchDir returns the submission's private staging directory.
func (s *Submission) ScratchDir() string {
	return s.scratchDir
}

// Discard removes the submission's scratch directory and everything still in
// it. Safe to call when nothing was staged.
func (s *Submission) Discard(fs afero.Fs, logger *logging.Logger) {
	if s.scratchDir == "" {
		return
	}
	if err := fs.RemoveAll(s.scratchDir); err != nil {
		logger.Warn("failed to remove scratch dir", "dir", s.scratchDir, "error", err)
	}
}

// ParseSubmission streams parts from mr, staging file parts under a
// uuid-suffixed directory inside scratchRoot and decoding the text fields.
// File bytes are copied chunk by chunk, so memory stays bounded regardless of
// file size. On error the partly staged directory is removed and no
// submission is returned.
func ParseSubmission(fs afero.Fs, mr *multipart.Reader, scratchRoot string, logger *logging.Logger) (*Submission, error) {
	sub := &Submission{
		TTLValue:   DefaultTTLValue,
		TTLUnit:    DefaultTTLUnit,
		scratchDir: filepath.Join(scratchRoot, scratchDirPrefix+newSubmissionToken()),
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			sub.Discard(fs, logger)
			return nil, fmt.Errorf("read multipart part: %w", err)
		}

		name := part.FormName()
		if name == FieldFile {
			err = stageFilePart(fs, sub, part, logger)
			part.Close()
			if err != nil {
				sub.Discard(fs, logger)
				return nil, err
			}
			continue
		}

		value, err := readTextField(part)
		part.Close()
		if err != nil {
			sub.Discard(fs, logger)
			return nil, fmt.Errorf("read form field %q: %w", name, err)
		}

		switch name {
		case FieldIdentifier:
			sub.Identifier = value
		case FieldTTLValue:
			magnitude, convErr := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
			if convErr != nil {
				logger.Warn("ignoring malformed ttl value", "value", value)
				continue
			}
			sub.TTLValue = magnitude
		case FieldTTLUnit:
			sub.TTLUnit = value
		case FieldPassword:
			sub.Password = value
		default:
			logger.Debug("ignoring unknown form field", "field", name)
		}
	}

	return sub, nil
}

// stageFilePart copies one file part into the submission's scratch directory.
func stageFilePart(fs afero.Fs, sub *Submission, part *multipart.Part, logger *logging.Logger) error {
	name := part.FileName()
	if name == "" {
		name = unnamedFile
	}
	// Client-supplied names never carry directories into scratch space.
	name = filepath.Base(name)

	if err := fs.MkdirAll(sub.scratchDir, 0o755); err != nil {
		return fmt.Errorf("create scratch dir: %w", err)
	}

	dest := filepath.Join(sub.scratchDir, name)
	out, err := fs.Create(dest)
	if err != nil {
		return fmt.Errorf("create staged file %q: %w", name, err)
	}

	written, err := io.Copy(out, part)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("stage %q: %w", name, err)
	}

	logger.Debug("staged upload", "file", name, "bytes", written)
	sub.Files = append(sub.Files, &StagedFile{OriginalName: name, Path: dest})
	return nil
}

// readTextField decodes a non-file part as text, bounded by maxTextFieldBytes.
func readTextField(part *multipart.Part) (string, error) {
	data, err := io.ReadAll(io.LimitReader(part, maxTextFieldBytes+1))
	if err != nil {
		return "", err
	}
	if len(data) > maxTextFieldBytes {
		return "", fmt.Errorf("field exceeds %d bytes", maxTextFieldBytes)
	}
	return string(data), nil
}
