package upload

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// Validation outcomes surfaced verbatim by the HTTP layer.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNoFile       = errors.New("no file uploaded")
)

// Validate enforces the pre-publish gate: the shared secret must match, a
// lone staged file is renamed to the requested identifier, and at least one
// file must be staged. All of it runs before any backing store call.
func Validate(fs afero.Fs, sub *Submission, expectedSecret string) error {
	if sub.Password != expectedSecret {
		return ErrUnauthorized
	}

	if sub.Identifier != "" && len(sub.Files) == 1 {
		if err := applyIdentifier(fs, sub.Files[0], sub.Identifier); err != nil {
			return err
		}
	}

	if len(sub.Files) == 0 {
		return ErrNoFile
	}

	return nil
}

// applyIdentifier renames the staged file inside scratch space so the
// published key carries the requested identifier. The original extension is
// preserved; an identifier with no matching extension stays bare.
func applyIdentifier(fs afero.Fs, file *StagedFile, identifier string) error {
	newName := filepath.Base(identifier)
	if ext := filepath.Ext(file.OriginalName); ext != "" {
		newName += ext
	}

	newPath := filepath.Join(filepath.Dir(file.Path), newName)
	if newPath == file.Path {
		return nil
	}

	if err := fs.Rename(file.Path, newPath); err != nil {
		return fmt.Errorf("rename staged file to %q: %w", newName, err)
	}
	file.Path = newPath
	return nil
}
