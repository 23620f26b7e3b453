package generator

import (
	"errors"
	"fmt"
)

// ErrMissingName is returned when a request lacks the name or alias the
// scaffold file would be named after.
var ErrMissingName = errors.New("required name or alias is missing")

// ConflictError reports a target that already exists when overwrite was not
// requested. It accompanies the SkippedExists outcome; callers decide whether
// it is a warning or a hard failure.
type ConflictError struct {
	Path string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("refusing to overwrite existing file: %s", e.Path)
}

// PathEscapeError reports a derived path resolving outside the permitted
// root. Always fatal: it indicates a bug or malicious input.
type PathEscapeError struct {
	Root string
	Path string
}

func (e *PathEscapeError) Error() string {
	return fmt.Sprintf("path %q escapes root %s", e.Path, e.Root)
}

// DirectoryCreateError reports a failure creating a directory. Fatal for the
// operation that needed it.
type DirectoryCreateError struct {
	Dir string
	Err error
}

func (e *DirectoryCreateError) Error() string {
	return fmt.Sprintf("creating directory %s: %v", e.Dir, e.Err)
}

func (e *DirectoryCreateError) Unwrap() error {
	return e.Err
}
