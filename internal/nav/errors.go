package nav

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyPath     = errors.New("empty path")
	ErrPathNotFound  = errors.New("folder not found")
	ErrNodeNotInTree = errors.New("folder not found in tree")
	ErrRevealTimeout = errors.New("tree view did not reveal folder in time")
)

// Error records a failed navigation step.
type Error struct {
	Op   string // "validate", "resolve", "reveal", "navigate"
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return e.Op + ": " + e.Err.Error()
	}
	return fmt.Sprintf("%s %q: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// UserMessage turns a navigation error into the single line shown to the user.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyPath):
		return "Enter a path."
	case errors.Is(err, ErrPathNotFound):
		return "Folder not found."
	case errors.Is(err, ErrNodeNotInTree):
		return "Folder not found in tree."
	case errors.Is(err, ErrRevealTimeout):
		return "Folder opened, but the tree could not scroll to it."
	}
	var navErr *Error
	if errors.As(err, &navErr) {
		return "Error: " + navErr.Err.Error()
	}
	return "Error: " + err.Error()
}
