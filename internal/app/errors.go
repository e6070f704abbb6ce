package app

import (
	"errors"
	"fmt"
)

// ErrInvalidUTF8 is the cause reported when an input unit is not valid UTF-8 text.
var ErrInvalidUTF8 = errors.New("stream did not contain valid UTF-8")

// ErrorKind classifies collection failures.
type ErrorKind int

const (
	// OpenFile: a file could not be opened or created
	OpenFile ErrorKind = iota
	// ReadFile: a file could not be read
	ReadFile
	// ReadDir: a directory could not be listed
	ReadDir
	// ReadStdIn: standard input could not be read
	ReadStdIn
	// NotFileNorDir: the path exists but is neither a regular file nor a directory
	NotFileNorDir
	// InvalidPath: the path does not exist
	InvalidPath
)

// String returns the string representation of the error kind
func (k ErrorKind) String() string {
	switch k {
	case OpenFile:
		return "OpenFile"
	case ReadFile:
		return "ReadFile"
	case ReadDir:
		return "ReadDir"
	case ReadStdIn:
		return "ReadStdIn"
	case NotFileNorDir:
		return "NotFileNorDir"
	case InvalidPath:
		return "InvalidPath"
	default:
		return "Unknown"
	}
}

// Error is returned by every failing collection step.
// Path is empty for standard input; Err is nil for NotFileNorDir.
type Error struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case OpenFile:
		return fmt.Sprintf("failed to open file: %s. io error: %v", e.Path, e.Err)
	case ReadFile:
		return fmt.Sprintf("failed to read file: %s. io error: %v", e.Path, e.Err)
	case ReadDir:
		return fmt.Sprintf("failed to read directory: %s. io error: %v", e.Path, e.Err)
	case ReadStdIn:
		return fmt.Sprintf("failed to read from stdin. io error: %v", e.Err)
	case NotFileNorDir:
		return fmt.Sprintf("path %s is not a directory nor a file", e.Path)
	case InvalidPath:
		return fmt.Sprintf("invalid path: %s", e.Path)
	default:
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
