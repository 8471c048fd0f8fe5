package render

import (
	"errors"
	"fmt"
)

var (
	ErrDownloadFailed    = errors.New("video download failed")
	ErrTranscodeFailed   = errors.New("video conversion failed")
	ErrSizeBoundExceeded = errors.New("file too large after compression")
)

// Error ties a failure to one of the render error kinds.
type Error struct {
	Kind error
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the error kind so callers can use errors.Is with the sentinels.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func newError(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}
