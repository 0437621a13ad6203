package classify

import (
	"errors"
	"fmt"
)

// StatusError is returned when the classification service responds with a
// non-2xx HTTP status. The response body is not inspected.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("classification service status %d", e.StatusCode)
}

// IsStatus reports whether err is a StatusError.
func IsStatus(err error) bool {
	var e *StatusError
	return errors.As(err, &e)
}

// InvalidResultError is returned when a "success" payload fails validation.
type InvalidResultError struct {
	Reason string
}

func (e *InvalidResultError) Error() string {
	return "invalid classification result: " + e.Reason
}

// IsInvalidResult reports whether err is an InvalidResultError.
func IsInvalidResult(err error) bool {
	var e *InvalidResultError
	return errors.As(err, &e)
}

func invalidf(format string, args ...any) error {
	return &InvalidResultError{Reason: fmt.Sprintf(format, args...)}
}
