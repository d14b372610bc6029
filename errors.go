package doctext

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EENCODING    = "encoding_undetermined"     // no candidate encoding reached the confidence threshold
	EEXHAUSTED   = "all_strategies_exhausted"  // every strategy for the detected format failed
	EINTERNAL    = "internal"                  // unexpected internal failure
	EINVALID     = "invalid"                   // invalid input or configuration
	EUNAVAILABLE = "unavailable"               // resource saturated, retry later
	EUNSUPPORTED = "unsupported_format"        // no declared or sniffed format matches
)

// Error represents an application-specific error. Errors can be unwrapped
// by the caller to extract the code and message.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable message.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("doctext error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors return the raw error text.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
