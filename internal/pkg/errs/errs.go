package errs

import (
	"fmt"
	"net/http"
	"strings"

	"nexora/internal/pkg/logx"
)

// Kind classifies an error by who has to act on it. Responses do not expose
// the kind, but logs do, so operators can tell client mistakes from
// deployment problems.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindConfiguration Kind = "configuration"
	KindCrypto        Kind = "crypto"
	KindAuth          Kind = "auth"
	KindInternal      Kind = "internal"
)

// CustomError is the error value handlers respond with.
type CustomError struct {
	// Code is the application error code.
	Code int

	// Kind is the error classification used for logging.
	Kind Kind

	// Message is the client-facing description.
	Message string

	// Status is the HTTP status code of the response.
	Status int
}

// Error implements the error interface.
func (e CustomError) Error() string {
	return fmt.Sprintf("error code %d (%s, HTTP %d): %s", e.Code, e.Kind, e.Status, e.Message)
}

// NewError builds a CustomError from the template registered for code.
// details are applied to the message with fmt.Sprintf when the template has
// a verb; for ErrUnknown a leading error detail is logged instead.
// Unregistered codes yield ErrUnknown.
func NewError(code int, details ...any) *CustomError {
	templateErr, ok := errorMap[code]
	if !ok {
		logx.Error(
			fmt.Errorf("unknown error code %d", code),
			"Unknown error code requested",
			"requested_code", code,
		)
		templateErr = errorMap[ErrUnknown]
	}

	customErr := templateErr
	if customErr.Status == 0 {
		customErr.Status = http.StatusBadRequest
	}

	switch {
	case len(details) == 0:
	case customErr.Code == ErrUnknown:
		if originalErr, ok := details[0].(error); ok {
			logx.Error(originalErr, "Handling ErrUnknown with underlying error")
		}
	case strings.Contains(customErr.Message, "%"):
		customErr.Message = fmt.Sprintf(customErr.Message, details...)
	default:
		logx.Warn("Details provided for error without formatting placeholders; details ignored.", "code", code)
	}

	return &customErr
}
