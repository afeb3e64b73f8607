package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Kind is the caller-facing error category. It is the only classification that
// crosses the API boundary.
type Kind string

const (
	Unauthenticated    Kind = "UNAUTHENTICATED"
	InvalidArgument    Kind = "INVALID_ARGUMENT"
	FailedPrecondition Kind = "FAILED_PRECONDITION"
	Internal           Kind = "INTERNAL"
)

// Error is a categorized error returned to API callers.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New creates a categorized error with a caller-facing message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates a categorized error with a formatted caller-facing message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a categorized error that keeps the cause for logs while only
// exposing kind and message to the caller.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// From returns err as an *Error, funneling anything uncategorized into
// INTERNAL with the original message.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return &Error{Kind: Internal, Message: err.Error()}
}

// httpStatus maps an error kind to its HTTP status code.
func httpStatus(kind Kind) int {
	switch kind {
	case Unauthenticated:
		return http.StatusUnauthorized
	case InvalidArgument:
		return http.StatusBadRequest
	case FailedPrecondition:
		return http.StatusPreconditionFailed
	default:
		return http.StatusInternalServerError
	}
}

type errorBody struct {
	Code    Kind   `json:"code"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Success bool      `json:"success"`
	Error   errorBody `json:"error"`
}

// Write writes err as a JSON error envelope with the mapped HTTP status.
// Only kind and message cross the boundary; the cause stays in the logs.
func Write(w http.ResponseWriter, err error) {
	appErr := From(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus(appErr.Kind))
	body := errorEnvelope{Success: false, Error: errorBody{Code: appErr.Kind, Message: appErr.Message}}
	if encErr := json.NewEncoder(w).Encode(body); encErr != nil {
		log.Error().Err(encErr).Msg("Failed to encode error envelope")
	}
}
