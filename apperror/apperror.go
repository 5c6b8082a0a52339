package apperror

import (
	"net/http"
	"strings"
)

// ErrorType classifies an API error for clients.
type ErrorType string

const (
	TypeValidationError ErrorType = "ValidationError"
	TypeNotFound        ErrorType = "NotFound"
	TypeServerError     ErrorType = "ServerError"
	TypeFatal           ErrorType = "Fatal"
)

// Error is the generic error envelope every failed request resolves to.
// It carries a title/message/type triple plus the HTTP status to respond with;
// internal detail (stack traces, wrapped causes) stays server-side.
type Error struct {
	Type     ErrorType `json:"type"`
	Title    string    `json:"title"`
	Messages []string  `json:"messages"`

	status int
	cause  error
}

func New(errType ErrorType, title string, status int, messages ...string) *Error {
	return &Error{
		Type:     errType,
		Title:    title,
		Messages: messages,
		status:   status,
	}
}

// Wrap attaches an underlying cause without exposing it in the envelope.
func (e *Error) Wrap(cause error) *Error {
	e.cause = cause
	return e
}

func (e *Error) Error() string {
	if len(e.Messages) == 0 {
		return e.Title
	}
	return e.Title + ": " + strings.Join(e.Messages, "; ")
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Status returns the HTTP status code for the envelope, defaulting to 500.
func (e *Error) Status() int {
	if e.status == 0 {
		return http.StatusInternalServerError
	}
	return e.status
}

// Conflict reports a client-correctable uniqueness conflict.
func Conflict(title string, messages ...string) *Error {
	return New(TypeValidationError, title, http.StatusConflict, messages...)
}

// Fatal reports an unexpected failure surfaced as a generic server error.
func Fatal(title string, messages ...string) *Error {
	return New(TypeFatal, title, http.StatusInternalServerError, messages...)
}
