package utils

import (
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

type ErrorKind int

const (
	KindUnhandled ErrorKind = iota
	KindUnauthorized
	KindInvalidInput
	KindConflict
	KindUpstream
	KindStore
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindInvalidInput:
		return "invalid_input"
	case KindConflict:
		return "conflict"
	case KindUpstream:
		return "upstream_failure"
	case KindStore:
		return "store_failure"
	default:
		return "unhandled"
	}
}

// Status maps an error kind to the HTTP status written to the client.
func (k ErrorKind) Status() int {
	switch k {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// AppError carries the kind used by Handle to pick the response status.
// Message is what the client sees; Err is the cause and is only logged.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func ErrUnauthorized(message string) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: message}
}

func ErrInvalidInput(message string) *AppError {
	return &AppError{Kind: KindInvalidInput, Message: message}
}

func ErrConflict(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

// ErrUpstream reports a movie catalog failure. The cause's text is surfaced
// to the client, matching the store failure envelope.
func ErrUpstream(err error) *AppError {
	return &AppError{Kind: KindUpstream, Message: err.Error(), Err: err}
}

func ErrStore(err error) *AppError {
	return &AppError{Kind: KindStore, Message: err.Error(), Err: err}
}

// KindOf returns the kind of the first AppError in err's chain.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnhandled
}

// HandlerFunc is an http handler that reports failure by returning an error.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handle adapts fn to http.HandlerFunc. Any returned error is written as
// {"error": message} with the status of its kind.
func Handle(log *zap.Logger, fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			WriteError(w, r, log, err)
		}
	}
}

// WriteError is the terminal translation from error to response.
func WriteError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	kind := KindUnhandled
	message := err.Error()

	var appErr *AppError
	if errors.As(err, &appErr) {
		kind = appErr.Kind
		message = appErr.Message
	}

	fields := []zap.Field{
		zap.Error(err),
		zap.String("kind", kind.String()),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	}
	if kind.Status() >= http.StatusInternalServerError {
		log.Error("Request failed", fields...)
	} else {
		log.Warn("Request rejected", fields...)
	}

	ResponseError(w, kind.Status(), message)
}
