package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an error independently of the HTTP status it maps to.
// The same kind can surface with different codes depending on the endpoint
// (e.g. an already-saved vaga is a conflict answered with 400).
type Kind string

const (
	KindValidation   Kind = "ValidationError"
	KindConflict     Kind = "ConflictError"
	KindUnauthorized Kind = "UnauthorizedError"
	KindNotFound     Kind = "NotFoundError"
	KindForbidden    Kind = "ForbiddenError"
	KindRateLimited  Kind = "RateLimitError"
	KindInternal     Kind = "InternalError"
)

type AppError struct {
	Kind    Kind     `json:"kind"`
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
	Err     error    `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithCode returns a copy of the error answered with another HTTP status.
func (e *AppError) WithCode(code int) *AppError {
	cp := *e
	cp.Code = code
	return &cp
}

func New(kind Kind, code int, message string, err error) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func Validation(message string, details ...string) *AppError {
	e := New(KindValidation, http.StatusBadRequest, message, nil)
	e.Details = details
	return e
}

func BadRequest(message string) *AppError {
	return New(KindValidation, http.StatusBadRequest, message, nil)
}

func Conflict(message string) *AppError {
	return New(KindConflict, http.StatusConflict, message, nil)
}

func Unauthorized(message string) *AppError {
	return New(KindUnauthorized, http.StatusUnauthorized, message, nil)
}

func Forbidden(message string) *AppError {
	return New(KindForbidden, http.StatusForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return New(KindNotFound, http.StatusNotFound, message, nil)
}

func TooManyRequests(message string) *AppError {
	return New(KindRateLimited, http.StatusTooManyRequests, message, nil)
}

func Internal(err error) *AppError {
	return New(KindInternal, http.StatusInternalServerError, "Erro interno do servidor", err)
}

// KindOf reports the kind of err, or KindInternal when err is not an AppError.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
