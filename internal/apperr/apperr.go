package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a typed domain error carrying its HTTP status.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

var (
	ErrNotFound          = New("NOT_FOUND", http.StatusNotFound, "data tidak ditemukan")
	ErrInvalidTransition = New("INVALID_TRANSITION", http.StatusConflict, "status transaksi tidak dapat diubah")
	ErrValidation        = New("VALIDATION_ERROR", http.StatusBadRequest, "input tidak valid")
	ErrPersistence       = New("PERSISTENCE_ERROR", http.StatusInternalServerError, "gagal menyimpan data")
	ErrUnauthorized      = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrForbidden         = New("FORBIDDEN", http.StatusForbidden, "akses ditolak")
	ErrConflict          = New("CONFLICT", http.StatusConflict, "data sudah ada")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrPersistence.Code, ErrPersistence.Status, ErrPersistence.Message)
}

// Clone returns a copy with an overridden message.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
