package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestFromErrorRecognizesTyped(t *testing.T) {
	err := Clone(ErrNotFound, "barang tidak ditemukan")
	got := FromError(fmt.Errorf("handler: %w", err))
	if got.Code != "NOT_FOUND" || got.Status != http.StatusNotFound {
		t.Fatalf("FromError = %+v, want NOT_FOUND/404", got)
	}
	if got.Message != "barang tidak ditemukan" {
		t.Fatalf("message = %q", got.Message)
	}
}

func TestFromErrorFallsBackToPersistence(t *testing.T) {
	got := FromError(errors.New("connection refused"))
	if got.Code != ErrPersistence.Code || got.Status != http.StatusInternalServerError {
		t.Fatalf("FromError = %+v, want persistence fallback", got)
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(cause, ErrValidation.Code, ErrValidation.Status, "input tidak valid")
	if !errors.Is(err, cause) {
		t.Fatal("wrapped cause lost")
	}
	var e *Error
	if !errors.As(error(err), &e) || e.Code != ErrValidation.Code {
		t.Fatalf("wrap lost code: %v", err)
	}
}

func TestCloneDoesNotMutateOriginal(t *testing.T) {
	c := Clone(ErrInvalidTransition, "Transaksi sudah selesai.")
	if c.Message != "Transaksi sudah selesai." {
		t.Fatalf("clone message = %q", c.Message)
	}
	if ErrInvalidTransition.Message == "Transaksi sudah selesai." {
		t.Fatal("original mutated by Clone")
	}
	if empty := Clone(ErrInvalidTransition, ""); empty.Message != ErrInvalidTransition.Message {
		t.Fatal("empty override should keep the original message")
	}
}
