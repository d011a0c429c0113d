package errors

import (
	stderrors "errors"
	"testing"
)

func TestErrorIs_MatchesByCode(t *testing.T) {
	err := NotFound("book 42 not found")
	if !Is(err, ErrNotFound) {
		t.Error("expected NotFound error to match ErrNotFound")
	}
	if Is(err, ErrValidation) {
		t.Error("NotFound error should not match ErrValidation")
	}
}

func TestWithCause_Unwraps(t *testing.T) {
	cause := stderrors.New("disk I/O error")
	err := Persistence("insert book").WithCause(cause)

	if !Is(err, cause) {
		t.Error("expected wrapped cause to be reachable via errors.Is")
	}
	if !Is(err, ErrPersistence) {
		t.Error("expected wrapped error to keep its code")
	}
	if got := err.Error(); got != "insert book: disk I/O error" {
		t.Errorf("Error(): got %q", got)
	}
}

func TestWithDetails_PreservesCode(t *testing.T) {
	err := ValidationWithDetails("validation failed", map[string]string{"title": "is required"})
	if !Is(err, ErrValidation) {
		t.Error("expected details error to match ErrValidation")
	}

	var domainErr *Error
	if !As(err, &domainErr) {
		t.Fatal("expected *Error")
	}
	if domainErr.Details == nil {
		t.Error("expected details to be set")
	}
}
