package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFound(t *testing.T) {
	err := NotFound("blog", 42)

	if !errors.Is(err, ErrNotFound) {
		t.Error("NotFound() should wrap ErrNotFound")
	}
	if err.Message != "blog not found with id 42" {
		t.Errorf("Message = %q", err.Message)
	}
}

func TestValidationFailed(t *testing.T) {
	err := ValidationFailed("title", "title is required")

	if !errors.Is(err, ErrValidation) {
		t.Error("ValidationFailed() should wrap ErrValidation")
	}
	if err.Field != "title" {
		t.Errorf("Field = %q, want %q", err.Field, "title")
	}
	if err.Error() != "title is required" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestForbidden(t *testing.T) {
	err := Forbidden("only the author may modify this blog")

	if !errors.Is(err, ErrForbidden) {
		t.Error("Forbidden() should wrap ErrForbidden")
	}
}

func TestUnauthenticated(t *testing.T) {
	err := Unauthenticated("invalid username or password")

	if !errors.Is(err, ErrUnauthenticated) {
		t.Error("Unauthenticated() should wrap ErrUnauthenticated")
	}
}

// Wrapping an AppError with fmt.Errorf("%w") must preserve the sentinel so
// handlers can still classify it, and errors.As must still find the AppError
// for its message.
func TestWrappedAppError(t *testing.T) {
	inner := NotFound("user", 7)
	wrapped := fmt.Errorf("looking up author: %w", inner)

	if !errors.Is(wrapped, ErrNotFound) {
		t.Error("wrapped error should still match ErrNotFound")
	}

	var appErr *AppError
	if !errors.As(wrapped, &appErr) {
		t.Fatal("errors.As should find the AppError in the chain")
	}
	if appErr.Message != inner.Message {
		t.Errorf("Message = %q, want %q", appErr.Message, inner.Message)
	}
}
