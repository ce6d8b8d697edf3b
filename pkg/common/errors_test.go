package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_StatusCode(t *testing.T) {
	tests := []struct {
		err  *AppError
		want int
	}{
		{NewNotFoundError("missing", nil), http.StatusNotFound},
		{NewInvalidStateError("bad transition", nil), http.StatusConflict},
		{NewValidationError("bad input", nil), http.StatusBadRequest},
		{NewForbiddenError("no"), http.StatusForbidden},
		{NewInternalServerError("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		if got := tc.err.StatusCode(); got != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.err.Kind, tc.want, got)
		}
	}
}

func TestAsAppError_FindsWrappedError(t *testing.T) {
	cause := NewNotFoundError("ticket not found", nil)
	wrapped := fmt.Errorf("issue ticket: %w", cause)

	appErr, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected to find AppError in chain")
	}
	if appErr.Kind != KindNotFound {
		t.Errorf("expected kind %s, got %s", KindNotFound, appErr.Kind)
	}
}

func TestAsAppError_PlainError(t *testing.T) {
	if _, ok := AsAppError(errors.New("plain")); ok {
		t.Error("expected no AppError in a plain error")
	}
}

func TestAppError_ErrorIncludesCause(t *testing.T) {
	cause := errors.New("row not found")
	err := NewNotFoundError("zone not found", cause)

	if got := err.Error(); got != "zone not found: row not found" {
		t.Errorf("unexpected message: %q", got)
	}
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to match the wrapped cause")
	}
}
