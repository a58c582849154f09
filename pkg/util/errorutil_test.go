package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
)

func TestToDomainErrorPassthrough(t *testing.T) {
	original := NewForbidden("no")
	mapped := ToDomainError(original)
	if mapped.Code != "FORBIDDEN" || mapped.HTTPStatus != http.StatusForbidden {
		t.Fatalf("mapped = %+v", mapped)
	}
	wrapped := fmt.Errorf("handler: %w", original)
	if got := ToDomainError(wrapped); got.Code != "FORBIDDEN" {
		t.Fatalf("wrapped DomainError not unwrapped, got %s", got.Code)
	}
}

func TestToDomainErrorRowAbsence(t *testing.T) {
	mapped := ToDomainError(pgx.ErrNoRows)
	if mapped.Code != "NOT_FOUND" || mapped.HTTPStatus != http.StatusNotFound {
		t.Fatalf("mapped = %+v", mapped)
	}
}

func TestToDomainErrorUnclassified(t *testing.T) {
	cause := errors.New("connection refused")
	mapped := ToDomainError(cause)
	if mapped.Code != "STORAGE_ERROR" || mapped.HTTPStatus != http.StatusServiceUnavailable {
		t.Fatalf("mapped = %+v", mapped)
	}
	if !errors.Is(mapped, cause) {
		t.Fatal("cause not preserved through wrapping")
	}
}

func TestToDomainErrorNil(t *testing.T) {
	if got := ToDomainError(nil); got != nil {
		t.Fatalf("ToDomainError(nil) = %+v, want nil", got)
	}
}

func TestConstructorStatuses(t *testing.T) {
	tests := []struct {
		err    error
		code   string
		status int
	}{
		{NewUnauthenticated("m"), "UNAUTHENTICATED", http.StatusUnauthorized},
		{NewForbidden("m"), "FORBIDDEN", http.StatusForbidden},
		{NewValidationError("m", nil), "VALIDATION_FAILED", http.StatusBadRequest},
		{NewNotFound("ticket", nil), "NOT_FOUND", http.StatusNotFound},
		{NewStorageError(errors.New("x")), "STORAGE_ERROR", http.StatusServiceUnavailable},
		{NewInternalError(errors.New("x")), "INTERNAL_ERROR", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		var de *DomainError
		if !errors.As(tt.err, &de) {
			t.Fatalf("%v is not a DomainError", tt.err)
		}
		if de.Code != tt.code || de.HTTPStatus != tt.status {
			t.Errorf("%s: got %s/%d, want %s/%d", tt.code, de.Code, de.HTTPStatus, tt.code, tt.status)
		}
	}
}
