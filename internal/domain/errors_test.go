package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestSentinelMatching(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
	}{
		{"not found", &NotFoundError{Message: "project 1 not found"}, ErrNotFound},
		{"validation", &ValidationError{Message: "name required"}, ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.target) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.target)
			}
			if errors.Is(tt.err, ErrConflict) {
				t.Errorf("errors.Is(%v, ErrConflict) = true, want false", tt.err)
			}
		})
	}
}

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		err  HTTPError
		want int
	}{
		{&NotFoundError{Message: "x"}, http.StatusNotFound},
		{&ValidationError{Message: "x"}, http.StatusBadRequest},
		{&PayloadTooLargeError{LimitBytes: 1 << 20}, http.StatusRequestEntityTooLarge},
		{&NoValidFilesError{}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		if got := tt.err.StatusCode(); got != tt.want {
			t.Errorf("%T.StatusCode() = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestIngestionErrorDelegation(t *testing.T) {
	wrapped := &IngestionError{SessionID: "s-1", Err: &NoValidFilesError{}}
	if got := wrapped.StatusCode(); got != http.StatusBadRequest {
		t.Errorf("StatusCode() = %d, want %d", got, http.StatusBadRequest)
	}

	var inner *NoValidFilesError
	if !errors.As(wrapped, &inner) {
		t.Error("errors.As failed to unwrap the inner error")
	}

	opaque := &IngestionError{SessionID: "s-2", Err: fmt.Errorf("disk full")}
	if got := opaque.StatusCode(); got != http.StatusInternalServerError {
		t.Errorf("StatusCode() = %d, want %d", got, http.StatusInternalServerError)
	}
}

func TestPayloadTooLargeMessage(t *testing.T) {
	err := &PayloadTooLargeError{LimitBytes: 500 * 1024 * 1024}
	want := "file too large, max size: 500 MB"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
