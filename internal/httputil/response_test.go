package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(rec, http.StatusCreated, map[string]int{"id": 7})

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var body map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["id"] != 7 {
		t.Errorf("id = %d, want 7", body["id"])
	}
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, http.StatusRequestEntityTooLarge, "file too large, max size: 500 MB")

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusRequestEntityTooLarge)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("Content-Type = %q, want application/problem+json", ct)
	}

	var problem ProblemDetail
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if problem.Status != http.StatusRequestEntityTooLarge {
		t.Errorf("problem.Status = %d, want %d", problem.Status, http.StatusRequestEntityTooLarge)
	}
	if problem.Title != http.StatusText(http.StatusRequestEntityTooLarge) {
		t.Errorf("problem.Title = %q", problem.Title)
	}
	if problem.Detail == "" {
		t.Error("problem.Detail is empty")
	}
}

func TestErrorTypeFromStatus(t *testing.T) {
	if got := errorTypeFromStatus(http.StatusTeapot); got != "about:blank" {
		t.Errorf("errorTypeFromStatus(418) = %q, want about:blank", got)
	}
	if got := errorTypeFromStatus(http.StatusNotFound); got == "about:blank" {
		t.Error("errorTypeFromStatus(404) = about:blank, want a concrete type URI")
	}
}
