package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"eduweb/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHandleErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "blocked delete",
			err:        &domain.BlockedError{Resource: "course", Dependent: "module", Count: 3},
			wantStatus: 409,
		},
		{
			name:       "logical duplicate",
			err:        &domain.ConflictError{Message: "already favorited", ResourceType: "favorite", ExistingID: 8},
			wantStatus: 409,
		},
		{
			name:       "cascade failure",
			err:        &domain.CascadeError{Entity: "module", ID: 4, Step: "delete lessons", Err: errors.New("timeout")},
			wantStatus: 500,
		},
		{
			name:       "missing parent",
			err:        &domain.MissingParentError{Field: "course_id", Kind: "course", Value: 9},
			wantStatus: 400,
		},
		{
			name:       "duplicate key",
			err:        &domain.DuplicateKeyError{Resource: "category", Field: "slug", Value: "design"},
			wantStatus: 409,
		},
		{
			name:       "wrapped not found",
			err:        fmt.Errorf("course 5: %w", domain.ErrNotFound),
			wantStatus: 404,
		},
		{
			name:       "wrapped validation",
			err:        fmt.Errorf("%w: title required", domain.ErrValidation),
			wantStatus: 400,
		},
		{
			name:       "unknown error",
			err:        errors.New("disk on fire"),
			wantStatus: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handleError(w, discardLogger(), tt.err)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/problem+json" {
				t.Errorf("Content-Type = %q", ct)
			}
		})
	}
}

func TestHandleErrorBlockedExtras(t *testing.T) {
	w := httptest.NewRecorder()
	handleError(w, discardLogger(), &domain.BlockedError{Resource: "lesson", Dependent: "progress record", Count: 12})

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["dependent"] != "progress record" || body["count"] != float64(12) {
		t.Errorf("extras = %v", body)
	}
}

func TestHandleErrorConflictExtras(t *testing.T) {
	w := httptest.NewRecorder()
	handleError(w, discardLogger(), &domain.ConflictError{Message: "duplicate", ResourceType: "progress", ExistingID: 31})

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["resource_type"] != "progress" || body["existing_id"] != float64(31) {
		t.Errorf("extras = %v", body)
	}
}

func TestHandleErrorCascadeDoesNotLeakCause(t *testing.T) {
	w := httptest.NewRecorder()
	handleError(w, discardLogger(), &domain.CascadeError{
		Entity: "course", ID: 2, Step: "delete module 7",
		Err: errors.New("pq: ssl handshake failure on 10.0.0.3"),
	})

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["entity"] != "course" || body["step"] != "delete module 7" {
		t.Errorf("extras = %v", body)
	}
	// The underlying driver error stays in the logs.
	if detail, _ := body["detail"].(string); detail != "deletion did not complete; retry the same request" {
		t.Errorf("detail = %q", detail)
	}
}
