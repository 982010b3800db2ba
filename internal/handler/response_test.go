package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tkonda/placement-prep/internal/apperror"
)

func TestWriteError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{"validation", apperror.ValidationFailed("email", "bad"), http.StatusBadRequest, "validation_error"},
		{"unauthenticated", apperror.Unauthenticated(), http.StatusUnauthorized, "unauthenticated"},
		{"forbidden", apperror.Forbidden("admins only"), http.StatusForbidden, "forbidden"},
		{"not found", apperror.NotFound("quiz", "abc"), http.StatusNotFound, "not_found"},
		{"conflict", apperror.Conflict("already exists"), http.StatusConflict, "conflict"},
		{"upstream", apperror.Upstream(errors.New("db down")), http.StatusBadGateway, "upstream_error"},
		{"unknown", errors.New("something else"), http.StatusInternalServerError, "internal_error"},
		{"wrapped", fmt.Errorf("submitting: %w", apperror.NotFound("quiz", "x")), http.StatusNotFound, "not_found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var body ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decoding body: %v", err)
			}
			if body.Error != tt.wantType {
				t.Errorf("error type = %q, want %q", body.Error, tt.wantType)
			}
			if body.Message == "" {
				t.Error("message is empty")
			}
		})
	}
}

func TestWriteError_HidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, errors.New("pq: connection refused on 10.0.0.3"))

	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.Message != "an internal error occurred" {
		t.Errorf("message = %q leaks internal detail", body.Message)
	}
}
