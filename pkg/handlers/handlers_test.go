package handlers_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/portfolio-api/pkg/handlers"
	"github.com/JaimeStill/portfolio-api/pkg/validation"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func TestRespondJSON(t *testing.T) {
	w := httptest.NewRecorder()
	handlers.RespondJSON(w, http.StatusCreated, map[string]string{"id": "1"})

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", w.Code, http.StatusCreated)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if body := decode(t, w); body["id"] != "1" {
		t.Errorf("body = %v", body)
	}
}

func TestRespondMessage(t *testing.T) {
	w := httptest.NewRecorder()
	handlers.RespondMessage(w, http.StatusOK, "Project deleted successfully")

	if body := decode(t, w); body["message"] != "Project deleted successfully" {
		t.Errorf("body = %v", body)
	}
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		err         error
		wantMessage string
	}{
		{"client error", http.StatusNotFound, errors.New("project not found"), "project not found"},
		{"server error hidden", http.StatusInternalServerError, errors.New("dial tcp: refused"), "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handlers.RespondError(w, discard, tt.status, tt.err)

			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
			if body := decode(t, w); body["message"] != tt.wantMessage {
				t.Errorf("message = %v, want %q", body["message"], tt.wantMessage)
			}
		})
	}
}

func TestRespondError_Validation(t *testing.T) {
	errs := validation.Errors{}
	errs.Add("category", "The selected category is invalid.")

	w := httptest.NewRecorder()
	handlers.RespondError(w, discard, http.StatusUnprocessableEntity, fmt.Errorf("create: %w", errs))

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnprocessableEntity)
	}

	body := decode(t, w)
	fields, ok := body["errors"].(map[string]any)
	if !ok {
		t.Fatalf("errors = %v", body["errors"])
	}
	if _, ok := fields["category"]; !ok {
		t.Errorf("errors missing category: %v", fields)
	}
	if body["message"] != "The selected category is invalid." {
		t.Errorf("message = %v", body["message"])
	}
}
