package documents_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/portfolio-api/internal/documents"
	"github.com/JaimeStill/portfolio-api/internal/documents/documentstest"
)

func newFileMux(store documents.Store) *http.ServeMux {
	h := documents.NewFileHandler(store, documentstest.Logger())
	mux := http.NewServeMux()
	mux.HandleFunc("GET /files/{path...}", h.Serve)
	return mux
}

func TestFileHandler_Serve(t *testing.T) {
	store, _ := documentstest.NewStore(t)
	pdf := documentstest.PDF(1)

	ref, err := store.Put(context.Background(), "projects", documentstest.Upload("plan.pdf", pdf))
	if err != nil {
		t.Fatalf("Put() failed: %v", err)
	}

	rec := httptest.NewRecorder()
	newFileMux(store).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/files/"+ref.Path, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/pdf" {
		t.Errorf("Content-Type = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
	if rec.Body.Len() != len(pdf) {
		t.Errorf("body = %d bytes, want %d", rec.Body.Len(), len(pdf))
	}
}

func TestFileHandler_NotFound(t *testing.T) {
	store, _ := documentstest.NewStore(t)

	rec := httptest.NewRecorder()
	newFileMux(store).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/files/projects/missing.pdf", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["message"] != "File not found" || body["path"] != "projects/missing.pdf" {
		t.Errorf("body = %v", body)
	}
}
