package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/JaimeStill/portfolio-api/pkg/middleware"
)

func TestSystem_Apply_Order(t *testing.T) {
	mw := middleware.New()

	var order []string
	tag := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	mw.Use(tag("first"))
	mw.Use(tag("second"))

	handler := mw.Apply(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if got := strings.Join(order, ","); got != "first,second,handler" {
		t.Errorf("order = %q, want %q", got, "first,second,handler")
	}
}

func TestSystem_Apply_NoMiddleware(t *testing.T) {
	handler := middleware.New().Apply(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", w.Code, http.StatusTeapot)
	}
}

func TestTrimSlash(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantTarget string
	}{
		{"root preserved", "/", http.StatusOK, ""},
		{"no slash", "/projects", http.StatusOK, ""},
		{"trailing slash", "/projects/", http.StatusMovedPermanently, "../projects"},
		{"nested", "/projects/42/", http.StatusMovedPermanently, "../42"},
		{"query kept", "/projects/?category=residential", http.StatusMovedPermanently, "../projects?category=residential"},
		{"exempt prefix", "/files/projects/plan.pdf/", http.StatusOK, ""},
	}

	handler := middleware.TrimSlash("/files/")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if loc := w.Header().Get("Location"); loc != tt.wantTarget {
				t.Errorf("Location = %q, want %q", loc, tt.wantTarget)
			}
		})
	}
}

func TestTrimSlash_ResolvesUnderMountPrefix(t *testing.T) {
	handler := middleware.TrimSlash()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	// Handlers behind a module see the path with the mount prefix removed.
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/projects/?page=2", nil))

	loc, err := url.Parse(w.Header().Get("Location"))
	if err != nil {
		t.Fatalf("parse Location: %v", err)
	}
	original, _ := url.Parse("http://example.com/api/projects/?page=2")
	if got := original.ResolveReference(loc).String(); got != "http://example.com/api/projects?page=2" {
		t.Errorf("resolved redirect = %q, want %q", got, "http://example.com/api/projects?page=2")
	}
}
