package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/portfolio-api/internal/auth"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

type fakeSystem struct {
	auth.System
	email    string
	password string
	tokens   map[string]*auth.Principal
	revoked  []string
}

func newFakeSystem() *fakeSystem {
	return &fakeSystem{
		email:    "admin@example.com",
		password: "secret",
		tokens: map[string]*auth.Principal{
			"valid-token": {UserID: uuid.New(), Email: "admin@example.com", Admin: true},
		},
	}
}

func (f *fakeSystem) Resolve(ctx context.Context, token string) (*auth.Principal, error) {
	p, ok := f.tokens[token]
	if !ok {
		return nil, auth.ErrUnauthenticated
	}
	return p, nil
}

func (f *fakeSystem) Login(ctx context.Context, creds auth.Credentials) (*auth.Token, error) {
	if creds.Email != f.email || creds.Password != f.password {
		return nil, auth.ErrInvalidCredentials
	}
	return &auth.Token{Token: "issued", TokenType: "Bearer", ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (f *fakeSystem) Logout(ctx context.Context, token string) error {
	f.revoked = append(f.revoked, token)
	return nil
}

func TestIsAdmin(t *testing.T) {
	ctx := context.Background()

	if auth.IsAdmin(ctx) {
		t.Error("IsAdmin(empty context) = true")
	}
	if err := auth.RequireAdmin(ctx); !errors.Is(err, auth.ErrForbidden) {
		t.Errorf("RequireAdmin(empty context) = %v, want ErrForbidden", err)
	}

	ctx = auth.WithPrincipal(ctx, &auth.Principal{Email: "a@b.c", Admin: true})
	if !auth.IsAdmin(ctx) {
		t.Error("IsAdmin(admin context) = false")
	}
	if err := auth.RequireAdmin(ctx); err != nil {
		t.Errorf("RequireAdmin(admin context) = %v", err)
	}

	if auth.IsAdmin(auth.WithPrincipal(context.Background(), nil)) {
		t.Error("IsAdmin(nil principal) = true")
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc", "abc"},
		{"bearer abc", "abc"},
		{"Basic abc", ""},
		{"Bearer", ""},
		{"", ""},
	}

	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			r.Header.Set("Authorization", tt.header)
		}
		if got := auth.BearerToken(r); got != tt.want {
			t.Errorf("BearerToken(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}

func TestMiddleware(t *testing.T) {
	sys := newFakeSystem()

	var admin bool
	handler := auth.Middleware(sys, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		admin = auth.IsAdmin(r.Context())
	}))

	tests := []struct {
		name   string
		header string
		want   bool
	}{
		{"anonymous", "", false},
		{"valid token", "Bearer valid-token", true},
		{"unknown token", "Bearer forged", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/projects", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			handler.ServeHTTP(httptest.NewRecorder(), r)

			if admin != tt.want {
				t.Errorf("IsAdmin = %v, want %v", admin, tt.want)
			}
		})
	}
}

func TestProtect(t *testing.T) {
	called := false
	h := auth.Protect(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/projects", nil))
	if rec.Code != http.StatusUnauthorized || called {
		t.Errorf("anonymous: status = %d, called = %v", rec.Code, called)
	}

	rec = httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/projects", nil)
	r = r.WithContext(auth.WithPrincipal(r.Context(), &auth.Principal{Admin: true}))
	h(rec, r)
	if rec.Code != http.StatusNoContent || !called {
		t.Errorf("admin: status = %d, called = %v", rec.Code, called)
	}
}

func newAuthMux(sys auth.System) http.Handler {
	h := auth.NewHandler(sys, testLogger())
	mux := http.NewServeMux()
	for _, route := range h.Routes().Routes {
		mux.HandleFunc(route.Method+" "+route.Pattern, route.Handler)
	}
	return auth.Middleware(sys, testLogger())(mux)
}

func TestHandler_Login(t *testing.T) {
	mux := newAuthMux(newFakeSystem())

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"valid", `{"email":"admin@example.com","password":"secret"}`, http.StatusOK},
		{"wrong password", `{"email":"admin@example.com","password":"nope"}`, http.StatusUnauthorized},
		{"missing email", `{"password":"secret"}`, http.StatusUnprocessableEntity},
		{"malformed", `{`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(tt.body)))

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.status, rec.Body.String())
			}
			if tt.status == http.StatusOK {
				var token auth.Token
				json.NewDecoder(rec.Body).Decode(&token)
				if token.Token != "issued" || token.TokenType != "Bearer" {
					t.Errorf("token = %+v", token)
				}
			}
		})
	}
}

func TestHandler_LogoutAndMe(t *testing.T) {
	sys := newFakeSystem()
	mux := newAuthMux(sys)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous /me status = %d, want 401", rec.Code)
	}

	r := httptest.NewRequest(http.MethodGet, "/me", nil)
	r.Header.Set("Authorization", "Bearer valid-token")
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, r)
	if rec.Code != http.StatusOK {
		t.Fatalf("/me status = %d, want 200", rec.Code)
	}

	r = httptest.NewRequest(http.MethodPost, "/logout", nil)
	r.Header.Set("Authorization", "Bearer valid-token")
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, r)
	if rec.Code != http.StatusOK {
		t.Fatalf("/logout status = %d, want 200", rec.Code)
	}
	if len(sys.revoked) != 1 || sys.revoked[0] != "valid-token" {
		t.Errorf("revoked = %v", sys.revoked)
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{auth.ErrNotFound, http.StatusNotFound},
		{auth.ErrDuplicate, http.StatusConflict},
		{auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{auth.ErrForbidden, http.StatusForbidden},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := auth.MapHTTPStatus(tt.err); got != tt.want {
			t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
