package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/JaimeStill/portfolio-api/internal/auth"
	"github.com/JaimeStill/portfolio-api/internal/database/databasetest"
)

func TestRepository_Postgres(t *testing.T) {
	db := databasetest.Open(t)
	sys := auth.New(db, testLogger(), time.Hour)
	ctx := context.Background()

	u, created, err := sys.Save(ctx, "Admin", "Admin@Example.com", "first")
	if err != nil || !created {
		t.Fatalf("Save() = %v, %v, %v", u, created, err)
	}
	if u.Email != "admin@example.com" {
		t.Errorf("Email = %q, want normalized", u.Email)
	}

	if _, _, err := sys.EnsureAdmin(ctx, "Admin", "admin@example.com", "ignored"); err != nil {
		t.Fatalf("EnsureAdmin() failed: %v", err)
	}
	if _, err := sys.Login(ctx, auth.Credentials{Email: "admin@example.com", Password: "ignored"}); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Errorf("EnsureAdmin changed the password: Login() = %v", err)
	}

	again, created, err := sys.Save(ctx, "Admin", "admin@example.com", "second")
	if err != nil || created {
		t.Fatalf("second Save() = %v, %v", created, err)
	}
	if again.ID != u.ID {
		t.Errorf("Save() replaced the account: %s != %s", again.ID, u.ID)
	}

	token, err := sys.Login(ctx, auth.Credentials{Email: "admin@example.com", Password: "second"})
	if err != nil {
		t.Fatalf("Login() failed: %v", err)
	}

	p, err := sys.Resolve(ctx, token.Token)
	if err != nil || !p.Admin || p.UserID != u.ID {
		t.Fatalf("Resolve() = %+v, %v", p, err)
	}

	if err := sys.Logout(ctx, token.Token); err != nil {
		t.Fatalf("Logout() failed: %v", err)
	}
	if _, err := sys.Resolve(ctx, token.Token); !errors.Is(err, auth.ErrUnauthenticated) {
		t.Errorf("Resolve() after logout = %v, want ErrUnauthenticated", err)
	}

	users, err := sys.List(ctx)
	if err != nil || len(users) != 1 {
		t.Fatalf("List() = %v, %v", users, err)
	}

	if err := sys.DeleteByEmail(ctx, "admin@example.com"); err != nil {
		t.Fatalf("DeleteByEmail() failed: %v", err)
	}
	if err := sys.DeleteByEmail(ctx, "admin@example.com"); !errors.Is(err, auth.ErrNotFound) {
		t.Errorf("second DeleteByEmail() = %v, want ErrNotFound", err)
	}
}
