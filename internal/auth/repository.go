package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/JaimeStill/portfolio-api/pkg/repository"
)

const userColumns = "id, name, email, password_hash, created_at, updated_at"

// placeholderHash keeps failed logins for unknown emails as slow as a
// password mismatch.
var placeholderHash = sync.OnceValue(func() []byte {
	hash, _ := bcrypt.GenerateFromPassword([]byte("placeholder"), bcrypt.DefaultCost)
	return hash
})

type repo struct {
	db     *sql.DB
	logger *slog.Logger
	ttl    time.Duration
}

// New creates the Postgres-backed auth System. Issued tokens expire after ttl.
func New(db *sql.DB, logger *slog.Logger, ttl time.Duration) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "auth"),
		ttl:    ttl,
	}
}

func scanUser(s repository.Scanner) (User, error) {
	var u User
	err := s.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (r *repo) Save(ctx context.Context, name, email, password string) (*User, bool, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return nil, false, err
	}

	q := `
		INSERT INTO users (id, name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE
		SET password_hash = EXCLUDED.password_hash, updated_at = NOW()
		RETURNING ` + userColumns + `, (xmax = 0)`

	var created bool
	u, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (User, error) {
		var u User
		err := tx.QueryRowContext(ctx, q, uuid.New(), name, normalizeEmail(email), hash).
			Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt, &created)
		return u, err
	})
	if err != nil {
		return nil, false, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if created {
		r.logger.Info("admin user created", "id", u.ID, "email", u.Email)
	} else {
		r.logger.Info("admin password updated", "id", u.ID, "email", u.Email)
	}
	return &u, created, nil
}

func (r *repo) EnsureAdmin(ctx context.Context, name, email, password string) (*User, bool, error) {
	existing, err := r.findByEmail(ctx, r.db, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, false, err
	}

	q := `
		INSERT INTO users (id, name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns

	u, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (User, error) {
		return repository.QueryOne(ctx, tx, q, []any{uuid.New(), name, normalizeEmail(email), hash}, scanUser)
	})
	if err != nil {
		return nil, false, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("bootstrap admin created", "id", u.ID, "email", u.Email)
	return &u, true, nil
}

func (r *repo) List(ctx context.Context) ([]User, error) {
	q := "SELECT " + userColumns + " FROM users ORDER BY created_at"

	users, err := repository.QueryMany(ctx, r.db, q, nil, scanUser)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	return users, nil
}

func (r *repo) DeleteByEmail(ctx context.Context, email string) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		err := repository.ExecExpectOne(ctx, tx, "DELETE FROM users WHERE email = $1", normalizeEmail(email))
		return struct{}{}, err
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("admin user deleted", "email", email)
	return nil
}

func (r *repo) Login(ctx context.Context, creds Credentials) (*Token, error) {
	u, err := r.findByEmail(ctx, r.db, creds.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			bcrypt.CompareHashAndPassword(placeholderHash(), []byte(creds.Password))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, hash, err := newToken()
	if err != nil {
		return nil, err
	}
	expires := time.Now().Add(r.ttl).UTC()

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if _, err := tx.ExecContext(ctx, "DELETE FROM auth_tokens WHERE user_id = $1 AND expires_at <= NOW()", u.ID); err != nil {
			return struct{}{}, err
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO auth_tokens (token_hash, user_id, expires_at) VALUES ($1, $2, $3)",
			hash, u.ID, expires,
		)
		return struct{}{}, err
	})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	r.logger.Info("admin logged in", "id", u.ID, "email", u.Email)

	return &Token{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: expires,
		User:      *u,
	}, nil
}

func (r *repo) Logout(ctx context.Context, token string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM auth_tokens WHERE token_hash = $1", hashToken(token)); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (r *repo) Resolve(ctx context.Context, token string) (*Principal, error) {
	q := `
		SELECT u.id, u.email
		FROM auth_tokens t
		JOIN users u ON u.id = t.user_id
		WHERE t.token_hash = $1 AND t.expires_at > NOW()`

	var p Principal
	err := r.db.QueryRowContext(ctx, q, hashToken(token)).Scan(&p.UserID, &p.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("resolve token: %w", err)
	}

	p.Admin = true
	return &p, nil
}

func (r *repo) findByEmail(ctx context.Context, db repository.Querier, email string) (*User, error) {
	q := "SELECT " + userColumns + " FROM users WHERE email = $1"

	u, err := repository.QueryOne(ctx, db, q, []any{normalizeEmail(email)}, scanUser)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &u, nil
}
