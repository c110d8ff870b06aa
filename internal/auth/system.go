// Package auth manages admin accounts and bearer tokens and threads the
// admin capability through request contexts.
package auth

import "context"

// System defines admin account and token operations.
type System interface {
	// Save creates the account or, when email already exists, replaces its
	// password.
	Save(ctx context.Context, name, email, password string) (*User, bool, error)

	// EnsureAdmin creates the account when email is unknown and leaves an
	// existing account untouched.
	EnsureAdmin(ctx context.Context, name, email, password string) (*User, bool, error)

	List(ctx context.Context) ([]User, error)
	DeleteByEmail(ctx context.Context, email string) error

	Login(ctx context.Context, creds Credentials) (*Token, error)
	Logout(ctx context.Context, token string) error
	Resolver
}

// Resolver maps a bearer token to the caller it was issued to.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*Principal, error)
}
