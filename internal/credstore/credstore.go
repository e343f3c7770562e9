// Package credstore defines the credential store used to resolve users at
// login and token-validation time. The store is read-only during request
// handling; records are loaded once at startup.
package credstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Lookup when no user exists for the username.
var ErrNotFound = errors.New("user not found")

// User is a credential record. PasswordHash is a bcrypt digest and is never
// serialized to clients.
type User struct {
	Username     string `json:"username" db:"username"`
	Email        string `json:"email" db:"email"`
	Disabled     bool   `json:"disabled" db:"disabled"`
	PasswordHash string `json:"-" db:"password_hash"`
}

// Store resolves users by username.
type Store interface {
	Lookup(ctx context.Context, username string) (*User, error)
}
