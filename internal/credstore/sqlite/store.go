// Package sqlite provides a SQLite-backed credential store so the static
// in-memory table can be swapped for a persistent one without touching the
// auth layer.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/lixumin/vocabvid-gateway/internal/credstore"
)

// Store is a SQLite implementation of credstore.Store.
type Store struct {
	db *sqlx.DB
}

var _ credstore.Store = (*Store)(nil)

// New opens (or creates) the database at dbPath and initializes the schema.
func New(dbPath string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

func (s *Store) initSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS users (
		username TEXT PRIMARY KEY,
		email TEXT NOT NULL DEFAULT '',
		disabled INTEGER NOT NULL DEFAULT 0,
		password_hash TEXT NOT NULL
	)`)
	return err
}

func (s *Store) Lookup(ctx context.Context, username string) (*credstore.User, error) {
	var u credstore.User
	err := s.db.GetContext(ctx, &u,
		`SELECT username, email, disabled, password_hash FROM users WHERE username = ?`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, credstore.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return &u, nil
}

// Upsert inserts or replaces a user record. Used to seed configured users at
// startup and by provisioning tooling.
func (s *Store) Upsert(ctx context.Context, u *credstore.User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, email, disabled, password_hash)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(username) DO UPDATE SET
		   email = excluded.email,
		   disabled = excluded.disabled,
		   password_hash = excluded.password_hash`,
		u.Username, u.Email, u.Disabled, u.PasswordHash)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
