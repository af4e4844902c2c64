package database

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// EnsureAdmin creates the admin user or resets its password.
func EnsureAdmin(ctx context.Context, db *sql.DB, username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "db.ensure_admin.hash")
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO user (username, password_hash) VALUES (?, ?)
		ON CONFLICT (username) DO UPDATE SET password_hash = excluded.password_hash`,
		username,
		hash,
	)
	return errors.Wrap(err, "db.ensure_admin")
}
