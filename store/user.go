package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"topthought/domain"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Authenticate checks the credentials against the users table. It returns
// ErrNotFound for both an unknown username and a wrong password so callers
// cannot tell the two apart.
func (s *Store) Authenticate(ctx context.Context, username, password string) (domain.AdminUser, error) {
	var u domain.AdminUser
	var hash string
	row := s.DB.QueryRowContext(ctx,
		"SELECT id, username, password, created_at, updated_at FROM users WHERE username = $1", username)
	err := row.Scan(&u.ID, &u.Username, &hash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.AdminUser{}, ErrNotFound
		}
		return domain.AdminUser{}, fmt.Errorf("fetching user %s: %w", username, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return domain.AdminUser{}, ErrNotFound
	}
	return u, nil
}

// EnsureAdmin creates the admin account on first start. An existing account
// is left untouched, password included.
func (s *Store) EnsureAdmin(ctx context.Context, username, password string) error {
	var count int
	row := s.DB.QueryRowContext(ctx, "SELECT COUNT(username) FROM users WHERE username = $1", username)
	if err := row.Scan(&count); err != nil {
		return fmt.Errorf("checking for admin user: %w", err)
	}
	if count != 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = s.DB.ExecContext(ctx,
		"INSERT INTO users (id, username, password, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)",
		uuid.NewString(), username, string(hash), now, now)
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}
	return nil
}
