package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mitoneko/neko-todo/models"
)

// CreateUser inserts a new user row. Returns ErrDuplicateUser if the name
// is already taken.
func (db *DB) CreateUser(ctx context.Context, name, passwordHash string) error {
	const q = `INSERT INTO users(name, password) VALUES (?, ?);`
	if _, err := db.pool.ExecContext(ctx, q, name, passwordHash); err != nil {
		if isDuplicateEntry(err) {
			return ErrDuplicateUser
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetUserByName fetches a user by primary key. Returns ErrUserNotFound if
// no such row exists.
func (db *DB) GetUserByName(ctx context.Context, name string) (models.User, error) {
	const q = `SELECT name, password FROM users WHERE name = ?;`
	var u models.User
	err := db.pool.QueryRowContext(ctx, q, name).Scan(&u.Name, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("query user: %w", err)
	}
	return u, nil
}

// GetUserBySession resolves a session id to its owning user. Returns
// ErrSessionNotFound if the session row is absent, including the
// expired-and-purged case.
func (db *DB) GetUserBySession(ctx context.Context, sess uuid.UUID) (models.User, error) {
	const q = `
		SELECT u.name, u.password
		FROM users u JOIN sessions s ON u.name = s.user_name
		WHERE s.id = ?;`
	var u models.User
	err := db.pool.QueryRowContext(ctx, q, sess.String()).Scan(&u.Name, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrSessionNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("query user by session: %w", err)
	}
	return u, nil
}
