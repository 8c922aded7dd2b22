package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// newSessionID generates a time-ordered 128-bit session token.
func newSessionID() (uuid.UUID, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.Nil, fmt.Errorf("generate session id: %w", err)
	}
	return id, nil
}

// CreateSession inserts a fresh session for the named user and returns its
// id. Returns ErrUserNotFound when the name matches no user row (surfaces
// as a foreign-key violation).
func (db *DB) CreateSession(ctx context.Context, userName string) (uuid.UUID, error) {
	id, err := newSessionID()
	if err != nil {
		return uuid.Nil, err
	}

	const q = `INSERT INTO sessions(id, user_name, expired) VALUES (?, ?, NOW() + INTERVAL ? SECOND);`
	if _, err := db.pool.ExecContext(ctx, q, id.String(), userName, int64(db.sessionTTL.Seconds())); err != nil {
		if isFKViolation(err) {
			return uuid.Nil, ErrUserNotFound
		}
		return uuid.Nil, fmt.Errorf("insert session: %w", err)
	}
	return id, nil
}

// RotateSession replaces oldID with a freshly issued session for the same
// user and returns the new id. Expired sessions are purged first, so a
// lapsed id reports ErrSessionNotFound. The purge, delete and insert run in
// one transaction; a concurrent validity check never observes the session
// deleted but not yet replaced.
func (db *DB) RotateSession(ctx context.Context, oldID uuid.UUID) (uuid.UUID, error) {
	tx, err := db.pool.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, fmt.Errorf("begin rotate transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE expired < NOW();`); err != nil {
		return uuid.Nil, fmt.Errorf("purge expired sessions: %w", err)
	}

	var userName string
	err = tx.QueryRowContext(ctx, `SELECT user_name FROM sessions WHERE id = ?;`, oldID.String()).Scan(&userName)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, ErrSessionNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("resolve session owner: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?;`, oldID.String()); err != nil {
		return uuid.Nil, fmt.Errorf("delete old session: %w", err)
	}

	newID, err := newSessionID()
	if err != nil {
		return uuid.Nil, err
	}
	const insert = `INSERT INTO sessions(id, user_name, expired) VALUES (?, ?, NOW() + INTERVAL ? SECOND);`
	if _, err := tx.ExecContext(ctx, insert, newID.String(), userName, int64(db.sessionTTL.Seconds())); err != nil {
		return uuid.Nil, fmt.Errorf("insert rotated session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("commit rotate transaction: %w", err)
	}
	return newID, nil
}

// IsSessionValid purges expired sessions, then reports whether id still
// exists. The target row itself is never mutated.
func (db *DB) IsSessionValid(ctx context.Context, id uuid.UUID) (bool, error) {
	if _, err := db.pool.ExecContext(ctx, `DELETE FROM sessions WHERE expired < NOW();`); err != nil {
		return false, fmt.Errorf("purge expired sessions: %w", err)
	}

	var cnt int64
	const q = `SELECT COUNT(*) AS cnt FROM sessions WHERE id = ?;`
	if err := db.pool.QueryRowContext(ctx, q, id.String()).Scan(&cnt); err != nil {
		return false, fmt.Errorf("count session: %w", err)
	}
	return cnt == 1, nil
}
