// Package auth owns credential verification and the session issuance and
// renewal policy.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mitoneko/neko-todo/database"
	"github.com/mitoneko/neko-todo/models"
)

// ErrWrongPassword reports a password that does not match the stored hash.
var ErrWrongPassword = errors.New("wrong password")

// Store is the slice of the storage gateway this package needs.
type Store interface {
	CreateUser(ctx context.Context, name, passwordHash string) error
	GetUserByName(ctx context.Context, name string) (models.User, error)
	CreateSession(ctx context.Context, userName string) (uuid.UUID, error)
	RotateSession(ctx context.Context, oldID uuid.UUID) (uuid.UUID, error)
	IsSessionValid(ctx context.Context, id uuid.UUID) (bool, error)
}

// Manager implements registration, login and the rotating session check.
type Manager struct {
	store Store
}

// NewManager builds a Manager on top of the given store.
func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Register creates a new user with a bcrypt-hashed password. Returns
// database.ErrDuplicateUser when the name is taken.
func (m *Manager) Register(ctx context.Context, name, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := m.store.CreateUser(ctx, name, string(hash)); err != nil {
		if !errors.Is(err, database.ErrDuplicateUser) {
			log.Printf("auth: create user %q: %v", name, err)
		}
		return err
	}
	return nil
}

// Login verifies the credentials and issues a new session. Returns
// database.ErrUserNotFound for an unknown name and ErrWrongPassword for a
// bad password.
func (m *Manager) Login(ctx context.Context, name, password string) (uuid.UUID, error) {
	user, err := m.store.GetUserByName(ctx, name)
	if err != nil {
		if !errors.Is(err, database.ErrUserNotFound) {
			log.Printf("auth: fetch user %q: %v", name, err)
		}
		return uuid.Nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return uuid.Nil, ErrWrongPassword
	}

	sess, err := m.store.CreateSession(ctx, user.Name)
	if err != nil {
		log.Printf("auth: create session for %q: %v", name, err)
		return uuid.Nil, err
	}
	return sess, nil
}

// CheckAndRenew validates sess and, when valid, rotates it: the old id is
// deleted and a fresh one returned, extending the effective lifetime while
// invalidating the old id immediately. The caller must keep the returned
// id for its next call. ok is false when no valid session exists — a
// normal outcome for an anonymous caller, not an error.
func (m *Manager) CheckAndRenew(ctx context.Context, sess uuid.UUID) (newID uuid.UUID, ok bool, err error) {
	valid, err := m.store.IsSessionValid(ctx, sess)
	if err != nil {
		log.Printf("auth: session validity check: %v", err)
		return uuid.Nil, false, err
	}
	if !valid {
		return uuid.Nil, false, nil
	}

	newID, err = m.store.RotateSession(ctx, sess)
	if errors.Is(err, database.ErrSessionNotFound) {
		// Lost the race against a concurrent renewal or the expiry purge.
		return uuid.Nil, false, nil
	}
	if err != nil {
		log.Printf("auth: rotate session: %v", err)
		return uuid.Nil, false, err
	}
	return newID, true, nil
}
