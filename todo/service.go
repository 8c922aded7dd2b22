// Package todo holds the business rules for item creation, editing,
// listing and completion toggling. Every operation is scoped to the owner
// resolved from the caller's session.
package todo

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/mitoneko/neko-todo/database"
	"github.com/mitoneko/neko-todo/models"
)

// Store is the slice of the storage gateway this package needs.
type Store interface {
	GetUserBySession(ctx context.Context, sess uuid.UUID) (models.User, error)
	InsertTodo(ctx context.Context, item models.TodoItem) error
	ListTodos(ctx context.Context, sess uuid.UUID, refDate models.Date, onlyIncomplete bool, order models.SortOrder) ([]models.TodoItem, error)
	GetTodoByID(ctx context.Context, id uint32, sess uuid.UUID) (models.TodoItem, error)
	SetDone(ctx context.Context, id uint32, done bool) error
	EditTodo(ctx context.Context, item models.TodoItem) error
}

// Service implements the todo operations on top of a store.
type Service struct {
	store Store
}

// NewService builds a Service on top of the given store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// normalizeWork maps a blank or whitespace-only work note to absent.
func normalizeWork(work *string) *string {
	if work != nil && strings.TrimSpace(*work) == "" {
		return nil
	}
	return work
}

// Add stores a new item for the session's user. The owner in item is
// always discarded and replaced with the resolved one, so a client can
// never file an item under someone else's name. Returns
// database.ErrSessionNotFound when the session is invalid.
func (s *Service) Add(ctx context.Context, sess uuid.UUID, item models.TodoItem) error {
	user, err := s.store.GetUserBySession(ctx, sess)
	if err != nil {
		if !errors.Is(err, database.ErrSessionNotFound) {
			log.Printf("todo: resolve session owner: %v", err)
		}
		return err
	}

	item.UserName = user.Name
	item.Work = normalizeWork(item.Work)
	if err := s.store.InsertTodo(ctx, item); err != nil {
		log.Printf("todo: insert item: %v", err)
		return err
	}
	return nil
}

// List returns the session owner's items with today as the reference date.
func (s *Service) List(ctx context.Context, sess uuid.UUID, onlyIncomplete bool, order models.SortOrder) ([]models.TodoItem, error) {
	items, err := s.store.ListTodos(ctx, sess, models.Today(), onlyIncomplete, order)
	if err != nil {
		log.Printf("todo: list items: %v", err)
		return nil, err
	}
	return items, nil
}

// Get returns one item by id, scoped to the session's user. A missing id
// and another user's id both yield database.ErrTodoNotFound.
func (s *Service) Get(ctx context.Context, id uint32, sess uuid.UUID) (models.TodoItem, error) {
	item, err := s.store.GetTodoByID(ctx, id, sess)
	if err != nil {
		if !errors.Is(err, database.ErrTodoNotFound) {
			log.Printf("todo: get item %d: %v", id, err)
		}
		return models.TodoItem{}, err
	}
	return item, nil
}

// ChangeDone flips the done flag of an item the session's user owns. The
// ownership check is the prior Get call; only then does the mutation run.
func (s *Service) ChangeDone(ctx context.Context, id uint32, sess uuid.UUID, done bool) error {
	if _, err := s.Get(ctx, id, sess); err != nil {
		return err
	}
	if err := s.store.SetDone(ctx, id, done); err != nil {
		if !errors.Is(err, database.ErrTodoNotFound) {
			log.Printf("todo: set done on item %d: %v", id, err)
		}
		return err
	}
	return nil
}

// Edit overwrites an item the session's user owns, with the same
// verify-then-mutate pattern and work normalization as Add. The owner is
// never reassigned.
func (s *Service) Edit(ctx context.Context, item models.TodoItem, sess uuid.UUID) error {
	item.Work = normalizeWork(item.Work)
	if _, err := s.Get(ctx, item.ID, sess); err != nil {
		return err
	}
	if err := s.store.EditTodo(ctx, item); err != nil {
		if !errors.Is(err, database.ErrTodoNotFound) {
			log.Printf("todo: edit item %d: %v", item.ID, err)
		}
		return err
	}
	return nil
}
