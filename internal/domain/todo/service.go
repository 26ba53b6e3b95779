package todo

import (
	"context"
	"errors"
	"log"

	"snaplist/internal/domain/attachment"
)

// Service contains the business logic for todo operations
type Service struct {
	repo  Repository
	store attachment.Store
}

// NewService creates a new todo service
func NewService(repo Repository, store attachment.Store) *Service {
	return &Service{repo: repo, store: store}
}

// Create inserts a new todo after validation. The server assigns id,
// completed and createdAt.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Todo, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, params)
}

// List returns all todos, newest first.
func (s *Service) List(ctx context.Context) ([]*Todo, error) {
	return s.repo.List(ctx)
}

// SetCompleted updates the completed flag for a todo.
func (s *Service) SetCompleted(ctx context.Context, id string, completed bool) (*Todo, error) {
	return s.repo.SetCompleted(ctx, id, completed)
}

// Delete removes the todo row first, then cleans up the stored attachment
// when the row had one. Cleanup is best-effort: a storage failure is logged
// and never rolls back or re-surfaces as a delete failure. A crash between
// the two steps leaves an orphaned object; `admin orphan-check` reports those.
func (s *Service) Delete(ctx context.Context, id string) error {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t == nil {
		return ErrTodoNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrTodoNotFound) {
			return ErrTodoNotFound
		}
		return err
	}

	if t.ImageURL != "" {
		key := attachment.KeyFromURL(t.ImageURL)
		if key == "" {
			log.Printf("Todo %s has unparseable image URL %q, skipping cleanup", id, t.ImageURL)
			return nil
		}
		if err := s.store.Remove(ctx, key); err != nil {
			log.Printf("Failed to remove attachment %s for deleted todo %s: %v", key, id, err)
		}
	}

	return nil
}
