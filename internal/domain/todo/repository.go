package todo

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, params CreateParams) (*Todo, error)
	GetByID(ctx context.Context, id string) (*Todo, error)
	List(ctx context.Context) ([]*Todo, error)
	SetCompleted(ctx context.Context, id string, completed bool) (*Todo, error)
	Delete(ctx context.Context, id string) error
}
