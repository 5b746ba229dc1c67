package repository

import (
	"context"
	"time"

	"todo-api/internal/domain"
)

// TodoRepository exposes persistence operations for Todo records. Every
// lookup and mutation is scoped to an owner; a row belonging to someone else
// behaves exactly like a missing row.
type TodoRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, todo *domain.Todo) (int64, error)
	Get(ctx context.Context, id, ownerID int64) (*domain.Todo, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Todo, error)
	Update(ctx context.Context, todo *domain.Todo, ownerID int64) error
	UpdateStatus(ctx context.Context, id, ownerID int64, status domain.TodoStatus, updatedAt time.Time) error
	Delete(ctx context.Context, id, ownerID int64) error
}
