package service

import (
	"context"
	"strings"
	"time"

	"todo-api/internal/domain"
	"todo-api/internal/lifecycle"
	"todo-api/internal/repository"
)

// CreateTodoParams carries the client-writable fields for a new todo. Status
// defaults to pending when empty.
type CreateTodoParams struct {
	Title     string
	Body      string
	Status    domain.TodoStatus
	ExpiresAt *time.Time
}

// UpdateTodoParams carries a partial update; nil fields are left untouched.
type UpdateTodoParams struct {
	Title     *string
	Body      *string
	Status    *domain.TodoStatus
	ExpiresAt *time.Time
}

// TodoService coordinates ownership-scoped todo operations. Every read and
// write runs the lifecycle reconciliation, and read-path corrections are
// persisted before the record is returned.
type TodoService interface {
	Create(ctx context.Context, owner *domain.User, params CreateTodoParams) (*domain.Todo, error)
	List(ctx context.Context, owner *domain.User) ([]domain.Todo, error)
	Get(ctx context.Context, owner *domain.User, id int64) (*domain.Todo, error)
	Update(ctx context.Context, owner *domain.User, id int64, params UpdateTodoParams) (*domain.Todo, error)
	Delete(ctx context.Context, owner *domain.User, id int64) error
}

type todoService struct {
	todos repository.TodoRepository
	now   func() time.Time
}

// TodoOption customizes a TodoService.
type TodoOption func(*todoService)

// WithClock overrides the service's notion of the current time. Used by tests
// to move todos across their expiration deadline.
func WithClock(now func() time.Time) TodoOption {
	return func(s *todoService) {
		s.now = now
	}
}

func NewTodoService(todos repository.TodoRepository, opts ...TodoOption) TodoService {
	s := &todoService{
		todos: todos,
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *todoService) Create(ctx context.Context, owner *domain.User, params CreateTodoParams) (*domain.Todo, error) {
	now := s.now()

	title := strings.TrimSpace(params.Title)
	if title == "" {
		return nil, domain.NewValidationError("title", "is required")
	}
	status := params.Status
	if status == "" {
		status = domain.TodoStatusPending
	}
	if err := lifecycle.ValidateStatus(status); err != nil {
		return nil, err
	}
	if err := lifecycle.ValidateExpiry(params.ExpiresAt, now); err != nil {
		return nil, err
	}

	todo := domain.Todo{
		Title:     title,
		Body:      params.Body,
		Status:    status,
		ExpiresAt: params.ExpiresAt,
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: &owner.ID,
		UpdatedBy: &owner.ID,
	}
	// validation already rejects past deadlines, but every save goes through
	// the reconciliation rule
	todo, _ = lifecycle.Reconcile(todo, now)

	if _, err := s.todos.Create(ctx, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (s *todoService) List(ctx context.Context, owner *domain.User) ([]domain.Todo, error) {
	todos, err := s.todos.ListByOwner(ctx, owner.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	for i := range todos {
		reconciled, changed, err := s.writeBack(ctx, owner.ID, todos[i], now)
		if err != nil {
			return nil, err
		}
		if changed {
			todos[i] = reconciled
		}
	}
	return todos, nil
}

func (s *todoService) Get(ctx context.Context, owner *domain.User, id int64) (*domain.Todo, error) {
	todo, err := s.todos.Get(ctx, id, owner.ID)
	if err != nil {
		return nil, err
	}

	reconciled, _, err := s.writeBack(ctx, owner.ID, *todo, s.now())
	if err != nil {
		return nil, err
	}
	return &reconciled, nil
}

func (s *todoService) Update(ctx context.Context, owner *domain.User, id int64, params UpdateTodoParams) (*domain.Todo, error) {
	todo, err := s.todos.Get(ctx, id, owner.ID)
	if err != nil {
		return nil, err
	}
	now := s.now()

	if params.Title != nil {
		title := strings.TrimSpace(*params.Title)
		if title == "" {
			return nil, domain.NewValidationError("title", "must not be blank")
		}
		todo.Title = title
	}
	if params.Body != nil {
		todo.Body = *params.Body
	}
	if params.Status != nil {
		if err := lifecycle.ValidateStatus(*params.Status); err != nil {
			return nil, err
		}
		// completed overrides a client attempt to mark the todo expired
		if !(*params.Status == domain.TodoStatusExpired && todo.Status == domain.TodoStatusCompleted) {
			todo.Status = *params.Status
		}
	}
	if params.ExpiresAt != nil {
		if err := lifecycle.ValidateExpiry(params.ExpiresAt, now); err != nil {
			return nil, err
		}
		todo.ExpiresAt = params.ExpiresAt
	}

	todo.UpdatedAt = now
	todo.UpdatedBy = &owner.ID
	reconciled, _ := lifecycle.Reconcile(*todo, now)

	if err := s.todos.Update(ctx, &reconciled, owner.ID); err != nil {
		return nil, err
	}
	return &reconciled, nil
}

func (s *todoService) Delete(ctx context.Context, owner *domain.User, id int64) error {
	return s.todos.Delete(ctx, id, owner.ID)
}

// writeBack persists a lazily detected expiration so subsequent reads see the
// corrected status even without another mutation.
func (s *todoService) writeBack(ctx context.Context, ownerID int64, todo domain.Todo, now time.Time) (domain.Todo, bool, error) {
	reconciled, changed := lifecycle.Reconcile(todo, now)
	if !changed {
		return todo, false, nil
	}
	reconciled.UpdatedAt = now
	if err := s.todos.UpdateStatus(ctx, todo.ID, ownerID, reconciled.Status, now); err != nil {
		return domain.Todo{}, false, err
	}
	return reconciled, true, nil
}
