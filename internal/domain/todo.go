package domain

import "time"

type TodoStatus string

const (
	TodoStatusPending    TodoStatus = "pending"
	TodoStatusInProgress TodoStatus = "in_progress"
	TodoStatusCompleted  TodoStatus = "completed"
	TodoStatusExpired    TodoStatus = "expired"
)

// ValidStatus reports whether s is one of the four known todo statuses.
func ValidStatus(s TodoStatus) bool {
	switch s {
	case TodoStatusPending, TodoStatusInProgress, TodoStatusCompleted, TodoStatusExpired:
		return true
	}
	return false
}

// Todo represents a task item owned by a single user. CreatedBy and UpdatedBy
// are nullable so records survive removal of their owner at the storage layer.
type Todo struct {
	ID        int64
	Title     string
	Body      string
	Status    TodoStatus
	ExpiresAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	CreatedBy *int64
	UpdatedBy *int64
}
