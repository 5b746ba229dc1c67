// Package lifecycle holds the pure status reconciliation and write-time
// validation rules for todos. It has no persistent state; callers persist
// whatever corrections it reports.
package lifecycle

import (
	"time"

	"todo-api/internal/domain"
)

// Reconcile returns the todo with its status corrected for elapsed time. A
// todo whose deadline has passed becomes expired unless it is completed;
// completed is never overridden by the clock. The second return value reports
// whether the status changed, so callers know to persist the correction.
func Reconcile(todo domain.Todo, now time.Time) (domain.Todo, bool) {
	if todo.ExpiresAt == nil {
		return todo, false
	}
	if !todo.ExpiresAt.Before(now) {
		return todo, false
	}
	if todo.Status == domain.TodoStatusCompleted || todo.Status == domain.TodoStatusExpired {
		return todo, false
	}
	todo.Status = domain.TodoStatusExpired
	return todo, true
}

// ValidateStatus rejects status values outside the four-member enum.
func ValidateStatus(status domain.TodoStatus) error {
	if !domain.ValidStatus(status) {
		return domain.NewValidationError("status", "must be one of pending, in_progress, completed, expired")
	}
	return nil
}

// ValidateExpiry rejects a deadline that is already in the past at write time.
// Deadlines that pass after the write are handled by Reconcile instead.
func ValidateExpiry(expiresAt *time.Time, now time.Time) error {
	if expiresAt == nil {
		return nil
	}
	if expiresAt.Before(now) {
		return domain.NewValidationError("expires_at", "must be now or in the future")
	}
	return nil
}
