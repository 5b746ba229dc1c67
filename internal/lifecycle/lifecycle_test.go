package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-api/internal/domain"
)

func TestReconcile(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name        string
		status      domain.TodoStatus
		expiresAt   *time.Time
		wantStatus  domain.TodoStatus
		wantChanged bool
	}{
		{"no deadline stays put", domain.TodoStatusPending, nil, domain.TodoStatusPending, false},
		{"future deadline stays put", domain.TodoStatusPending, &future, domain.TodoStatusPending, false},
		{"past deadline expires pending", domain.TodoStatusPending, &past, domain.TodoStatusExpired, true},
		{"past deadline expires in_progress", domain.TodoStatusInProgress, &past, domain.TodoStatusExpired, true},
		{"completed is sticky", domain.TodoStatusCompleted, &past, domain.TodoStatusCompleted, false},
		{"already expired is not re-reported", domain.TodoStatusExpired, &past, domain.TodoStatusExpired, false},
		{"deadline equal to now is not yet past", domain.TodoStatusPending, &now, domain.TodoStatusPending, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, changed := Reconcile(domain.Todo{Status: tt.status, ExpiresAt: tt.expiresAt}, now)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantChanged, changed)
		})
	}
}

func TestReconcileDoesNotMutateOtherFields(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	past := now.Add(-time.Minute)
	owner := int64(7)
	in := domain.Todo{
		ID:        3,
		Title:     "write report",
		Body:      "quarterly numbers",
		Status:    domain.TodoStatusPending,
		ExpiresAt: &past,
		CreatedBy: &owner,
		UpdatedBy: &owner,
	}

	out, changed := Reconcile(in, now)
	require.True(t, changed)
	assert.Equal(t, in.ID, out.ID)
	assert.Equal(t, in.Title, out.Title)
	assert.Equal(t, in.Body, out.Body)
	assert.Equal(t, in.ExpiresAt, out.ExpiresAt)
	assert.Equal(t, in.CreatedBy, out.CreatedBy)
	assert.Equal(t, in.UpdatedBy, out.UpdatedBy)
}

func TestValidateStatus(t *testing.T) {
	t.Parallel()

	for _, s := range []domain.TodoStatus{
		domain.TodoStatusPending,
		domain.TodoStatusInProgress,
		domain.TodoStatusCompleted,
		domain.TodoStatusExpired,
	} {
		assert.NoError(t, ValidateStatus(s))
	}

	err := ValidateStatus("archived")
	require.Error(t, err)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "status", verr.Field)
}

func TestValidateExpiry(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	past := now.Add(-time.Second)
	future := now.Add(time.Second)

	assert.NoError(t, ValidateExpiry(nil, now))
	assert.NoError(t, ValidateExpiry(&future, now))
	assert.NoError(t, ValidateExpiry(&now, now))

	err := ValidateExpiry(&past, now)
	require.Error(t, err)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "expires_at", verr.Field)
}
