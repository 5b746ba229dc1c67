package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-api/internal/domain"
	"todo-api/internal/repository"
	"todo-api/internal/repository/sqlite"
)

func newTestRepos(t *testing.T) (*sql.DB, repository.UserRepository, repository.TodoRepository) {
	t.Helper()

	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	users := sqlite.NewUserRepository(db)
	todos := sqlite.NewTodoRepository(db)
	ctx := context.Background()
	require.NoError(t, users.Init(ctx))
	require.NoError(t, todos.Init(ctx))
	return db, users, todos
}

func TestUserServiceRegister(t *testing.T) {
	t.Parallel()

	_, users, _ := newTestRepos(t)
	svc := NewUserService(users)
	ctx := context.Background()

	user, err := svc.Register(ctx, "  Alice@Example.COM ", "strongpassword123")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsStaff)
	assert.Empty(t, user.PasswordHash, "credential must never be exposed")
	assert.NotZero(t, user.ID)
}

func TestUserServiceRegisterValidation(t *testing.T) {
	t.Parallel()

	_, users, _ := newTestRepos(t)
	svc := NewUserService(users)
	ctx := context.Background()

	tests := []struct {
		name      string
		email     string
		password  string
		wantField string
	}{
		{"empty email", "", "strongpassword123", "email"},
		{"not an address", "nodomain", "strongpassword123", "email"},
		{"empty password", "a@example.com", "", "password"},
		{"short password", "a@example.com", "short", "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.email, tt.password)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestUserServiceRegisterDuplicate(t *testing.T) {
	t.Parallel()

	_, users, _ := newTestRepos(t)
	svc := NewUserService(users)
	ctx := context.Background()

	_, err := svc.Register(ctx, "dup@example.com", "strongpassword123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "dup@example.com", "otherpassword456")
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Field)
}

func TestUserServiceRegisterAdmin(t *testing.T) {
	t.Parallel()

	_, users, _ := newTestRepos(t)
	svc := NewUserService(users)

	user, err := svc.RegisterAdmin(context.Background(), "admin@example.com", "strongpassword123")
	require.NoError(t, err)
	assert.True(t, user.IsStaff)
	assert.True(t, user.IsActive)
}

func TestUserServiceAuthenticate(t *testing.T) {
	t.Parallel()

	_, users, _ := newTestRepos(t)
	svc := NewUserService(users)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "login@example.com", "strongpassword123")
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, "login@example.com", "strongpassword123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.Empty(t, user.PasswordHash)

	// unknown account and wrong password are indistinguishable
	_, err = svc.Authenticate(ctx, "login@example.com", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "ghost@example.com", "strongpassword123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserServiceAuthenticateInactive(t *testing.T) {
	t.Parallel()

	db, users, _ := newTestRepos(t)
	svc := NewUserService(users)
	ctx := context.Background()

	user, err := svc.Register(ctx, "inactive@example.com", "strongpassword123")
	require.NoError(t, err)

	// flip the active flag the way an administrative action would
	_, err = db.ExecContext(ctx, `UPDATE users SET is_active = 0 WHERE id = ?`, user.ID)
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "inactive@example.com", "strongpassword123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
