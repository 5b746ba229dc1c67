package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-api/internal/domain"
)

func TestTokenServiceIssueAndParse(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("secret", 15*time.Minute, 7*24*time.Hour)
	user := &domain.User{ID: 42, Email: "u@example.com"}

	pair, err := svc.IssuePair(user)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	userID, err := svc.ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)

	userID, err = svc.ParseRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestTokenServiceRejectsWrongType(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("secret", 15*time.Minute, 7*24*time.Hour)
	pair, err := svc.IssuePair(&domain.User{ID: 1})
	require.NoError(t, err)

	_, err = svc.ParseAccess(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ParseRefresh(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenServiceRejectsExpired(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("secret", -time.Minute, -time.Minute)
	pair, err := svc.IssuePair(&domain.User{ID: 1})
	require.NoError(t, err)

	_, err = svc.ParseAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ParseRefresh(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenServiceRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewTokenService("right-secret", time.Hour, time.Hour)
	verifier := NewTokenService("wrong-secret", time.Hour, time.Hour)

	pair, err := issuer.IssuePair(&domain.User{ID: 1})
	require.NoError(t, err)

	_, err = verifier.ParseAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenServiceRejectsMalformed(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("secret", time.Hour, time.Hour)

	for _, token := range []string{"", "not.a.jwt", "aaaa.bbbb.cccc"} {
		_, err := svc.ParseAccess(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}
