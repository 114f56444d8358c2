package services

import (
	"context"
	"testing"
	"time"

	"github.com/meinhoongagan/booking-marketplace/apperr"
	"github.com/meinhoongagan/booking-marketplace/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	tokens := NewTokenService("test-secret", time.Hour, 24*time.Hour)
	return NewAuthService(newTestRepo(t), tokens, redis.NewMemoryBlacklist(), nil)
}

func TestRegisterAndAuthenticate(t *testing.T) {
	auth := newAuthService(t)
	ctx := context.Background()

	consumer, err := auth.RegisterConsumer(ctx, RegisterConsumerInput{
		Username: "carol", Email: " Carol@Example.com ", Password: "s3cret",
	})
	require.NoError(t, err)
	assert.Equal(t, "carol@example.com", consumer.Email)
	assert.NotEqual(t, "s3cret", consumer.Password)

	provider, err := auth.RegisterProvider(ctx, RegisterProviderInput{
		Username: "pat", Email: "pat@example.com", Password: "hunter2", Experience: 4,
	})
	require.NoError(t, err)
	assert.True(t, provider.IsActive)

	pair, err := auth.Authenticate(ctx, "CAROL@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, RoleConsumer, pair.Role)
	assert.Equal(t, consumer.ID, pair.ID)
	assert.NotEmpty(t, pair.RefreshToken)

	sub, err := auth.ResolveSubject(ctx, pair.Token)
	require.NoError(t, err)
	assert.Equal(t, Subject{ID: consumer.ID, Role: RoleConsumer}, sub)

	pair, err = auth.Authenticate(ctx, "pat@example.com", "hunter2")
	require.NoError(t, err)
	sub, err = auth.ResolveSubject(ctx, pair.Token)
	require.NoError(t, err)
	assert.Equal(t, Subject{ID: provider.ID, Role: RoleProvider}, sub)
}

func TestRegisterValidation(t *testing.T) {
	auth := newAuthService(t)
	ctx := context.Background()

	_, err := auth.RegisterConsumer(ctx, RegisterConsumerInput{Username: "carol", Email: "carol@example.com", Password: "x"})
	require.NoError(t, err)

	tests := []struct {
		name string
		run  func() error
		kind error
	}{
		{"missing password", func() error {
			_, err := auth.RegisterConsumer(ctx, RegisterConsumerInput{Username: "a", Email: "a@example.com"})
			return err
		}, apperr.ErrInvalidArgument},
		{"bad email", func() error {
			_, err := auth.RegisterConsumer(ctx, RegisterConsumerInput{Username: "a", Email: "nope", Password: "x"})
			return err
		}, apperr.ErrInvalidArgument},
		{"duplicate consumer email", func() error {
			_, err := auth.RegisterConsumer(ctx, RegisterConsumerInput{Username: "c2", Email: "CAROL@example.com", Password: "x"})
			return err
		}, apperr.ErrConflict},
		{"provider reusing consumer email", func() error {
			_, err := auth.RegisterProvider(ctx, RegisterProviderInput{Username: "p", Email: "carol@example.com", Password: "x"})
			return err
		}, apperr.ErrConflict},
		{"duplicate username", func() error {
			_, err := auth.RegisterConsumer(ctx, RegisterConsumerInput{Username: "carol", Email: "other@example.com", Password: "x"})
			return err
		}, apperr.ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.run(), tt.kind)
		})
	}
}

func TestAuthenticateFailures(t *testing.T) {
	auth := newAuthService(t)
	ctx := context.Background()

	_, err := auth.RegisterConsumer(ctx, RegisterConsumerInput{Username: "carol", Email: "carol@example.com", Password: "right"})
	require.NoError(t, err)

	_, err = auth.Authenticate(ctx, "carol@example.com", "wrong")
	assert.ErrorIs(t, err, apperr.ErrAuth)
	_, err = auth.Authenticate(ctx, "nobody@example.com", "right")
	assert.ErrorIs(t, err, apperr.ErrAuth)
	_, err = auth.Authenticate(ctx, "", "")
	assert.ErrorIs(t, err, apperr.ErrAuth)
}

func TestRefreshAndRevoke(t *testing.T) {
	auth := newAuthService(t)
	ctx := context.Background()

	_, err := auth.RegisterConsumer(ctx, RegisterConsumerInput{Username: "carol", Email: "carol@example.com", Password: "pw"})
	require.NoError(t, err)
	pair, err := auth.Authenticate(ctx, "carol@example.com", "pw")
	require.NoError(t, err)

	_, err = auth.ResolveSubject(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, apperr.ErrAuth, "refresh tokens must not grant access")

	_, err = auth.Refresh(ctx, pair.Token)
	assert.ErrorIs(t, err, apperr.ErrAuth, "access tokens cannot refresh")

	refreshed, err := auth.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.Empty(t, refreshed.RefreshToken)
	_, err = auth.ResolveSubject(ctx, refreshed.Token)
	require.NoError(t, err)

	require.NoError(t, auth.Revoke(ctx, pair.Token))
	_, err = auth.ResolveSubject(ctx, pair.Token)
	assert.ErrorIs(t, err, apperr.ErrAuth)

	_, err = auth.ResolveSubject(ctx, refreshed.Token)
	assert.NoError(t, err, "revoking one token leaves others valid")
}

func TestTokenService(t *testing.T) {
	tokens := NewTokenService("secret", time.Hour, 2*time.Hour)
	now := time.Date(2024, time.June, 3, 10, 0, 0, 0, time.UTC)
	tokens.now = func() time.Time { return now }

	pair, err := tokens.Issue(Subject{ID: 7, Role: RoleProvider}, "pat@example.com")
	require.NoError(t, err)

	claims, err := tokens.Parse(pair.Token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.Subject.ID)
	assert.Equal(t, RoleProvider, claims.Role)
	assert.Equal(t, "pat@example.com", claims.Email)
	assert.NotEmpty(t, claims.TokenID)
	assert.False(t, claims.Refresh)

	refresh, err := tokens.Parse(pair.RefreshToken)
	require.NoError(t, err)
	assert.True(t, refresh.Refresh)

	now = now.Add(90 * time.Minute)
	_, err = tokens.Parse(pair.Token)
	assert.ErrorIs(t, err, apperr.ErrAuth)
	_, err = tokens.Parse(pair.RefreshToken)
	assert.NoError(t, err)

	other := NewTokenService("other-secret", time.Hour, time.Hour)
	_, err = other.Parse(pair.RefreshToken)
	assert.ErrorIs(t, err, apperr.ErrAuth)

	_, err = tokens.Parse("not-a-token")
	assert.ErrorIs(t, err, apperr.ErrAuth)
}
