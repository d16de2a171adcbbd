package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monkesay/monke-api/internal/config"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:                   "0123456789abcdef0123456789abcdef",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 10080,
	}
}

func TestNewJWTServiceRejectsShortSecret(t *testing.T) {
	t.Parallel()

	cfg := testAuthConfig()
	cfg.JWTSecret = "too-short"

	_, err := NewJWTService(cfg)
	assert.Error(t, err)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Parallel()

	service, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	userID := uuid.New()
	ctx := context.Background()

	token, err := service.GenerateToken(ctx, userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "access", claims.TokenType)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	t.Parallel()

	service, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	userID := uuid.New()
	ctx := context.Background()

	token, err := service.GenerateRefreshToken(ctx, userID)
	require.NoError(t, err)

	claims, err := service.ValidateRefreshToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "refresh", claims.TokenType)
}

func TestTokenTypeIsEnforced(t *testing.T) {
	t.Parallel()

	service, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	ctx := context.Background()
	userID := uuid.New()

	refresh, err := service.GenerateRefreshToken(ctx, userID)
	require.NoError(t, err)
	access, err := service.GenerateToken(ctx, userID)
	require.NoError(t, err)

	_, err = service.ValidateToken(ctx, refresh)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	_, err = service.ValidateRefreshToken(ctx, access)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestExpiredTokenIsRejected(t *testing.T) {
	t.Parallel()

	service, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	impl := service.(*hmacJWTService)
	past := time.Now().Add(-24 * time.Hour)
	impl.timeFunc = func() time.Time { return past }

	ctx := context.Background()
	token, err := service.GenerateToken(ctx, uuid.New())
	require.NoError(t, err)

	// Back to real time: the token issued in the past has expired
	impl.timeFunc = time.Now
	_, err = service.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestGarbageTokenIsRejected(t *testing.T) {
	t.Parallel()

	service, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	_, err = service.ValidateToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestBcryptVerifier(t *testing.T) {
	t.Parallel()

	verifier := NewBcryptVerifier()

	hashed := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

	assert.Error(t, verifier.Compare(hashed, "wrong password"))
	assert.Error(t, verifier.Compare("not-a-hash", "anything"))
}
