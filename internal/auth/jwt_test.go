package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *TokenService {
	t.Helper()
	s, err := NewTokenService(TokenConfig{
		Secret:     "test-secret",
		Issuer:     "catalog-test",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 24 * time.Hour,
	})
	require.NoError(t, err)
	return s
}

func TestNewTokenService_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  TokenConfig
	}{
		{name: "missing secret", cfg: TokenConfig{Issuer: "i", AccessTTL: time.Minute, RefreshTTL: time.Minute}},
		{name: "missing issuer", cfg: TokenConfig{Secret: "s", AccessTTL: time.Minute, RefreshTTL: time.Minute}},
		{name: "zero ttl", cfg: TokenConfig{Secret: "s", Issuer: "i", RefreshTTL: time.Minute}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTokenService(tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	s := newTestService(t)

	pair, err := s.IssuePair(42, "VENDOR")
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, pair.ExpiresIn)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	claims, err := s.Verify(pair.AccessToken, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "VENDOR", claims.Role)

	claims, err = s.Verify(pair.RefreshToken, TokenTypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.Type)
}

func TestTokenService_RejectsWrongType(t *testing.T) {
	s := newTestService(t)
	pair, err := s.IssuePair(1, "USER")
	require.NoError(t, err)

	_, err = s.Verify(pair.RefreshToken, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestTokenService_RejectsExpired(t *testing.T) {
	s := newTestService(t)
	issued := time.Now().Add(-time.Hour)
	s.now = func() time.Time { return issued }

	pair, err := s.IssuePair(1, "USER")
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.Verify(pair.AccessToken, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_RejectsForeignSecret(t *testing.T) {
	s := newTestService(t)
	other, err := NewTokenService(TokenConfig{Secret: "other", Issuer: "catalog-test", AccessTTL: time.Minute, RefreshTTL: time.Minute})
	require.NoError(t, err)

	pair, err := other.IssuePair(1, "USER")
	require.NoError(t, err)

	_, err = s.Verify(pair.AccessToken, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = s.Verify("garbage", TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_RejectsInvalidUser(t *testing.T) {
	_, err := newTestService(t).IssuePair(0, "USER")
	assert.Error(t, err)
}

func TestIdentityContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	ctx := WithIdentity(context.Background(), Identity{UserID: 9, Role: "USER"})
	id, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(9), id.UserID)
}
