package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vastra/pkg/cache"
)

func TestIssuePairAndParse(t *testing.T) {
	m := NewManager("test-secret")

	pair, err := m.IssuePair(42, "customer")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)
	assert.NotEqual(t, pair.Access, pair.Refresh)

	access, err := m.ParseTyped(pair.Access, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, uint(42), access.UserID)
	assert.Equal(t, "customer", access.Role)
	assert.NotEmpty(t, access.ID)

	refresh, err := m.ParseTyped(pair.Refresh, TokenTypeRefresh)
	require.NoError(t, err)
	assert.NotEqual(t, access.ID, refresh.ID)
}

func TestParseTypedRejectsWrongUse(t *testing.T) {
	m := NewManager("test-secret")
	pair, err := m.IssuePair(1, "customer")
	require.NoError(t, err)

	_, err = m.ParseTyped(pair.Refresh, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrWrongTokenUse)

	_, err = m.ParseTyped(pair.Access, TokenTypeRefresh)
	assert.ErrorIs(t, err, ErrWrongTokenUse)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	pair, err := NewManager("secret-a").IssuePair(1, "customer")
	require.NoError(t, err)

	_, err = NewManager("secret-b").Parse(pair.Access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := NewManager("s").Parse("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestBlacklistRoundTrip(t *testing.T) {
	bl := NewBlacklist(cache.NewMemory())
	ctx := context.Background()

	revoked, err := bl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, bl.Revoke(ctx, "jti-1", time.Now().Add(time.Hour)))

	revoked, err = bl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestBlacklistSkipsExpired(t *testing.T) {
	bl := NewBlacklist(cache.NewMemory())
	ctx := context.Background()

	// A token already past its expiry needs no blacklist entry.
	require.NoError(t, bl.Revoke(ctx, "jti-old", time.Now().Add(-time.Minute)))

	revoked, err := bl.IsRevoked(ctx, "jti-old")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret-pass")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "secret-pass"))
	assert.False(t, CheckPassword(hash, "wrong-pass"))
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		username string
		email    string
		wantErr  string
	}{
		{"valid", "tr0ub4dor-horse", "ravi", "ravi@example.com", ""},
		{"too short", "abc12", "ravi", "", "at least 8 characters"},
		{"all numeric", "92837465", "ravi", "", "entirely numeric"},
		{"common", "password123", "ravi", "", "too common"},
		{"contains username", "anita-sharma99", "anita-sharma", "", "too similar"},
		{"contains email local part", "xkurta.storex", "someone", "kurta.store@example.com", "too similar"},
		{"short username ignored", "abhorses12", "ab", "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePassword(tc.password, tc.username, tc.email)
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
			}
		})
	}
}
