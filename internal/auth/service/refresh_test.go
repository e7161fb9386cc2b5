package service

import (
	"context"
	"testing"
	"time"

	"github.com/KimuJinsu/go-jwt-auth/internal/auth/domain"
	"github.com/KimuJinsu/go-jwt-auth/internal/auth/store"
	"github.com/KimuJinsu/go-jwt-auth/pkg/jwtx"

	"github.com/stretchr/testify/require"
)

func TestRenewIssuesFreshAccessCredential(t *testing.T) {
	users, session, refresh, st := newTestServices(t)
	ctx := context.Background()

	_, err := users.Signup(ctx, "alice", "hunter2password", "Alice")
	require.NoError(t, err)

	pair, err := session.Login(ctx, "alice", "hunter2password")
	require.NoError(t, err)

	before, err := st.RefreshTokens().GetRefreshToken(ctx, pair.RefreshToken)
	require.NoError(t, err)

	principal, err := refresh.Codec.Decode(pair.RefreshToken)
	require.NoError(t, err)

	access, err := refresh.Renew(ctx, pair.RefreshToken, principal)
	require.NoError(t, err)
	require.True(t, refresh.Codec.Validate(access))

	p, err := refresh.Codec.Decode(access)
	require.NoError(t, err)
	require.Equal(t, "alice", p.Subject)

	// No rotation: the stored record is untouched by a renewal.
	after, err := st.RefreshTokens().GetRefreshToken(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.True(t, before.ExpiryDate.Equal(after.ExpiryDate))

	// And it can be renewed again.
	_, err = refresh.Renew(ctx, pair.RefreshToken, principal)
	require.NoError(t, err)
}

func TestRenewUnknownCredential(t *testing.T) {
	_, _, refresh, _ := newTestServices(t)

	_, err := refresh.Renew(context.Background(), "abc", jwtx.Principal{Subject: "alice"})
	require.ErrorIs(t, err, ErrUnknownRefreshToken)
}

func TestRenewExpiredCredentialReapsRecord(t *testing.T) {
	users, _, refresh, st := newTestServices(t)
	ctx := context.Background()

	_, err := users.Signup(ctx, "alice", "hunter2password", "Alice")
	require.NoError(t, err)

	// Plant a record whose validity window passed one second ago.
	expired := domain.RefreshToken{
		Token:      "stale.refresh.credential",
		Username:   "alice",
		ExpiryDate: time.Now().Add(-time.Second),
		CreatedAt:  time.Now().Add(-time.Hour),
	}
	require.NoError(t, st.RefreshTokens().CreateRefreshToken(ctx, expired))

	_, err = refresh.Renew(ctx, expired.Token, jwtx.Principal{Subject: "alice"})
	require.ErrorIs(t, err, ErrRefreshTokenExpired)

	// The record is gone, so a retry reports it as unknown.
	_, err = st.RefreshTokens().GetRefreshToken(ctx, expired.Token)
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = refresh.Renew(ctx, expired.Token, jwtx.Principal{Subject: "alice"})
	require.ErrorIs(t, err, ErrUnknownRefreshToken)
}

func TestRevoke(t *testing.T) {
	users, session, refresh, st := newTestServices(t)
	ctx := context.Background()

	_, err := users.Signup(ctx, "alice", "hunter2password", "Alice")
	require.NoError(t, err)

	pair, err := session.Login(ctx, "alice", "hunter2password")
	require.NoError(t, err)

	revoked, err := refresh.Revoke(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.True(t, revoked)

	_, err = st.RefreshTokens().GetRefreshToken(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, store.ErrNotFound)

	// Revoking twice returns true then false.
	revoked, err = refresh.Revoke(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.False(t, revoked)

	// A revoked credential can no longer be renewed, even though its
	// signature still verifies.
	require.True(t, refresh.Codec.Validate(pair.RefreshToken))
	principal, err := refresh.Codec.Decode(pair.RefreshToken)
	require.NoError(t, err)
	_, err = refresh.Renew(ctx, pair.RefreshToken, principal)
	require.ErrorIs(t, err, ErrUnknownRefreshToken)
}

func TestRevokeUnknownCredential(t *testing.T) {
	_, _, refresh, _ := newTestServices(t)

	revoked, err := refresh.Revoke(context.Background(), "never.issued.credential")
	require.NoError(t, err)
	require.False(t, revoked)
}
