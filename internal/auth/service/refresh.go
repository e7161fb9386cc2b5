package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/KimuJinsu/go-jwt-auth/internal/auth/store"
	"github.com/KimuJinsu/go-jwt-auth/pkg/jwtx"
	"github.com/KimuJinsu/go-jwt-auth/pkg/slogx"
)

var (
	// ErrUnknownRefreshToken means no record exists for the presented
	// credential: it was never issued, already revoked, or already
	// reaped after expiring.
	ErrUnknownRefreshToken = errors.New("unknown_refresh_token")

	// ErrRefreshTokenExpired means the record existed but its validity
	// window has passed. The record is deleted as a side effect, so a
	// retry with the same credential reports it as unknown.
	ErrRefreshTokenExpired = errors.New("refresh_token_expired")
)

type RefreshService struct {
	Codec     *jwtx.Codec
	Store     store.Store
	AccessTTL time.Duration
}

// Renew exchanges a live refresh credential for a fresh access credential
// minted for the caller-supplied principal. The refresh credential itself
// is not rotated: the stored record stays in place untouched and the same
// credential can be presented again. Expired records are deleted lazily,
// here, on presentation. The record's username is not cross-checked
// against the principal.
func (s *RefreshService) Renew(ctx context.Context, refreshToken string, principal jwtx.Principal) (string, error) {
	l := slogx.FromContext(ctx)

	rec, err := s.Store.RefreshTokens().GetRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrUnknownRefreshToken
		}
		return "", err
	}

	if rec.Expired(time.Now()) {
		if _, err := s.Store.RefreshTokens().DeleteRefreshToken(ctx, refreshToken); err != nil {
			return "", err
		}
		l.Info("expired refresh credential reaped", slog.String("username", rec.Username))
		return "", ErrRefreshTokenExpired
	}

	access, err := s.Codec.Issue(principal, s.AccessTTL)
	if err != nil {
		return "", err
	}

	l.Info("access credential renewed", slog.String("username", rec.Username))
	return access, nil
}

// Revoke deletes the record for the presented credential and reports
// whether anything was removed. Revoking twice returns true then false,
// never an error.
func (s *RefreshService) Revoke(ctx context.Context, refreshToken string) (bool, error) {
	l := slogx.FromContext(ctx)

	deleted, err := s.Store.RefreshTokens().DeleteRefreshToken(ctx, refreshToken)
	if err != nil {
		return false, err
	}
	if deleted {
		l.Info("refresh credential revoked")
	}
	return deleted, nil
}
