package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/KimuJinsu/go-jwt-auth/internal/auth/domain"
	"github.com/KimuJinsu/go-jwt-auth/internal/auth/store"
	"github.com/KimuJinsu/go-jwt-auth/pkg/jwtx"
	"github.com/KimuJinsu/go-jwt-auth/pkg/slogx"
)

// CredentialVerifier checks a username/password pair against the user
// store. UserService implements it; tests substitute their own.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (jwtx.Principal, error)
}

type SessionService struct {
	Codec      *jwtx.Codec
	Verifier   CredentialVerifier
	Store      store.Store
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Login authenticates the user and, on success, issues a fresh access and
// refresh credential pair. The refresh credential is persisted so it can
// later be renewed against or revoked. Each login produces an independent
// record; earlier logins stay valid.
func (s *SessionService) Login(ctx context.Context, username, password string) (domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	principal, err := s.Verifier.Verify(ctx, username, password)
	if err != nil {
		return domain.TokenPair{}, err
	}

	access, err := s.Codec.Issue(principal, s.AccessTTL)
	if err != nil {
		return domain.TokenPair{}, err
	}

	refresh, err := s.Codec.Issue(principal, s.RefreshTTL)
	if err != nil {
		return domain.TokenPair{}, err
	}

	now := time.Now()
	err = s.Store.RefreshTokens().CreateRefreshToken(ctx, domain.RefreshToken{
		Token:      refresh,
		Username:   principal.Subject,
		ExpiryDate: now.Add(s.RefreshTTL),
		CreatedAt:  now,
	})
	if err != nil {
		return domain.TokenPair{}, err
	}

	l.Info("session established", slog.String("username", principal.Subject))

	return domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}
