package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/KimuJinsu/go-jwt-auth/internal/auth/domain"
	"github.com/KimuJinsu/go-jwt-auth/internal/auth/store"
	"github.com/KimuJinsu/go-jwt-auth/pkg/cryptox"
	"github.com/KimuJinsu/go-jwt-auth/pkg/idx"
	"github.com/KimuJinsu/go-jwt-auth/pkg/jwtx"
	"github.com/KimuJinsu/go-jwt-auth/pkg/slogx"
)

var (
	ErrUserExists         = errors.New("user_exists")
	ErrInvalidCredentials = errors.New("invalid_credentials")
)

type UserService struct {
	Store store.Store
}

// Signup registers a new user. Every new account gets the plain user role
// and is activated immediately; the admin role is only ever granted out of
// band.
func (s *UserService) Signup(ctx context.Context, username, password, nickname string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	passHash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Nickname:     nickname,
		PasswordHash: passHash,
		Activated:    true,
		Authorities:  []string{domain.RoleUser},
	}

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			l.Info("signup rejected, username taken", slog.String("username", username))
			return domain.User{}, ErrUserExists
		}
		return domain.User{}, err
	}

	l.Info("user registered", slog.String("username", username))

	// Never hand the hash back to callers
	u.PasswordHash = ""
	return u, nil
}

// GetUserWithAuthorities fetches a user by username, hash stripped.
func (s *UserService) GetUserWithAuthorities(ctx context.Context, username string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		return domain.User{}, err
	}
	u.PasswordHash = ""
	return u, nil
}

// Verify checks a username/password pair and, on success, returns the
// principal that credentials for that user should carry. Unknown users,
// wrong passwords and deactivated accounts all collapse into
// ErrInvalidCredentials so callers cannot probe which usernames exist.
func (s *UserService) Verify(ctx context.Context, username, password string) (jwtx.Principal, error) {
	l := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Info("login failed, unknown user", slog.String("username", username))
			return jwtx.Principal{}, ErrInvalidCredentials
		}
		return jwtx.Principal{}, err
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		l.Info("login failed, bad password", slog.String("username", username))
		return jwtx.Principal{}, ErrInvalidCredentials
	}

	if !u.Activated {
		l.Info("login failed, account deactivated", slog.String("username", username))
		return jwtx.Principal{}, ErrInvalidCredentials
	}

	return jwtx.Principal{Subject: u.Username, Roles: u.Authorities}, nil
}
