package sqlite

import (
	"context"
	"time"

	"github.com/KimuJinsu/go-jwt-auth/internal/auth/domain"
)

type refreshTokensRepo struct {
	db dbtx
}

func (r *refreshTokensRepo) CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO refresh_tokens (token, username, expiry_date, created_at)
		 VALUES (?, ?, ?, ?)`,
		t.Token,
		t.Username,
		t.ExpiryDate.Unix(),
		t.CreatedAt.Unix(),
	)
	return mapConstraint(err)
}

func (r *refreshTokensRepo) GetRefreshToken(ctx context.Context, token string) (domain.RefreshToken, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT token, username, expiry_date, created_at
		 FROM refresh_tokens WHERE token = ?`, token)

	var (
		t          domain.RefreshToken
		expiryDate int64
		createdAt  int64
	)
	err := row.Scan(&t.Token, &t.Username, &expiryDate, &createdAt)
	if err != nil {
		return domain.RefreshToken{}, mapNotFound(err)
	}

	t.ExpiryDate = time.Unix(expiryDate, 0).UTC()
	t.CreatedAt = time.Unix(createdAt, 0).UTC()
	return t, nil
}

func (r *refreshTokensRepo) DeleteRefreshToken(ctx context.Context, token string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM refresh_tokens WHERE token = ?`, token)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
