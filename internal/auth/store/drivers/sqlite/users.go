package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/KimuJinsu/go-jwt-auth/internal/auth/domain"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, username, nickname, password_hash, activated, authorities, created_at, updated_at`

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username)

	var (
		u           domain.User
		authorities string
		createdAt   int64
		updatedAt   int64
	)
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Nickname,
		&u.PasswordHash,
		&u.Activated,
		&authorities,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}

	u.Authorities = splitAuthorities(authorities)
	u.CreatedAt = time.Unix(createdAt, 0).UTC()
	u.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now().Unix()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, username, nickname, password_hash, activated, authorities, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID,
		u.Username,
		u.Nickname,
		u.PasswordHash,
		u.Activated,
		joinAuthorities(u.Authorities),
		now,
		now,
	)
	return mapConstraint(err)
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// Authorities are stored space-delimited in a single column, same shape as
// an OAuth2 scope string.
func joinAuthorities(authorities []string) string {
	return strings.Join(authorities, " ")
}

func splitAuthorities(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Fields(s)
}
