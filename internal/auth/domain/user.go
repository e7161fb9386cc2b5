package domain

import "time"

// Role names granted to users. The admin role is only ever assigned by
// hand (or a seed migration); signup always produces a plain user.
const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

type User struct {
	ID           string
	Username     string
	Nickname     string
	PasswordHash string // bcrypt encoded
	Activated    bool
	Authorities  []string // Parsed from space-delimited storage
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
