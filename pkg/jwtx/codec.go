package jwtx

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinKeyBytes is the minimum decoded key length. HS512 wants a key at
// least as long as the hash output (RFC 2104), so anything shorter is a
// configuration mistake rather than something to silently accept.
const MinKeyBytes = 64

// Claims is the payload we embed in a bearer credential. Kept deliberately
// small: subject, comma-joined roles and expiry. Anything else a consumer
// needs it should look up itself.
type Claims struct {
	jwt.RegisteredClaims

	// Auth carries the principal's roles as a single comma-joined string,
	// e.g. "ROLE_USER,ROLE_ADMIN".
	Auth string `json:"auth"`
}

// Status is the outcome of verifying a credential. Validate collapses it
// to a boolean for callers that only care about yes/no; the full variant
// stays available for diagnostics.
type Status int

const (
	StatusValid Status = iota
	StatusExpired
	StatusBadSignature
	StatusMalformed
	StatusUnsupported
)

func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusExpired:
		return "expired"
	case StatusBadSignature:
		return "bad_signature"
	case StatusMalformed:
		return "malformed"
	case StatusUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

var (
	ErrMalformed        = errors.New("jwtx: malformed credential")
	ErrExpired          = errors.New("jwtx: credential expired")
	ErrInvalidSignature = errors.New("jwtx: invalid signature")
	ErrUnsupported      = errors.New("jwtx: unsupported credential")
)

// Codec signs and parses bearer credentials. It is the sole owner of the
// HMAC-SHA-512 signing key: the key is derived once from the configured
// secret and never changes for the process lifetime, which makes the codec
// safe for unsynchronized concurrent use. A key change across restarts
// invalidates every outstanding credential.
type Codec struct {
	key []byte
}

// NewCodec derives the signing key from a base64-encoded secret.
func NewCodec(secret string) (*Codec, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("jwtx: signing secret is empty")
	}

	key, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		return nil, fmt.Errorf("jwtx: signing secret is not valid base64: %w", err)
	}

	if len(key) < MinKeyBytes {
		return nil, fmt.Errorf("jwtx: signing key too short: %d bytes, need at least %d", len(key), MinKeyBytes)
	}

	return &Codec{key: key}, nil
}

// Ready reports whether the codec holds a usable signing key.
func (c *Codec) Ready() bool { return c != nil && len(c.key) >= MinKeyBytes }

// Issue signs a credential for the principal, valid for ttl from now.
// Pure CPU-bound signing, no side effects.
func (c *Codec) Issue(p Principal, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.Subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Auth: strings.Join(p.Roles, ","),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return token.SignedString(c.key)
}

// Inspect verifies a credential and reports the tagged outcome. Callers
// that only need a boolean should use Validate; the variant exists so
// diagnostics (and any future policy) can tell "expired" from "forged".
func (c *Codec) Inspect(credential string) Status {
	_, status := c.parse(credential)
	return status
}

// Validate reports whether the credential has a valid signature and an
// expiry strictly in the future. The failure kind is logged, never
// returned.
func (c *Codec) Validate(credential string) bool {
	status := c.Inspect(credential)
	if status != StatusValid {
		slog.Debug("credential rejected", "reason", status.String())
	}
	return status == StatusValid
}

// Decode re-parses a credential and reconstructs the principal, splitting
// the roles claim back into a set. In the normal flow Decode only runs
// after Validate returned true; a caller invoking it on an unvalidated
// string must handle all four failure kinds itself.
func (c *Codec) Decode(credential string) (Principal, error) {
	claims, status := c.parse(credential)
	switch status {
	case StatusValid:
	case StatusExpired:
		return Principal{}, ErrExpired
	case StatusBadSignature:
		return Principal{}, ErrInvalidSignature
	case StatusUnsupported:
		return Principal{}, ErrUnsupported
	default:
		return Principal{}, ErrMalformed
	}

	return Principal{
		Subject: claims.Subject,
		Roles:   splitRoles(claims.Auth),
	}, nil
}

func (c *Codec) parse(credential string) (*Claims, Status) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(credential, claims, c.keyFunc,
		jwt.WithExpirationRequired(),
	)

	switch {
	case err == nil:
		return claims, StatusValid
	case errors.Is(err, ErrUnsupported):
		return nil, StatusUnsupported
	case errors.Is(err, jwt.ErrTokenMalformed):
		return nil, StatusMalformed
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, StatusExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, StatusBadSignature
	default:
		return nil, StatusMalformed
	}
}

func (c *Codec) keyFunc(t *jwt.Token) (any, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, ErrUnsupported
	}
	if t.Method.Alg() != jwt.SigningMethodHS512.Alg() {
		return nil, ErrUnsupported
	}
	return c.key, nil
}

func splitRoles(auth string) []string {
	parts := strings.Split(auth, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		role := strings.TrimSpace(part)
		if role == "" {
			continue
		}
		if _, ok := seen[role]; ok {
			continue
		}
		seen[role] = struct{}{}
		out = append(out, role)
	}
	return out
}
