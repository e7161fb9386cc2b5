package jwtx_test

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/KimuJinsu/go-jwt-auth/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func testSecret(t *testing.T) string {
	t.Helper()

	key := make([]byte, jwtx.MinKeyBytes)
	for i := range key {
		key[i] = byte(i)
	}
	return base64.StdEncoding.EncodeToString(key)
}

func newTestCodec(t *testing.T) *jwtx.Codec {
	t.Helper()

	codec, err := jwtx.NewCodec(testSecret(t))
	require.NoError(t, err)
	return codec
}

func TestNewCodec(t *testing.T) {
	t.Run("valid secret", func(t *testing.T) {
		codec, err := jwtx.NewCodec(testSecret(t))
		require.NoError(t, err)
		require.True(t, codec.Ready())
	})

	t.Run("empty secret", func(t *testing.T) {
		_, err := jwtx.NewCodec("")
		require.Error(t, err)
	})

	t.Run("not base64", func(t *testing.T) {
		_, err := jwtx.NewCodec("!!not-base64!!")
		require.Error(t, err)
	})

	t.Run("key too short", func(t *testing.T) {
		_, err := jwtx.NewCodec(base64.StdEncoding.EncodeToString([]byte("short")))
		require.Error(t, err)
	})
}

func TestIssueDecodeRoundTrip(t *testing.T) {
	codec := newTestCodec(t)

	t.Run("subject and roles survive", func(t *testing.T) {
		p := jwtx.Principal{Subject: "alice", Roles: []string{"ROLE_USER", "ROLE_ADMIN"}}

		token, err := codec.Issue(p, time.Minute)
		require.NoError(t, err)

		got, err := codec.Decode(token)
		require.NoError(t, err)
		require.Equal(t, "alice", got.Subject)
		require.ElementsMatch(t, p.Roles, got.Roles)
	})

	t.Run("role ordering does not matter", func(t *testing.T) {
		a := jwtx.Principal{Subject: "bob", Roles: []string{"ROLE_ADMIN", "ROLE_USER"}}
		b := jwtx.Principal{Subject: "bob", Roles: []string{"ROLE_USER", "ROLE_ADMIN"}}

		tokenA, err := codec.Issue(a, time.Minute)
		require.NoError(t, err)
		tokenB, err := codec.Issue(b, time.Minute)
		require.NoError(t, err)

		gotA, err := codec.Decode(tokenA)
		require.NoError(t, err)
		gotB, err := codec.Decode(tokenB)
		require.NoError(t, err)

		require.ElementsMatch(t, gotA.Roles, gotB.Roles)
	})

	t.Run("duplicate roles collapse to a set", func(t *testing.T) {
		p := jwtx.Principal{Subject: "carol", Roles: []string{"ROLE_USER", "ROLE_USER"}}

		token, err := codec.Issue(p, time.Minute)
		require.NoError(t, err)

		got, err := codec.Decode(token)
		require.NoError(t, err)
		require.Equal(t, []string{"ROLE_USER"}, got.Roles)
	})

	t.Run("single role", func(t *testing.T) {
		p := jwtx.Principal{Subject: "dave", Roles: []string{"ROLE_USER"}}

		token, err := codec.Issue(p, time.Minute)
		require.NoError(t, err)

		got, err := codec.Decode(token)
		require.NoError(t, err)
		require.Equal(t, p, got)
	})
}

func TestExpiryBoundary(t *testing.T) {
	codec := newTestCodec(t)

	p := jwtx.Principal{Subject: "alice", Roles: []string{"ROLE_USER"}}
	token, err := codec.Issue(p, 0)
	require.NoError(t, err)

	// A zero validity window is already invalid one tick later.
	time.Sleep(1100 * time.Millisecond)

	require.False(t, codec.Validate(token))
	require.Equal(t, jwtx.StatusExpired, codec.Inspect(token))

	_, err = codec.Decode(token)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}

func TestTamperDetection(t *testing.T) {
	codec := newTestCodec(t)

	p := jwtx.Principal{Subject: "alice", Roles: []string{"ROLE_USER"}}
	token, err := codec.Issue(p, time.Minute)
	require.NoError(t, err)
	require.True(t, codec.Validate(token))

	// Flip the final signature character to another base64url character.
	last := token[len(token)-1]
	flipped := byte('A')
	if last == 'A' {
		flipped = 'B'
	}
	tampered := token[:len(token)-1] + string(flipped)

	require.False(t, codec.Validate(tampered))
	require.Equal(t, jwtx.StatusBadSignature, codec.Inspect(tampered))

	_, err = codec.Decode(tampered)
	require.ErrorIs(t, err, jwtx.ErrInvalidSignature)
}

func TestInspectFailureKinds(t *testing.T) {
	codec := newTestCodec(t)

	t.Run("garbage is malformed", func(t *testing.T) {
		require.Equal(t, jwtx.StatusMalformed, codec.Inspect("not-a-credential"))

		_, err := codec.Decode("not-a-credential")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("empty string is malformed", func(t *testing.T) {
		require.Equal(t, jwtx.StatusMalformed, codec.Inspect(""))
	})

	t.Run("foreign algorithm is unsupported", func(t *testing.T) {
		// Same key, wrong algorithm: structurally fine, but not ours.
		key, err := base64.StdEncoding.DecodeString(testSecret(t))
		require.NoError(t, err)

		foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   "alice",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		})
		token, err := foreign.SignedString(key)
		require.NoError(t, err)

		require.Equal(t, jwtx.StatusUnsupported, codec.Inspect(token))

		_, err = codec.Decode(token)
		require.ErrorIs(t, err, jwtx.ErrUnsupported)
	})

	t.Run("missing expiry is rejected", func(t *testing.T) {
		key, err := base64.StdEncoding.DecodeString(testSecret(t))
		require.NoError(t, err)

		noExp := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
			Subject: "alice",
		})
		token, err := noExp.SignedString(key)
		require.NoError(t, err)

		require.False(t, codec.Validate(token))
	})

	t.Run("wrong key is a bad signature", func(t *testing.T) {
		otherKey := make([]byte, jwtx.MinKeyBytes)
		for i := range otherKey {
			otherKey[i] = byte(255 - i)
		}
		other, err := jwtx.NewCodec(base64.StdEncoding.EncodeToString(otherKey))
		require.NoError(t, err)

		token, err := other.Issue(jwtx.Principal{Subject: "alice", Roles: []string{"ROLE_USER"}}, time.Minute)
		require.NoError(t, err)

		require.Equal(t, jwtx.StatusBadSignature, codec.Inspect(token))
	})
}

func TestValidateIsBooleanProjection(t *testing.T) {
	codec := newTestCodec(t)

	token, err := codec.Issue(jwtx.Principal{Subject: "alice", Roles: []string{"ROLE_USER"}}, time.Minute)
	require.NoError(t, err)

	require.True(t, codec.Validate(token))
	require.False(t, codec.Validate("garbage"))
	require.False(t, codec.Validate(""))
}

func TestPrincipalRoles(t *testing.T) {
	p := jwtx.Principal{Subject: "alice", Roles: []string{"ROLE_USER"}}

	require.True(t, p.HasRole("ROLE_USER"))
	require.False(t, p.HasRole("ROLE_ADMIN"))
	require.True(t, p.HasAnyRole("ROLE_ADMIN", "ROLE_USER"))
	require.False(t, p.HasAnyRole("ROLE_ADMIN"))
	require.False(t, p.HasAnyRole())
}
