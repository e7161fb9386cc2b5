package service

import (
	"bytes"
	"encoding/base64"
	"path/filepath"
	"testing"
	"time"

	"github.com/KimuJinsu/go-jwt-auth/internal/auth/store"
	"github.com/KimuJinsu/go-jwt-auth/internal/auth/store/drivers/sqlite"
	"github.com/KimuJinsu/go-jwt-auth/pkg/jwtx"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func newTestCodec(t *testing.T) *jwtx.Codec {
	t.Helper()

	secret := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{0xAB}, 64))
	codec, err := jwtx.NewCodec(secret)
	require.NoError(t, err)
	return codec
}

func newTestServices(t *testing.T) (*UserService, *SessionService, *RefreshService, store.Store) {
	t.Helper()

	st := newTestStore(t)
	codec := newTestCodec(t)

	users := &UserService{Store: st}
	session := &SessionService{
		Codec:      codec,
		Verifier:   users,
		Store:      st,
		AccessTTL:  time.Minute,
		RefreshTTL: time.Hour,
	}
	refresh := &RefreshService{
		Codec:     codec,
		Store:     st,
		AccessTTL: time.Minute,
	}
	return users, session, refresh, st
}
