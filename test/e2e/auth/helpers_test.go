package auth_test

import (
	"bytes"
	"encoding/base64"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/KimuJinsu/go-jwt-auth/internal/auth/app"
	"github.com/KimuJinsu/go-jwt-auth/pkg/authapi"

	"github.com/stretchr/testify/require"
)

/*
 * Common helpers for auth service end-to-end tests. Unlike the package
 * tests under internal/, these go through the full Application wiring:
 * config, migrations, services, router and middleware, exercised over a
 * real HTTP listener with the Go client.
 */

func testSecret() string {
	return base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{0x42}, 64))
}

// startService boots the whole application against a throwaway database
// and serves its handler on an ephemeral port.
func startService(t *testing.T) *authapi.Client {
	t.Helper()

	cfg := app.Config{
		JWTSecret:            testSecret(),
		AccessTokenValidity:  time.Minute,
		RefreshTokenValidity: time.Hour,
		DatabaseFile:         filepath.Join(t.TempDir(), "auth.db"),
		Env:                  "test",
		LogLevel:             "error",
		LogFormat:            "text",
		ShutdownGracePeriod:  time.Second,
	}

	application, err := app.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Shutdown() })

	server := httptest.NewServer(application.Handler())
	t.Cleanup(server.Close)

	return authapi.NewClient(server.URL)
}
