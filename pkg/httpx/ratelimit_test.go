package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KimuJinsu/go-jwt-auth/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("allows requests within limit", func(t *testing.T) {
		config := httpx.RateLimitConfig{RequestsPerWindow: 3, Window: time.Minute, Burst: 3}
		handler := httpx.Chain(okHandler(), httpx.RateLimitByIP(config))

		for i := 0; i < 3; i++ {
			req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
			req.RemoteAddr = "10.0.0.1:1234"
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code)
		}
	})

	t.Run("rejects requests over limit", func(t *testing.T) {
		config := httpx.RateLimitConfig{RequestsPerWindow: 2, Window: time.Minute, Burst: 2}
		handler := httpx.Chain(okHandler(), httpx.RateLimitByIP(config))

		for i := 0; i < 2; i++ {
			req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
			req.RemoteAddr = "10.0.0.2:1234"
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code)
		}

		req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
		req.RemoteAddr = "10.0.0.2:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		require.NotEmpty(t, rec.Header().Get("Retry-After"))
	})

	t.Run("limits are per key", func(t *testing.T) {
		config := httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}
		handler := httpx.Chain(okHandler(), httpx.RateLimitByIP(config))

		first := httptest.NewRequest(http.MethodPost, "/api/login", nil)
		first.RemoteAddr = "10.0.0.3:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, first)
		require.Equal(t, http.StatusOK, rec.Code)

		other := httptest.NewRequest(http.MethodPost, "/api/login", nil)
		other.RemoteAddr = "10.0.0.4:1234"
		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, other)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("honours forwarded headers", func(t *testing.T) {
		config := httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}
		handler := httpx.Chain(okHandler(), httpx.RateLimitByIP(config))

		req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
		req.RemoteAddr = "10.0.0.5:1234"
		req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.5")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		again := httptest.NewRequest(http.MethodPost, "/api/login", nil)
		again.RemoteAddr = "10.0.0.6:1234" // different socket, same client IP
		again.Header.Set("X-Forwarded-For", "203.0.113.9")
		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, again)
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
	})
}

func TestParseRateLimitFromEnv(t *testing.T) {
	defaults := httpx.RateLimitConfig{RequestsPerWindow: 5, Window: time.Minute, Burst: 5}

	t.Run("no env returns defaults", func(t *testing.T) {
		got := httpx.ParseRateLimitFromEnv("UNSET_PROFILE", defaults)
		require.Equal(t, defaults, got)
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("RATELIMIT_TESTPROFILE_REQUESTS", "50")
		t.Setenv("RATELIMIT_TESTPROFILE_WINDOW_SEC", "30")
		t.Setenv("RATELIMIT_TESTPROFILE_BURST", "10")

		got := httpx.ParseRateLimitFromEnv("TESTPROFILE", defaults)
		require.Equal(t, 50, got.RequestsPerWindow)
		require.Equal(t, 30*time.Second, got.Window)
		require.Equal(t, 10, got.Burst)
	})

	t.Run("invalid values ignored", func(t *testing.T) {
		t.Setenv("RATELIMIT_BADPROFILE_REQUESTS", "zero")
		t.Setenv("RATELIMIT_BADPROFILE_BURST", "-1")

		got := httpx.ParseRateLimitFromEnv("BADPROFILE", defaults)
		require.Equal(t, defaults, got)
	})
}
