package http

import (
	"net/http"
	"time"

	"github.com/KimuJinsu/go-jwt-auth/internal/auth/store"
	"github.com/KimuJinsu/go-jwt-auth/pkg/authapi"
	"github.com/KimuJinsu/go-jwt-auth/pkg/httpx"
	"github.com/KimuJinsu/go-jwt-auth/pkg/jwtx"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe endpoint returning service health status and checks for critical dependencies
//	@Description	Includes uptime, version, and status of the database and credential signer
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authapi.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	authapi.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	codec *jwtx.Codec,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &authapi.HealthChecks{
			Database: "ok",
			Signer:   "ok",
		}
		status := "ok"
		code := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "unreachable"
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		if !codec.Ready() {
			checks.Signer = "no signing key"
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, authapi.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
