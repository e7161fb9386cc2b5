package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/KimuJinsu/go-jwt-auth/internal/auth/service"
	"github.com/KimuJinsu/go-jwt-auth/pkg/authapi"
	"github.com/KimuJinsu/go-jwt-auth/pkg/httpx"
	"github.com/KimuJinsu/go-jwt-auth/pkg/jwtx"
	"github.com/KimuJinsu/go-jwt-auth/pkg/slogx"
)

// RefreshHandler serves POST /api/refresh-token.
type RefreshHandler struct {
	Codec          *jwtx.Codec
	RefreshService *service.RefreshService
}

// ServeHTTP godoc
//
//	@Summary		Credential Renewal Endpoint
//	@Description	Exchanges a live refresh credential for a fresh access credential.
//	@Description	The refresh credential is not rotated; it stays valid until its own
//	@Description	expiry or an explicit logout. An expired refresh credential is deleted
//	@Description	and the client must log in again.
//	@Tags			Sessions
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authapi.RefreshRequest	true	"refreshToken"
//	@Success		200		{object}	authapi.TokenResponse	"accessToken"
//	@Failure		400		{object}	authapi.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	authapi.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	authapi.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/api/refresh-token [post].
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authapi.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		authapi.ErrInvalidJSONBody.WriteError(w)
		return
	}
	if req.RefreshToken == "" {
		authapi.ErrInvalidRequest.WriteError(w)
		return
	}

	// The gate has already attached the caller's principal; the new
	// access credential is minted for that identity. The stored record's
	// username is deliberately not cross-checked against it.
	principal, ok := httpx.PrincipalFromContext(ctx)
	if !ok {
		authapi.ErrUnauthorized.WriteError(w)
		return
	}

	access, err := h.RefreshService.Renew(ctx, req.RefreshToken, principal)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownRefreshToken):
			authapi.ErrUnknownRefreshToken.WriteError(w)
		case errors.Is(err, service.ErrRefreshTokenExpired):
			authapi.ErrRefreshTokenExpired.WriteError(w)
		default:
			log.Error("credential renewal failed", "err", err)
			authapi.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, authapi.TokenResponse{
		AccessToken: access,
	})
}
