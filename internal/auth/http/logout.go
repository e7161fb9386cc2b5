package http

import (
	"encoding/json"
	"net/http"

	"github.com/KimuJinsu/go-jwt-auth/internal/auth/service"
	"github.com/KimuJinsu/go-jwt-auth/pkg/authapi"
	"github.com/KimuJinsu/go-jwt-auth/pkg/httpx"
	"github.com/KimuJinsu/go-jwt-auth/pkg/slogx"
)

// LogoutHandler serves POST /api/logout.
type LogoutHandler struct {
	RefreshService *service.RefreshService
}

// ServeHTTP godoc
//
//	@Summary		Logout Endpoint
//	@Description	Revokes the refresh credential's stored session record. The access
//	@Description	credential stays stateless and remains valid until its own expiry.
//	@Tags			Sessions
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authapi.RefreshRequest	true	"refreshToken"
//	@Success		200		{object}	map[string]string		"message"
//	@Failure		400		{object}	authapi.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	authapi.ErrorResponse	"error, error_description"
//	@Router			/api/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	revoked, err := h.RefreshService.Revoke(ctx, req.RefreshToken)
	if err != nil {
		log.Error("logout failed", "err", err)
		authapi.ErrServerError.WriteError(w)
		return
	}
	if !revoked {
		authapi.ErrLogoutUnknownToken.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "logged out",
	})
}
