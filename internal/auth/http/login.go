package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/KimuJinsu/go-jwt-auth/internal/auth/service"
	"github.com/KimuJinsu/go-jwt-auth/pkg/authapi"
	"github.com/KimuJinsu/go-jwt-auth/pkg/httpx"
	"github.com/KimuJinsu/go-jwt-auth/pkg/slogx"
)

// LoginHandler serves POST /api/login.
type LoginHandler struct {
	SessionService *service.SessionService
}

// ServeHTTP godoc
//
//	@Summary		Login Endpoint
//	@Description	Authenticates a username/password pair and issues an access/refresh credential pair.
//	@Description	The access credential is also placed in the Authorization response header.
//	@Tags			Sessions
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authapi.LoginRequest	true	"username, password"
//	@Success		200		{object}	authapi.TokenResponse	"accessToken, refreshToken"
//	@Failure		400		{object}	authapi.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	authapi.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	authapi.ErrorResponse	"error, error_description"
//	@Header			200		{string}	Authorization			"Bearer {accessToken}"
//	@Router			/api/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authapi.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		authapi.ErrInvalidJSONBody.WriteError(w)
		return
	}
	if req.Username == "" || req.Password == "" {
		authapi.ErrInvalidRequest.WriteError(w)
		return
	}

	pair, err := h.SessionService.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			authapi.ErrInvalidCredentials.WriteError(w)
			return
		}
		log.Error("login failed", "err", err)
		authapi.ErrServerError.WriteError(w)
		return
	}

	// The access credential also travels in the response header, so
	// clients can pick it up without parsing the body.
	w.Header().Set("Authorization", "Bearer "+pair.AccessToken)
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, authapi.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}
