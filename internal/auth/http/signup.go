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

// Bounds mirror the original registration form constraints.
const (
	minUsernameLen = 3
	maxUsernameLen = 50
	minPasswordLen = 3
	maxPasswordLen = 100
)

// SignupHandler serves POST /api/signup.
type SignupHandler struct {
	UserService *service.UserService
}

// ServeHTTP godoc
//
//	@Summary		Signup Endpoint
//	@Description	Registers a new user with the plain user role, activated immediately.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authapi.SignupRequest	true	"username, password, nickname"
//	@Success		200		{object}	authapi.UserResponse	"username, nickname, activated, authorities"
//	@Failure		400		{object}	authapi.ErrorResponse	"error, error_description"
//	@Failure		409		{object}	authapi.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	authapi.ErrorResponse	"error, error_description"
//	@Router			/api/signup [post].
func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authapi.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		authapi.ErrInvalidJSONBody.WriteError(w)
		return
	}
	if !validSignup(req) {
		authapi.ErrInvalidRequest.WriteError(w)
		return
	}

	u, err := h.UserService.Signup(ctx, req.Username, req.Password, req.Nickname)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			authapi.ErrUserExists.WriteError(w)
			return
		}
		log.Error("signup failed", "err", err)
		authapi.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authapi.UserResponse{
		Username:    u.Username,
		Nickname:    u.Nickname,
		Activated:   u.Activated,
		Authorities: u.Authorities,
	})
}

func validSignup(req authapi.SignupRequest) bool {
	if len(req.Username) < minUsernameLen || len(req.Username) > maxUsernameLen {
		return false
	}
	if len(req.Password) < minPasswordLen || len(req.Password) > maxPasswordLen {
		return false
	}
	return len(req.Nickname) <= maxUsernameLen
}
