package http

import (
	"errors"
	"net/http"

	"github.com/KimuJinsu/go-jwt-auth/internal/auth/domain"
	"github.com/KimuJinsu/go-jwt-auth/internal/auth/service"
	"github.com/KimuJinsu/go-jwt-auth/internal/auth/store"
	"github.com/KimuJinsu/go-jwt-auth/pkg/authapi"
	"github.com/KimuJinsu/go-jwt-auth/pkg/httpx"
	"github.com/KimuJinsu/go-jwt-auth/pkg/slogx"
)

// UsersHandler serves the user lookup endpoints.
type UsersHandler struct {
	UserService *service.UserService
}

// HandleMe godoc
//
//	@Summary		Own User Endpoint
//	@Description	Returns the calling user's own record with authorities.
//	@Tags			Users
//	@Produce		json
//	@Success		200	{object}	authapi.UserResponse	"username, nickname, activated, authorities"
//	@Failure		401	{object}	authapi.ErrorResponse	"error, error_description"
//	@Failure		403	{object}	authapi.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/api/user [get].
func (h *UsersHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	principal, ok := httpx.PrincipalFromContext(r.Context())
	if !ok {
		authapi.ErrUnauthorized.WriteError(w)
		return
	}
	h.respondWithUser(w, r, principal.Subject)
}

// HandleLookup godoc
//
//	@Summary		User Lookup Endpoint
//	@Description	Returns any user's record by username. Admin only.
//	@Tags			Users
//	@Produce		json
//	@Param			username	path		string					true	"Username to look up"
//	@Success		200			{object}	authapi.UserResponse	"username, nickname, activated, authorities"
//	@Failure		401			{object}	authapi.ErrorResponse	"error, error_description"
//	@Failure		403			{object}	authapi.ErrorResponse	"error, error_description"
//	@Failure		404			{object}	authapi.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/api/user/{username} [get].
func (h *UsersHandler) HandleLookup(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	if username == "" {
		authapi.ErrInvalidRequest.WriteError(w)
		return
	}
	h.respondWithUser(w, r, username)
}

func (h *UsersHandler) respondWithUser(w http.ResponseWriter, r *http.Request, username string) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	u, err := h.UserService.GetUserWithAuthorities(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			authapi.ErrUserNotFound.WriteError(w)
			return
		}
		log.Error("user lookup failed", "err", err)
		authapi.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
}

func toUserResponse(u domain.User) authapi.UserResponse {
	return authapi.UserResponse{
		Username:    u.Username,
		Nickname:    u.Nickname,
		Activated:   u.Activated,
		Authorities: u.Authorities,
	}
}
