package authapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/KimuJinsu/go-jwt-auth/pkg/httpx"
)

// Error codes used in the "error" field of error responses. The names
// follow the RFC 6749 registry where one fits.
const (
	ErrorCodeInvalidRequest    = "invalid_request"
	ErrorCodeInvalidGrant      = "invalid_grant"
	ErrorCodeInvalidToken      = "invalid_token"
	ErrorCodeInsufficientScope = "insufficient_scope"
	ErrorCodeUserExists        = "user_exists"
	ErrorCodeServerError       = "server_error"
)

// APIError is the service's error envelope. It implements the error
// interface and is used both by the server (to write HTTP responses) and
// by Client (to represent decoded error responses).
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine-readable error code (e.g. "invalid_grant")
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             e.Code,
		"error_description": e.Description,
	})
}

var (
	// ErrInvalidRequest is returned when the request body is missing a
	// required field or is otherwise malformed.
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrInvalidJSONBody is returned when the request body is not valid JSON.
	ErrInvalidJSONBody = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "request body must be valid JSON",
	}

	// ErrInvalidCredentials is returned when login authentication fails.
	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidGrant,
		Description: "invalid username or password",
	}

	// ErrUnknownRefreshToken is returned when a renewal or logout names a
	// refresh credential with no record on file.
	ErrUnknownRefreshToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidGrant,
		Description: "refresh token not recognised",
	}

	// ErrRefreshTokenExpired tells the client to start over with a full
	// login. The stored record has already been deleted.
	ErrRefreshTokenExpired = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidGrant,
		Description: "Refresh token expired. Please login again.",
	}

	// ErrLogoutUnknownToken is returned when logout names a credential
	// that has no record to delete.
	ErrLogoutUnknownToken = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "no session found for the given refresh token",
	}

	// ErrUserExists is returned when signup picks a taken username.
	ErrUserExists = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeUserExists,
		Description: "a user with that username already exists",
	}

	// ErrUserNotFound is returned by the user lookup endpoints.
	ErrUserNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeInvalidRequest,
		Description: "user not found",
	}

	// ErrUnauthorized is returned when an endpoint requires an
	// authenticated principal and none is attached.
	ErrUnauthorized = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "a valid bearer credential is required",
	}

	// ErrServerError is the catch-all for unexpected failures.
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "an unexpected error occurred",
	}
)
