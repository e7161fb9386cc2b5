package authapi

// ErrorResponse is the error envelope as it appears on the wire. Client
// code should work with APIError instead; this type exists for decoding.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse carries the credential pair returned by login. Renewal
// responses reuse the type with only the access credential set.
type TokenResponse struct {
	// AccessToken is the short-lived JWT presented on every request
	AccessToken string `json:"accessToken"`

	// RefreshToken is the longer-lived JWT presented to /api/refresh-token
	RefreshToken string `json:"refreshToken,omitempty"`
}

// RefreshRequest is the body of POST /api/refresh-token and POST /api/logout.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// SignupRequest is the body of POST /api/signup.
type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
}

// UserResponse describes a user as returned by the signup and user
// lookup endpoints. Password material never appears here.
type UserResponse struct {
	Username    string   `json:"username"`
	Nickname    string   `json:"nickname"`
	Activated   bool     `json:"activated"`
	Authorities []string `json:"authorities"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports per-dependency readiness.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}
