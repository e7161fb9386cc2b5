package httpx

import (
	"net/http"
	"strings"
)

// RequireAuthenticated rejects requests that reached this point without an
// attached principal.
func RequireAuthenticated() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := PrincipalFromContext(r.Context()); !ok {
				writeBearerError(w, "missing or invalid bearer credential")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAnyRole the caller must be authenticated and hold at least one of
// the listed roles.
func RequireAnyRole(required ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFromContext(r.Context())
			if !ok {
				writeBearerError(w, "missing or invalid bearer credential")
				return
			}

			if !principal.HasAnyRole(required...) {
				writeBearerRoleError(w, required...)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RFC 6750-compliant error response for bearer auth. The body repeats the
// service's JSON error envelope.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteJSON(w, http.StatusUnauthorized, map[string]string{
		"error":             "invalid_token",
		"error_description": desc,
	})
}

// RFC 6750-compliant error response for insufficient authority.
func writeBearerRoleError(w http.ResponseWriter, required ...string) {
	w.Header().
		Set("WWW-Authenticate", `Bearer error="insufficient_scope", scope="`+strings.Join(required, " ")+`"`)
	WriteJSON(w, http.StatusForbidden, map[string]string{
		"error":             "insufficient_scope",
		"error_description": "the credential does not carry a required role",
	})
}
