package httpx

import (
	"net/http"
	"strings"

	"github.com/KimuJinsu/go-jwt-auth/pkg/jwtx"
	"github.com/KimuJinsu/go-jwt-auth/pkg/slogx"
)

const bearerPrefix = "Bearer "

// Authenticate is the per-request authentication gate. It extracts a bearer
// credential from the Authorization header, validates it against the codec
// and, when valid, attaches the decoded principal to the request context.
//
// The gate never rejects a request: an absent, malformed, expired or forged
// credential simply leaves the request unauthenticated. Rejecting requests
// that needed a principal is the authorization middleware's job.
func Authenticate(codec *jwtx.Codec) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, ok := ExtractBearer(r.Header)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			if !codec.Validate(raw) {
				log.Debug("bearer credential rejected", "path", r.URL.Path)
				next.ServeHTTP(w, r)
				return
			}

			principal, err := codec.Decode(raw)
			if err != nil {
				// Validate just passed, so this is a race against expiry.
				log.Debug("bearer credential decode failed", "err", err)
				next.ServeHTTP(w, r)
				return
			}

			log.Debug("request authenticated", "subject", principal.Subject)
			next.ServeHTTP(w, r.WithContext(ContextWithPrincipal(ctx, principal)))
		})
	}
}

// ExtractBearer reads the Authorization header and returns the credential
// after the literal "Bearer " prefix. It reports false when the header is
// absent, empty or carries a different scheme.
func ExtractBearer(h http.Header) (string, bool) {
	authz := h.Get("Authorization")
	if authz == "" || !strings.HasPrefix(authz, bearerPrefix) {
		return "", false
	}

	token := strings.TrimSpace(strings.TrimPrefix(authz, bearerPrefix))
	if token == "" {
		return "", false
	}
	return token, true
}
