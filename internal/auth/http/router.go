package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/KimuJinsu/go-jwt-auth/internal/auth/domain"
	"github.com/KimuJinsu/go-jwt-auth/internal/auth/service"
	"github.com/KimuJinsu/go-jwt-auth/internal/auth/store"
	"github.com/KimuJinsu/go-jwt-auth/pkg/httpx"
	"github.com/KimuJinsu/go-jwt-auth/pkg/jwtx"
	"github.com/KimuJinsu/go-jwt-auth/pkg/slogx"

	_ "github.com/KimuJinsu/go-jwt-auth/api/authd" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	codec        *jwtx.Codec
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store          store.Store
	SessionService *service.SessionService
	RefreshService *service.RefreshService
	UserService    *service.UserService
}

func NewRouter(
	codec *jwtx.Codec,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		codec:        codec,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Every request passes the logger middleware and the non-blocking
	// credential gate; rejection is left to the per-route authorization
	// middleware.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.Authenticate(r.codec),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerSessions()
	r.registerUsers()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			JWT Auth Service API
//	@version		0.1.0
//	@description	Token-based session service issuing HMAC-SHA-512 signed JWT credentials.
//	@description
//	@description				Access credentials are short-lived and stateless; refresh credentials are
//	@description				persisted and can be renewed against or revoked at /api/logout.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerSessions() {
	loginHandler := &LoginHandler{SessionService: r.SessionService}

	// POST /api/login - strict rate limit by IP (authentication attempts)
	r.Mux.Handle("POST /api/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	refreshHandler := &RefreshHandler{
		Codec:          r.codec,
		RefreshService: r.RefreshService,
	}

	// POST /api/refresh-token - caller must present a verifiable bearer
	// credential (the refresh credential itself) so the gate attaches the
	// principal the new access credential is minted for.
	r.Mux.Handle("POST /api/refresh-token",
		httpx.Chain(refreshHandler,
			httpx.RequireAuthenticated(),
			httpx.RateLimitBySubject(httpx.ModerateLimit),
		),
	)

	logoutHandler := &LogoutHandler{RefreshService: r.RefreshService}

	// POST /api/logout - moderate rate limit by IP; the session being
	// revoked does not have to be the one presented as bearer.
	r.Mux.Handle("POST /api/logout",
		httpx.Chain(logoutHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerUsers() {
	signupHandler := &SignupHandler{UserService: r.UserService}

	// POST /api/signup - strict rate limit by IP (public endpoint)
	r.Mux.Handle("POST /api/signup",
		httpx.Chain(signupHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	h := &UsersHandler{UserService: r.UserService}

	// GET /api/user - own record, any authenticated user
	r.Mux.Handle("GET /api/user",
		httpx.Chain(http.HandlerFunc(h.HandleMe),
			httpx.RequireAnyRole(domain.RoleUser, domain.RoleAdmin),
			httpx.RateLimitBySubject(httpx.LenientLimit),
		),
	)

	// GET /api/user/{username} - admin-only lookup
	r.Mux.Handle("GET /api/user/{username}",
		httpx.Chain(http.HandlerFunc(h.HandleLookup),
			httpx.RequireAnyRole(domain.RoleAdmin),
			httpx.RateLimitBySubject(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.codec),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
