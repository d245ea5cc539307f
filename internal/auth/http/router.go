package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jobdesk/jobdesk/internal/auth/domain"
	"github.com/jobdesk/jobdesk/internal/auth/service"
	"github.com/jobdesk/jobdesk/internal/auth/store"
	"github.com/jobdesk/jobdesk/pkg/httpx"
	"github.com/jobdesk/jobdesk/pkg/jwtx"
	"github.com/jobdesk/jobdesk/pkg/slogx"

	_ "github.com/jobdesk/jobdesk/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	tokens       *jwtx.Manager
	cookies      httpx.CookieConfig
	csrf         *httpx.CSRFGuard
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	// devMode echoes password reset tokens in responses. Never set in
	// production.
	devMode bool

	store store.Store

	AuthService *service.AuthService
	UserService *service.UserService
}

func NewRouter(
	tokens *jwtx.Manager,
	cookies httpx.CookieConfig,
	csrfHeader string,
	buildVersion string,
	devMode bool,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		tokens:       tokens,
		cookies:      cookies.WithDefaults(),
		csrf:         httpx.NewCSRFGuard(cookies, csrfHeader),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		devMode:      devMode,
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerPasswordReset()
	r.registerUsers()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			JobDesk Authentication Service API
//	@version		0.1.0
//	@description	Cookie-based authentication for the JobDesk platform: password login with
//	@description	mandatory TOTP two-factor verification, short-lived access tokens with
//	@description	refresh rotation, CSRF double-submit protection, and role-based access control.
//
//	@contact.name				JobDesk Team
//	@contact.url				https://github.com/jobdesk/jobdesk
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	csrf := r.csrf.Middleware()

	// GET /auth/csrf - public, high limit; just mints the double-submit cookie
	csrfHandler := &CSRFHandler{Guard: r.csrf}
	r.Mux.Handle("GET /auth/csrf",
		httpx.Chain(csrfHandler,
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	// POST /auth/login - strict rate limit (authentication attempts)
	loginHandler := &LoginHandler{
		AuthService: r.AuthService,
		Cookies:     r.cookies,
		RefreshTTL:  r.tokens.RefreshTTL,
	}
	r.Mux.Handle("POST /auth/login",
		httpx.Chain(loginHandler,
			csrf,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /auth/verify-2fa - strict rate limit (code guessing)
	verifyHandler := &Verify2FAHandler{
		AuthService: r.AuthService,
		Tokens:      r.tokens,
		Cookies:     r.cookies,
	}
	r.Mux.Handle("POST /auth/verify-2fa",
		httpx.Chain(verifyHandler,
			csrf,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /auth/refresh - authenticated by the refresh cookie itself
	refreshHandler := &RefreshHandler{
		AuthService: r.AuthService,
		Tokens:      r.tokens,
		Cookies:     r.cookies,
	}
	r.Mux.Handle("POST /auth/refresh",
		httpx.Chain(refreshHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// POST /auth/logout - idempotent cookie clear
	logoutHandler := &LogoutHandler{
		Tokens:  r.tokens,
		Cookies: r.cookies,
		Audit:   r.AuthService.Audit,
	}
	r.Mux.Handle("POST /auth/logout",
		httpx.Chain(logoutHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// POST /auth/register - super-admin only
	registerHandler := &RegisterHandler{UserService: r.UserService}
	r.Mux.Handle("POST /auth/register",
		httpx.Chain(registerHandler,
			csrf,
			httpx.AuthRequired(r.tokens, r.cookies, true),
			httpx.RequireRoles(r.UserService, domain.RoleSuperAdmin),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerPasswordReset() {
	csrf := r.csrf.Middleware()
	h := &PasswordResetHandler{
		AuthService: r.AuthService,
		DevMode:     r.devMode,
	}

	// Both legs are public and brute-forceable, so they get the strict limit.
	r.Mux.Handle("POST /auth/password-reset/request",
		httpx.Chain(http.HandlerFunc(h.HandleRequest),
			csrf,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /auth/password-reset/confirm",
		httpx.Chain(http.HandlerFunc(h.HandleConfirm),
			csrf,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	// GET /users - read endpoint shared by the two staff roles
	secured := httpx.Chain(h,
		httpx.AuthRequired(r.tokens, r.cookies, true),
		httpx.RequireRoles(r.UserService, domain.RoleSuperAdmin, domain.RoleHRManager),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)

	r.Mux.Handle("GET /users", secured)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.store),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}
