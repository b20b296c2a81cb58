package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/lodgepole/console/internal/console/service"
	"github.com/lodgepole/console/internal/console/store"
	"github.com/lodgepole/console/pkg/httpx"
	"github.com/lodgepole/console/pkg/jwtx"
	"github.com/lodgepole/console/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier      jwtx.Verifier
	sessionTTL    time.Duration
	secureCookies bool
	buildVersion  string
	startTime     time.Time
	logger        *slog.Logger

	store          store.Store
	AuthService    *service.AuthService
	UserService    *service.UserService
	InviteService  *service.InviteService
	ProjectService *service.ProjectService
}

func NewRouter(
	verifier jwtx.Verifier,
	sessionTTL time.Duration,
	secureCookies bool,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:           http.NewServeMux(),
		verifier:      verifier,
		sessionTTL:    sessionTTL,
		secureCookies: secureCookies,
		buildVersion:  buildVersion,
		startTime:     time.Now(),
		store:         st,
		logger:        logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerContributors()
	r.registerProjects()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		AuthService:   r.AuthService,
		SessionTTL:    r.sessionTTL,
		SecureCookies: r.secureCookies,
	}

	r.Mux.Handle("POST /api/auth/signup", http.HandlerFunc(h.HandleSignup))
	r.Mux.Handle("POST /api/auth/signup/{token}", http.HandlerFunc(h.HandleSignupWithInvite))
	r.Mux.Handle("POST /api/auth/login", http.HandlerFunc(h.HandleLogin))
	r.Mux.Handle("POST /api/auth/logout", http.HandlerFunc(h.HandleLogout))

	// GET /me is the only auth route that needs a resolved identity.
	r.Mux.Handle("GET /api/auth/me",
		httpx.Chain(http.HandlerFunc(h.HandleMe),
			RequireAuth(r.verifier, r.UserService),
		),
	)
}

func (r *Router) registerContributors() {
	h := &ContributorsHandler{
		UserService:   r.UserService,
		InviteService: r.InviteService,
	}

	securedList := httpx.Chain(http.HandlerFunc(h.HandleList),
		RequireAuth(r.verifier, r.UserService),
		RequireAdmin(),
	)
	securedInvite := httpx.Chain(http.HandlerFunc(h.HandleInvite),
		RequireAuth(r.verifier, r.UserService),
		RequireAdmin(),
	)

	r.Mux.Handle("GET /api/contributors", securedList)
	r.Mux.Handle("POST /api/contributors/invite", securedInvite)

	// Accept is public: the invitee has no session yet.
	r.Mux.Handle("GET /api/contributors/accept/{token}", http.HandlerFunc(h.HandleAccept))
}

func (r *Router) registerProjects() {
	h := &ProjectsHandler{ProjectService: r.ProjectService}

	secure := func(next http.HandlerFunc) http.Handler {
		return httpx.Chain(next,
			RequireAuth(r.verifier, r.UserService),
			RequireAdmin(),
		)
	}

	r.Mux.Handle("GET /api/projects", secure(h.HandleList))
	r.Mux.Handle("POST /api/projects", secure(h.HandleCreate))
	r.Mux.Handle("PUT /api/projects/{id}", secure(h.HandleUpdate))
	r.Mux.Handle("DELETE /api/projects/{id}", secure(h.HandleDelete))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /health", HealthHandler(r.startTime, r.buildVersion, r.store))
}
