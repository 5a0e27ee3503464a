package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/courtside/internal/services/auth"
	"github.com/mcoot/courtside/internal/services/catalog"
	"github.com/mcoot/courtside/internal/web/handler"
	"github.com/mcoot/courtside/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	CatalogService *catalog.Service
	// LoginLimiter throttles credential form posts; nil disables throttling
	LoginLimiter *middleware.RateLimiter
	StaticDir    string // Path to static files directory
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	flashMiddleware := middleware.Flash()
	authMiddleware := middleware.Auth(cfg.AuthService)
	optionalAuthMiddleware := middleware.OptionalAuth(cfg.AuthService)

	// Apply global middleware to all routes
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	// Create handlers
	homeHandler := handler.NewHomeHandler()
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.Logger)
	catalogHandler := handler.NewCatalogHandler(cfg.CatalogService)

	throttled := func(h http.HandlerFunc) http.Handler {
		if cfg.LoginLimiter == nil {
			return h
		}
		return cfg.LoginLimiter.Middleware(h)
	}

	// Static files
	if cfg.StaticDir != "" {
		staticHandler := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		r.PathPrefix("/static/").Handler(staticHandler)
	}

	// Public routes (optional auth so signed-in users skip the forms)
	public := r.NewRoute().Subrouter()
	public.Use(flashMiddleware)
	public.Use(optionalAuthMiddleware)
	public.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	public.HandleFunc("/login", authHandler.LoginPage).Methods(http.MethodGet)
	public.Handle("/login", throttled(authHandler.Login)).Methods(http.MethodPost)
	public.HandleFunc("/register", authHandler.RegisterPage).Methods(http.MethodGet)
	public.Handle("/register", throttled(authHandler.Register)).Methods(http.MethodPost)

	// Protected routes (require auth). Auth runs first so a redirect
	// to login leaves any pending flash for the login page.
	protected := r.NewRoute().Subrouter()
	protected.Use(authMiddleware)
	protected.Use(flashMiddleware)

	protected.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodGet)

	protected.HandleFunc("/players", catalogHandler.Players).Methods(http.MethodGet)
	protected.HandleFunc("/players/{id:[0-9]+}", catalogHandler.Player).Methods(http.MethodGet)
	protected.HandleFunc("/teams", catalogHandler.Teams).Methods(http.MethodGet)
	protected.HandleFunc("/teams/{id:[0-9]+}", catalogHandler.Team).Methods(http.MethodGet)
	protected.HandleFunc("/games", catalogHandler.Games).Methods(http.MethodGet)
	protected.HandleFunc("/games/{id:[0-9]+}", catalogHandler.Game).Methods(http.MethodGet)

	return r
}
