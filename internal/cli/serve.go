package cli

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcoot/courtside/internal/api"
	"github.com/mcoot/courtside/internal/config"
	"github.com/mcoot/courtside/internal/factory"
	"github.com/mcoot/courtside/internal/services/auth"
	"github.com/mcoot/courtside/internal/sportsapi"
	redisstorage "github.com/mcoot/courtside/internal/storage/redis"
	"github.com/mcoot/courtside/internal/web"
	"github.com/mcoot/courtside/internal/web/middleware"
)

const limiterCleanupInterval = time.Minute

func newServeCmd() *cobra.Command {
	var staticDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			appCfg, err := config.Load()
			if err != nil {
				return err
			}
			if staticDir == "" {
				staticDir = findStaticDir()
			}
			return runServe(cmd.Context(), appCfg, staticDir)
		},
	}

	cmd.Flags().StringVar(&staticDir, "static-dir", "", "Static files directory (default: auto-detect)")
	return cmd
}

func runServe(ctx context.Context, appCfg *config.Config, staticDir string) error {
	logger := NewLogger(appCfg, os.Stdout)
	slog.SetDefault(logger)

	if appCfg.IsUnsafeSecret() {
		logger.Warn("SECRET_KEY is the development placeholder; set a real secret before deploying")
	}
	if appCfg.SportsAPIKey == "" {
		logger.Warn("BALLDONTLIE_API_KEY is empty; sports API requests will likely be rejected")
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := factory.New(ctx, FactoryConfig(appCfg, logger))
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("failed to close stores", slog.String("error", err.Error()))
		}
	}()

	serverConfig := api.DefaultServerConfig()
	serverConfig.Port = appCfg.HTTPPort
	server := api.NewServer(NewHTTPHandler(ctx, app, appCfg, logger, staticDir), serverConfig, logger)

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.String("env", appCfg.Environment),
	)

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			return err
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			return err
		}
	}

	logger.Info("server stopped")
	return nil
}

// NewLogger builds the JSON process logger at the configured level
func NewLogger(appCfg *config.Config, w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: appCfg.SlogLevel(),
	}))
}

// FactoryConfig maps process configuration onto the application factory
func FactoryConfig(appCfg *config.Config, logger *slog.Logger) factory.Config {
	fc := factory.Config{
		DatabaseURL:  appCfg.DatabaseURL,
		SessionStore: appCfg.SessionStore,
		AuthConfig: auth.Config{
			Secret:          appCfg.SecretKey,
			SessionDuration: appCfg.SessionDuration,
		},
		SportsAPI: sportsapi.Config{
			BaseURL: appCfg.SportsAPIBaseURL,
			APIKey:  appCfg.SportsAPIKey,
			Timeout: sportsapi.DefaultTimeout,
		},
		Logger: logger,
	}

	if appCfg.SessionStore == factory.SessionStoreRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = appCfg.RedisURL
		redisCfg.SessionTTL = appCfg.SessionDuration
		fc.RedisConfig = &redisCfg
	}

	return fc
}

// NewHTTPHandler combines the JSON API and the web interface.
// Background cleanup of the login limiter runs until ctx is done.
func NewHTTPHandler(ctx context.Context, app *factory.App, appCfg *config.Config, logger *slog.Logger, staticDir string) http.Handler {
	loginLimiter := middleware.NewRateLimiter(appCfg.LoginRateLimitRPS, appCfg.LoginRateLimitBurst, logger)
	go loginLimiter.StartCleanupWorker(ctx, limiterCleanupInterval)

	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:   logger,
		Database: app,
	})

	webRouter := web.NewRouter(web.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		CatalogService: app.CatalogService,
		LoginLimiter:   loginLimiter,
		StaticDir:      staticDir,
	})

	// Combine routers
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)
	return mux
}

// findStaticDir looks for the static files directory
func findStaticDir() string {
	// Try common locations
	candidates := []string{
		"internal/web/static",
		filepath.Join(os.Getenv("PWD"), "internal/web/static"),
	}

	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}

	// Default to relative path
	return "internal/web/static"
}
