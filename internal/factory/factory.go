package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/courtside/internal/dependencies/clock"
	"github.com/mcoot/courtside/internal/services/auth"
	"github.com/mcoot/courtside/internal/services/catalog"
	"github.com/mcoot/courtside/internal/sportsapi"
	"github.com/mcoot/courtside/internal/storage"
	"github.com/mcoot/courtside/internal/storage/memory"
	redisstorage "github.com/mcoot/courtside/internal/storage/redis"
	"github.com/mcoot/courtside/internal/storage/sqldb"
)

// Session store type constants
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	DB       *sqldb.Storage
	Users    storage.UserStore
	Sessions storage.SessionStore

	// External dependencies
	Clock     clock.Clock
	SportsAPI catalog.Fetcher

	// Services
	AuthService    *auth.Service
	CatalogService *catalog.Service

	closers []func() error
}

// Config holds configuration for the application factory
type Config struct {
	// DatabaseURL locates the credential store (sqlite://path or postgres://...)
	DatabaseURL string
	// SessionStore selects the session backend ("memory" or "redis")
	// If empty, defaults to "memory"
	SessionStore string
	// RedisConfig holds Redis connection settings (required if SessionStore is "redis")
	RedisConfig *redisstorage.Config
	// AuthConfig holds configuration for the auth service; Secret is required
	AuthConfig auth.Config
	// SportsAPI configures the outbound sports API client
	SportsAPI sportsapi.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
}

// New opens the stores, runs migrations and wires the services.
// Failing to open or migrate the credential store is fatal to startup.
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DatabaseURL is required")
	}

	db, err := sqldb.Open(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open credential store: %w", err)
	}
	closers := []func() error{db.Close}

	var sessions storage.SessionStore
	storeType := cfg.SessionStore
	if storeType == "" {
		storeType = SessionStoreMemory
	}

	switch storeType {
	case SessionStoreMemory:
		sessions = memory.New()
	case SessionStoreRedis:
		if cfg.RedisConfig == nil {
			_ = db.Close()
			return nil, errors.New("RedisConfig required when SessionStore is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		sessions = redisStore
		closers = append(closers, redisStore.Close)
	default:
		_ = db.Close()
		return nil, fmt.Errorf("invalid SessionStore %q: must be 'memory' or 'redis'", storeType)
	}

	api := sportsapi.NewClient(cfg.SportsAPI, logger)

	app, err := newWithDependencies(db, sessions, clock.New(), api, cfg.AuthConfig, logger)
	if err != nil {
		for _, closeFn := range closers {
			_ = closeFn()
		}
		return nil, err
	}
	app.DB = db
	app.closers = closers
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(users storage.UserStore, sessions storage.SessionStore, clk clock.Clock, api catalog.Fetcher, authCfg auth.Config, logger *slog.Logger) (*App, error) {
	authService, err := auth.New(users, sessions, clk, authCfg, logger)
	if err != nil {
		return nil, err
	}

	return &App{
		Users:          users,
		Sessions:       sessions,
		Clock:          clk,
		SportsAPI:      api,
		AuthService:    authService,
		CatalogService: catalog.New(api, logger),
	}, nil
}

// Ping checks the credential store; an App without a database is always healthy
func (a *App) Ping(ctx context.Context) error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Ping(ctx)
}

// Close releases the stores opened by New
func (a *App) Close() error {
	var errs []error
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
