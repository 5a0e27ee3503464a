package factory

import (
	"io"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/courtside/internal/dependencies/mocks"
	"github.com/mcoot/courtside/internal/services/auth"
	"github.com/mcoot/courtside/internal/sportsapi"
	"github.com/mcoot/courtside/internal/storage/memory"
)

// TestSecret signs session tokens in test apps
const TestSecret = "test-secret"

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Store backs both users and sessions
	Store *memory.Storage

	// Mocks for test control
	MockClock *mocks.MockClock
}

// NewTestApp creates an App with in-memory stores and a mocked clock.
// apiBaseURL points the sports API client at a stub server.
func NewTestApp(apiBaseURL string) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	api := sportsapi.NewClient(sportsapi.Config{
		BaseURL: apiBaseURL,
		APIKey:  "test-key",
		Timeout: 2 * time.Second,
	}, logger)

	app, err := newWithDependencies(store, store, mockClock, api, auth.Config{
		Secret:          TestSecret,
		SessionDuration: 24 * time.Hour,
		BcryptCost:      bcrypt.MinCost,
	}, logger)
	if err != nil {
		// Only a missing secret fails, and TestSecret is set
		panic(err)
	}

	return &TestApp{
		App:       app,
		Store:     store,
		MockClock: mockClock,
	}
}
