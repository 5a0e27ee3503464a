package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/courtside/internal/middleware"
)

// Logging creates request logging middleware for the web interface.
// Entries carry surface=web to separate them from /api traffic.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger.With(slog.String("surface", "web")))
}
