package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"sudomock-connector/internal/http/handlers"
	"sudomock-connector/internal/middleware"
)

// NewRouter mounts the connector's routes. ratePerMinute caps inbound
// requests per client IP so a misbehaving caller hits this process before it
// hits the remote API's own per-minute budget.
func NewRouter(app *handlers.App, logger zerolog.Logger, ratePerMinute int) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimiddleware.RealIP,
		chimiddleware.Recoverer,
		middleware.Logger(logger),
		middleware.RateLimit(ratePerMinute, time.Minute),
	)

	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/credentials/verify", app.VerifyCredentials)
	r.Post("/v1/operations/{operation}", app.RunOperation)

	return r
}
