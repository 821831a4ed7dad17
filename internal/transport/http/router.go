// Package http assembles the HTTP surface: middleware chain, health and
// metrics endpoints, and the authenticated API routes.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	applicationhandler "rently/internal/application/handler"
	audithandler "rently/internal/audit/handler"
	listinghandler "rently/internal/listing/handler"
	"rently/internal/platform/middleware"
	"rently/pkg/platform/httputil"
)

const requestTimeout = 30 * time.Second

// Deps carries everything the router mounts.
type Deps struct {
	Logger       *slog.Logger
	JWTValidator middleware.JWTValidator
	Listings     *listinghandler.Handler
	Applications *applicationhandler.Handler
	Audit        *audithandler.Handler
	Health       func() map[string]string
}

// NewRouter builds the full route tree. Health and metrics are public; the
// rest of the API requires a valid bearer token.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		status := map[string]string{"status": "ok"}
		if deps.Health != nil {
			for k, v := range deps.Health() {
				status[k] = v
			}
		}
		httputil.WriteJSON(w, http.StatusOK, status)
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(api chi.Router) {
		api.Use(middleware.ContentTypeJSON)
		api.Use(middleware.RequireAuth(deps.JWTValidator, deps.Logger))
		deps.Listings.Register(api)
		deps.Applications.Register(api)
		deps.Audit.Register(api)
	})

	return r
}
