package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/brewplanhq/brewplan-backend/api/controllers"
	"github.com/brewplanhq/brewplan-backend/api/middleware"
	"github.com/brewplanhq/brewplan-backend/internal/orders"
	"github.com/brewplanhq/brewplan-backend/pkg/config"
	"github.com/brewplanhq/brewplan-backend/pkg/logger"
)

// NewRouter wires the HTTP surface: health probes, metrics and the
// recommendation endpoint.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	models controllers.ModelChecker,
	ordersSvc orders.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Get("/healthz", controllers.HealthLive(cfg))
	r.Get("/readyz", controllers.HealthReady(cfg, logg, dbP, models))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/order-recommendations", controllers.OrderRecommendations(ordersSvc, logg))
	})

	return r
}
