package controllers

import (
	"context"
	"net/http"

	"github.com/brewplanhq/brewplan-backend/api/responses"
	"github.com/brewplanhq/brewplan-backend/pkg/config"
	pkgerrors "github.com/brewplanhq/brewplan-backend/pkg/errors"
	"github.com/brewplanhq/brewplan-backend/pkg/logger"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ModelChecker reports whether the demand models loaded at startup.
type ModelChecker interface {
	HasAnyModel() bool
	ItemModelCount() int
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-BrewPlan-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when at least one demand model is loaded
// and the optional database dependency answers a ping.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP Pinger, models ModelChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-BrewPlan-Env", cfg.App.Env)

		if models != nil && !models.HasAnyModel() {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeNotReady, "prediction models not loaded"))
			return
		}

		if dbP != nil {
			if err := dbP.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unreachable"))
				return
			}
		}

		payload := map[string]any{"status": "ready"}
		if models != nil {
			payload["item_models"] = models.ItemModelCount()
		}
		responses.WriteSuccess(w, payload)
	}
}
