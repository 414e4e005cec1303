package controllers

import (
	"net/http"

	"github.com/brewplanhq/brewplan-backend/api/responses"
	"github.com/brewplanhq/brewplan-backend/internal/orders"
	pkgerrors "github.com/brewplanhq/brewplan-backend/pkg/errors"
	"github.com/brewplanhq/brewplan-backend/pkg/logger"
)

// OrderRecommendations runs the recommendation pipeline for the current date
// and returns the resulting purchase orders.
func OrderRecommendations(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeInternal, "recommendation service unavailable"))
			return
		}

		result, err := svc.Recommend(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
