package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brewplanhq/brewplan-backend/internal/orders"
	"github.com/brewplanhq/brewplan-backend/pkg/config"
	pkgerrors "github.com/brewplanhq/brewplan-backend/pkg/errors"
	"github.com/brewplanhq/brewplan-backend/pkg/logger"
	"github.com/brewplanhq/brewplan-backend/pkg/types"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error { return s.err }

type stubModels struct {
	any   bool
	items int
}

func (s stubModels) HasAnyModel() bool   { return s.any }
func (s stubModels) ItemModelCount() int { return s.items }

type stubOrders struct {
	result *orders.Result
	err    error
}

func (s stubOrders) Recommend(context.Context) (*orders.Result, error) {
	return s.result, s.err
}

func testRouter(t *testing.T, ordersSvc orders.Service, models stubModels, dbErr error) http.Handler {
	t.Helper()
	cfg := &config.Config{}
	cfg.App.Env = "test"
	logg := logger.New(logger.Options{ServiceName: "routes-test", Output: &bytes.Buffer{}})
	return NewRouter(cfg, logg, stubPinger{err: dbErr}, models, ordersSvc)
}

func TestHealthzAlwaysLive(t *testing.T) {
	router := testRouter(t, stubOrders{}, stubModels{}, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestReadyzReflectsModelState(t *testing.T) {
	router := testRouter(t, stubOrders{}, stubModels{any: true, items: 2}, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	router = testRouter(t, stubOrders{}, stubModels{any: false}, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without models, got %d", w.Code)
	}
}

func TestReadyzReportsDatabaseFailure(t *testing.T) {
	router := testRouter(t, stubOrders{}, stubModels{any: true}, context.DeadlineExceeded)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 on db failure, got %d", w.Code)
	}
}

func TestOrderRecommendationsSuccess(t *testing.T) {
	result := &orders.Result{
		Recommendations: []orders.Recommendation{{
			Label: "Monday",
			Items: map[string]int{"ipa": 4},
		}},
		Unit:        "bottles",
		GeneratedAt: time.Date(2025, 9, 3, 8, 0, 0, 0, time.UTC),
	}
	router := testRouter(t, stubOrders{result: result}, stubModels{any: true}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/order-recommendations", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body types.SuccessEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	payload, ok := body.Data.(map[string]any)
	if !ok {
		t.Fatalf("unexpected payload type %T", body.Data)
	}
	if payload["unit"] != "bottles" {
		t.Fatalf("unexpected unit %v", payload["unit"])
	}
}

func TestOrderRecommendationsErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"no data", pkgerrors.New(pkgerrors.CodeNotFound, "no forecast data available"), http.StatusNotFound},
		{"upstream", pkgerrors.New(pkgerrors.CodeUpstream, "weather api unavailable"), http.StatusBadGateway},
		{"not ready", pkgerrors.New(pkgerrors.CodeNotReady, "prediction models not loaded"), http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := testRouter(t, stubOrders{err: tc.err}, stubModels{any: true}, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/order-recommendations", nil))
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, w.Code)
			}
		})
	}
}

func TestMetricsEndpointExposed(t *testing.T) {
	router := testRouter(t, stubOrders{}, stubModels{any: true}, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
