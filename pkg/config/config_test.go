package config

import (
	"os"
	"testing"
)

func setMinimalEnv(t *testing.T) {
	t.Helper()
	t.Setenv("BREWPLAN_APP_ENV", "prod")
	t.Setenv("BREWPLAN_OPENWEATHER_API_KEY", "key-123")
	t.Setenv("BREWPLAN_OPENWEATHER_CITY", "Munich,de")
}

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "prod" {
		t.Fatalf("expected App.Env to be prod, got %q", cfg.App.Env)
	}
	if cfg.App.Port != "8080" {
		t.Fatalf("unexpected default port %q", cfg.App.Port)
	}
	if cfg.Weather.City != "Munich,de" {
		t.Fatalf("unexpected city %q", cfg.Weather.City)
	}
	if cfg.Ordering.ClosedWeekday != 6 {
		t.Fatalf("expected Sunday (6) as default closed weekday, got %d", cfg.Ordering.ClosedWeekday)
	}
	if cfg.Ordering.ForecastHorizonDays != 5 {
		t.Fatalf("unexpected default horizon %d", cfg.Ordering.ForecastHorizonDays)
	}
	if cfg.Models.FallbackVisitors != 13 || cfg.Models.FallbackTotalUnits != 22 {
		t.Fatalf("unexpected fallback averages %d/%d", cfg.Models.FallbackVisitors, cfg.Models.FallbackTotalUnits)
	}
	if len(cfg.Models.Items) != 4 || cfg.Models.Items[0] != "ipa" {
		t.Fatalf("unexpected default items %v", cfg.Models.Items)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv("BREWPLAN_APP_ENV"); err != nil {
		t.Fatalf("failed to unset BREWPLAN_APP_ENV: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_ItemsOverride(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv("BREWPLAN_ITEMS", "helles,weizen")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if len(cfg.Models.Items) != 2 || cfg.Models.Items[0] != "helles" || cfg.Models.Items[1] != "weizen" {
		t.Fatalf("unexpected items %v", cfg.Models.Items)
	}
}

func TestLoad_RejectsInvalidOrdering(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv("BREWPLAN_SLOT_A_WEEKDAY", "6")

	if _, err := Load(); err == nil {
		t.Fatal("expected a slot on the closed weekday to be rejected")
	}
}

func TestOrderingValidate(t *testing.T) {
	valid := OrderingConfig{
		ClosedWeekday:       6,
		ForecastHorizonDays: 5,
		SlotAWeekday:        0,
		SlotAStartOffset:    1,
		SlotAEndOffset:      3,
		SlotBWeekday:        3,
		SlotBStartOffset:    1,
		SlotBEndOffset:      4,
	}
	if err := valid.validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	badRange := valid
	badRange.SlotBStartOffset = 5
	if err := badRange.validate(); err == nil {
		t.Fatal("expected start after end to be rejected")
	}

	badWeekday := valid
	badWeekday.ClosedWeekday = 7
	if err := badWeekday.validate(); err == nil {
		t.Fatal("expected weekday out of range to be rejected")
	}
}

func TestAppConfigEnvHelpers(t *testing.T) {
	devConfig := AppConfig{Env: "DEV"}
	if !devConfig.IsDev() {
		t.Fatalf("expected IsDev true for %q", devConfig.Env)
	}
	if devConfig.IsProd() {
		t.Fatalf("expected IsProd false for %q", devConfig.Env)
	}

	prodConfig := AppConfig{Env: "prod"}
	if !prodConfig.IsProd() {
		t.Fatalf("expected IsProd true for %q", prodConfig.Env)
	}
}
