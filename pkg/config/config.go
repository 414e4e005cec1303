package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "brewplan"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App      AppConfig
	Service  ServiceConfig
	DB       DBConfig
	Redis    RedisConfig
	Weather  WeatherConfig
	Models   ModelsConfig
	Ordering OrderingConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Ordering.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"BREWPLAN_APP_ENV" required:"true"`
	Port         string `envconfig:"BREWPLAN_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"BREWPLAN_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BREWPLAN_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"BREWPLAN_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN string `envconfig:"BREWPLAN_DB_DSN"`

	MaxOpenConns    int           `envconfig:"BREWPLAN_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"BREWPLAN_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"BREWPLAN_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BREWPLAN_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	AutoMigrate bool `envconfig:"BREWPLAN_DB_AUTO_MIGRATE" default:"false"`
}

type RedisConfig struct {
	URL          string        `envconfig:"BREWPLAN_REDIS_URL"`
	Address      string        `envconfig:"BREWPLAN_REDIS_ADDR"`
	Password     string        `envconfig:"BREWPLAN_REDIS_PASSWORD"`
	DB           int           `envconfig:"BREWPLAN_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BREWPLAN_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BREWPLAN_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BREWPLAN_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BREWPLAN_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BREWPLAN_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// WeatherConfig points at the upstream forecast provider. Credentials are
// validated when the client is built, not here, so that a missing key surfaces
// as a configuration failure on the request path rather than killing boot of
// components that never fetch weather.
type WeatherConfig struct {
	APIKey  string        `envconfig:"BREWPLAN_OPENWEATHER_API_KEY"`
	City    string        `envconfig:"BREWPLAN_OPENWEATHER_CITY"`
	BaseURL string        `envconfig:"BREWPLAN_OPENWEATHER_BASE_URL" default:"https://api.openweathermap.org"`
	Timeout time.Duration `envconfig:"BREWPLAN_OPENWEATHER_TIMEOUT" default:"10s"`
}

type ModelsConfig struct {
	Dir string `envconfig:"BREWPLAN_MODELS_DIR" default:"models"`

	// Items is the fixed catalogue of item IDs orders are computed for.
	Items []string `envconfig:"BREWPLAN_ITEMS" default:"ipa,lager,stout,pale_ale"`

	// Training-set averages substituted when a day-level model is absent.
	FallbackVisitors   int `envconfig:"BREWPLAN_FALLBACK_AVG_VISITORS" default:"13"`
	FallbackTotalUnits int `envconfig:"BREWPLAN_FALLBACK_AVG_TOTAL_UNITS" default:"22"`
}

// OrderingConfig describes the shop's ordering cadence: which weekday the shop
// is closed, the two weekly order slots, and how many days after the order date
// each slot must cover. Weekday numbering is Monday=0 .. Sunday=6.
type OrderingConfig struct {
	ClosedWeekday int `envconfig:"BREWPLAN_CLOSED_WEEKDAY" default:"6"`

	ForecastHorizonDays int `envconfig:"BREWPLAN_FORECAST_HORIZON_DAYS" default:"5"`

	SlotAWeekday     int    `envconfig:"BREWPLAN_SLOT_A_WEEKDAY" default:"0"`
	SlotALabel       string `envconfig:"BREWPLAN_SLOT_A_LABEL" default:"Mon"`
	SlotAStartOffset int    `envconfig:"BREWPLAN_SLOT_A_START_OFFSET" default:"1"`
	SlotAEndOffset   int    `envconfig:"BREWPLAN_SLOT_A_END_OFFSET" default:"3"`

	SlotBWeekday     int    `envconfig:"BREWPLAN_SLOT_B_WEEKDAY" default:"3"`
	SlotBLabel       string `envconfig:"BREWPLAN_SLOT_B_LABEL" default:"Thu"`
	SlotBStartOffset int    `envconfig:"BREWPLAN_SLOT_B_START_OFFSET" default:"1"`
	SlotBEndOffset   int    `envconfig:"BREWPLAN_SLOT_B_END_OFFSET" default:"4"`

	Unit string `envconfig:"BREWPLAN_ORDER_UNIT" default:"bottles"`
}

func (o OrderingConfig) validate() error {
	if o.ClosedWeekday < 0 || o.ClosedWeekday > 6 {
		return fmt.Errorf("closed weekday %d out of range 0-6", o.ClosedWeekday)
	}
	if o.ForecastHorizonDays <= 0 {
		return fmt.Errorf("forecast horizon must be positive, got %d", o.ForecastHorizonDays)
	}
	for _, slot := range []struct {
		name        string
		weekday     int
		startOffset int
		endOffset   int
	}{
		{"slot A", o.SlotAWeekday, o.SlotAStartOffset, o.SlotAEndOffset},
		{"slot B", o.SlotBWeekday, o.SlotBStartOffset, o.SlotBEndOffset},
	} {
		if slot.weekday < 0 || slot.weekday > 6 {
			return fmt.Errorf("%s weekday %d out of range 0-6", slot.name, slot.weekday)
		}
		if slot.weekday == o.ClosedWeekday {
			return fmt.Errorf("%s falls on the closed weekday", slot.name)
		}
		if slot.startOffset > slot.endOffset {
			return fmt.Errorf("%s coverage start offset %d after end offset %d", slot.name, slot.startOffset, slot.endOffset)
		}
	}
	return nil
}
