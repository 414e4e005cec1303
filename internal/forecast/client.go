package forecast

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/brewplanhq/brewplan-backend/pkg/config"
	pkgerrors "github.com/brewplanhq/brewplan-backend/pkg/errors"
)

// Source fetches a multi-day forecast for the configured location.
type Source interface {
	FetchForecast(ctx context.Context) ([]Sample, error)
}

// Client talks to the OpenWeatherMap 5-day/3-hour forecast endpoint.
type Client struct {
	apiKey  string
	city    string
	baseURL string
	http    *http.Client
}

var _ Source = (*Client)(nil)

// NewClient builds an OpenWeatherMap forecast client. Missing credentials are
// reported as a configuration failure so the caller can classify them apart
// from upstream unavailability.
func NewClient(cfg config.WeatherConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, pkgerrors.New(pkgerrors.CodeConfiguration, "weather API key is not configured")
	}
	if cfg.City == "" {
		return nil, pkgerrors.New(pkgerrors.CodeConfiguration, "weather city is not configured")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiKey:  cfg.APIKey,
		city:    cfg.City,
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// forecastResponse mirrors the subset of the provider payload we consume.
type forecastResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
	} `json:"list"`
}

// FetchForecast requests the multi-day forecast. A single attempt: network or
// non-200 failures surface as upstream errors with no retry.
func (c *Client) FetchForecast(ctx context.Context) ([]Sample, error) {
	endpoint := fmt.Sprintf("%s/data/2.5/forecast?q=%s&appid=%s&units=metric",
		c.baseURL, url.QueryEscape(c.city), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building forecast request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "fetching weather forecast")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, pkgerrors.New(pkgerrors.CodeUpstream,
			fmt.Sprintf("weather provider returned status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "reading forecast response")
	}

	var payload forecastResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "parsing forecast response")
	}

	samples := make([]Sample, 0, len(payload.List))
	for _, entry := range payload.List {
		description := ""
		if len(entry.Weather) > 0 {
			description = entry.Weather[0].Description
		}
		samples = append(samples, Sample{
			Timestamp:   time.Unix(entry.Dt, 0),
			Description: description,
			TempC:       entry.Main.Temp,
		})
	}
	return samples, nil
}
