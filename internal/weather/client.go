package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the OpenWeatherMap API root.
const DefaultBaseURL = "https://api.openweathermap.org"

// FailureKind says which step of a fetch failed.
type FailureKind string

const (
	FailureRequest FailureKind = "request"
	FailureStatus  FailureKind = "status"
	FailureDecode  FailureKind = "decode"
	FailureMissing FailureKind = "missing_field"
)

// FetchError is the only error type returned by Client.Fetch.
type FetchError struct {
	Kind FailureKind
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("weather %s failure: %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// KindOf returns the failure kind of err, or "" if err is not a *FetchError.
func KindOf(err error) FailureKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}

// Config configures a Client.
type Config struct {
	BaseURL  string
	APIKey   string
	Location string
	Timeout  time.Duration
}

// Client calls the current-weather endpoint for a fixed location.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a client. A zero timeout defaults to five seconds.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

type currentWeather struct {
	Weather []struct {
		Description *string `json:"description"`
	} `json:"weather"`
	Main *struct {
		Temp *float64 `json:"temp"`
	} `json:"main"`
}

// Fetch returns current conditions at the configured location.
func (c *Client) Fetch(ctx context.Context) (Conditions, error) {
	q := url.Values{}
	q.Set("q", c.cfg.Location)
	q.Set("appid", c.cfg.APIKey)
	q.Set("units", "metric")
	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/data/2.5/weather?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Conditions{}, &FetchError{Kind: FailureRequest, Err: err}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		slog.Warn("Weather request failed", "location", c.cfg.Location, "error", err)
		return Conditions{}, &FetchError{Kind: FailureRequest, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		slog.Warn("Weather request rejected", "location", c.cfg.Location, "status", resp.StatusCode)
		return Conditions{}, &FetchError{Kind: FailureStatus, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var body currentWeather
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Conditions{}, &FetchError{Kind: FailureDecode, Err: err}
	}
	if len(body.Weather) == 0 || body.Weather[0].Description == nil {
		return Conditions{}, &FetchError{Kind: FailureMissing, Err: errors.New("weather[0].description")}
	}
	if body.Main == nil || body.Main.Temp == nil {
		return Conditions{}, &FetchError{Kind: FailureMissing, Err: errors.New("main.temp")}
	}

	return Conditions{Description: *body.Weather[0].Description, TempC: *body.Main.Temp}, nil
}
