// Package wynnapi is the catalog data source: the public item database API,
// a local snapshot file, and a fallback chain over both.
package wynnapi

//go:generate mockgen -destination=mock/mock_client.go -package=wynnapimock github.com/KirkDiggler/wynn-optimizer/internal/clients/wynnapi Client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/KirkDiggler/wynn-optimizer/internal/errors"
)

const (
	// DefaultBaseURL is the public API host
	DefaultBaseURL = "https://api.wynncraft.com"

	// DefaultRequestsPerMinute is the API's published rate limit
	DefaultRequestsPerMinute = 180

	databasePath = "/v3/item/database"
)

// Client returns raw catalog records keyed by item name
type Client interface {
	Database(ctx context.Context) (map[string]json.RawMessage, error)
}

// Config contains configuration options for the API client.
type Config struct {
	// BaseURL of the API (optional, defaults to DefaultBaseURL)
	BaseURL string
	// HTTPTimeout for API requests (optional, defaults to 60 seconds)
	HTTPTimeout time.Duration
	// RequestsPerMinute caps outgoing requests (optional, defaults to 180)
	RequestsPerMinute int
	// MaxRetries on server errors (optional, defaults to 0)
	MaxRetries int
	// HTTPClient overrides the client built from HTTPTimeout
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 60 * time.Second
	}
	if cfg.RequestsPerMinute == 0 {
		cfg.RequestsPerMinute = DefaultRequestsPerMinute
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	vb := errors.NewValidationBuilder()
	if cfg.RequestsPerMinute < 0 {
		vb.InvalidField("RequestsPerMinute", "must be positive")
	}
	if cfg.MaxRetries < 0 {
		vb.InvalidField("MaxRetries", "must not be negative")
	}
	return vb.Build()
}

type client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	maxRetries int
	logger     *zap.Logger
}

// New creates an API client with the given configuration.
func New(cfg *Config) (Client, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: cfg.HTTPTimeout,
		}
	}

	perRequest := time.Minute / time.Duration(cfg.RequestsPerMinute)
	return &client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Every(perRequest), cfg.RequestsPerMinute),
		maxRetries: cfg.MaxRetries,
		logger:     cfg.Logger,
	}, nil
}

// Database fetches the full item database
func (c *client) Database(ctx context.Context) (map[string]json.RawMessage, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		records, err := c.fetchDatabase(ctx)
		if err == nil {
			return records, nil
		}
		lastErr = err
		if !errors.IsUnavailable(err) || ctx.Err() != nil {
			break
		}
		c.logger.Warn("item database request failed",
			zap.Int("attempt", attempt+1),
			zap.Error(err))
	}
	return nil, lastErr
}

func (c *client) fetchDatabase(ctx context.Context) (map[string]json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeCanceled, "rate limiter wait aborted")
	}

	url := c.baseURL + databasePath + "?fullResult=True"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build request for %s", url)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "item database request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, errors.Newf(errors.CodeResourceExhausted, "item database rate limited, reset in %ss",
			resp.Header.Get("ratelimit-reset"))
	case resp.StatusCode >= 500:
		return nil, errors.Unavailablef("item database returned %d", resp.StatusCode).
			WithMeta("status", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, errors.Newf(errors.CodeFailedPrecondition, "item database returned %d", resp.StatusCode).
			WithMeta("status", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to read item database")
	}
	return decodeDatabase(body)
}

func decodeDatabase(body []byte) (map[string]json.RawMessage, error) {
	var records map[string]json.RawMessage
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, fmt.Sprintf("item database is not a JSON object (%d bytes)", len(body)))
	}
	return records, nil
}
