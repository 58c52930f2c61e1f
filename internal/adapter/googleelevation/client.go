package googleelevation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/elevation-profile-etl/internal/domain"
	"github.com/couchcryptid/elevation-profile-etl/internal/observability"
	"github.com/jonboulle/clockwork"
)

// Client implements domain.ElevationService using the Google Maps Elevation API.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
	clock      clockwork.Clock
}

// NewClient creates an elevation client for the given endpoint.
func NewClient(apiKey, baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger, clock clockwork.Clock) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		metrics: metrics,
		logger:  logger,
		clock:   clock,
	}
}

// PathElevations requests samples elevations along path in a single call.
// Requesting one sample per path point returns the elevation at each point
// without interpolation.
func (c *Client) PathElevations(ctx context.Context, path string, samples int) ([]float64, error) {
	if samples < 1 {
		return nil, fmt.Errorf("%w: samples must be positive, got %d", domain.ErrRemoteService, samples)
	}

	params := url.Values{
		"path":    {path},
		"samples": {strconv.Itoa(samples)},
		"key":     {c.apiKey},
	}

	c.metrics.ElevationSamples.Observe(float64(samples))
	start := c.clock.Now()
	elevations, err := c.doRequest(ctx, c.baseURL+"?"+params.Encode(), samples)
	elapsed := c.clock.Since(start)
	c.metrics.ElevationAPIDuration.Observe(elapsed.Seconds())

	if err != nil {
		c.metrics.ElevationRequests.WithLabelValues("error").Inc()
		return nil, err
	}
	c.metrics.ElevationRequests.WithLabelValues("success").Inc()
	c.logger.Debug("elevation lookup complete", "samples", samples, "duration", elapsed)
	return elevations, nil
}

func (c *Client) doRequest(ctx context.Context, fullURL string, samples int) ([]float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", domain.ErrRemoteService, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: elevation request: %w", domain.ErrRemoteService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrRemoteService, resp.StatusCode, body)
	}

	var elevResp response
	if err := json.NewDecoder(resp.Body).Decode(&elevResp); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", domain.ErrRemoteService, err)
	}

	// Google reports request errors (bad key, quota, malformed path) with
	// HTTP 200 and a non-OK status.
	if elevResp.Status != "" && elevResp.Status != "OK" {
		return nil, fmt.Errorf("%w: provider status %s: %s", domain.ErrRemoteService, elevResp.Status, elevResp.ErrorMessage)
	}
	if elevResp.Results == nil {
		return nil, fmt.Errorf("%w: response has no results", domain.ErrRemoteService)
	}
	if len(elevResp.Results) != samples {
		return nil, fmt.Errorf("%w: requested %d samples, got %d", domain.ErrRemoteService, samples, len(elevResp.Results))
	}

	elevations := make([]float64, len(elevResp.Results))
	for i, r := range elevResp.Results {
		elevations[i] = r.Elevation
	}
	return elevations, nil
}

// Elevation API response types.

type response struct {
	Results      []result `json:"results"`
	Status       string   `json:"status"`
	ErrorMessage string   `json:"error_message,omitempty"`
}

type result struct {
	Elevation  float64  `json:"elevation"`
	Location   location `json:"location"`
	Resolution float64  `json:"resolution"` // meters between interpolated data points
}

type location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
