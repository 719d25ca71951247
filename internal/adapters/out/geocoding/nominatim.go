// Package geocoding resolves customer addresses against a Nominatim-style
// HTTP service. Delivery eligibility depends on a resolved coordinate, so an
// address the service cannot locate is a business outcome, not an error.
package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"bistro/internal/core/domain/model/kernel"
	"bistro/internal/core/ports"
	"bistro/internal/pkg/errs"
)

const defaultRequestTimeout = 5 * time.Second

// NominatimClient implements the Geocoder port against a Nominatim-compatible
// endpoint. Transient upstream failures are retried once before surfacing.
type NominatimClient struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewNominatimClient creates a geocoder client for the given base URL.
func NewNominatimClient(baseURL string, logger *slog.Logger) (*NominatimClient, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}

	return &NominatimClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: defaultRequestTimeout},
		logger:  logger.With("component", "geocoder"),
	}, nil
}

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

type reverseResult struct {
	DisplayName string `json:"display_name"`
	Error       string `json:"error"`
}

// Forward resolves a free-form address to a coordinate.
// Returns nil without an error when the service finds no match.
func (c *NominatimClient) Forward(ctx context.Context, address string) (*kernel.GeoPoint, error) {
	if address == "" {
		return nil, errs.NewValueIsRequiredError("address")
	}

	query := url.Values{}
	query.Set("q", address)
	query.Set("format", "json")
	query.Set("limit", "1")

	body, err := c.get(ctx, c.baseURL+"/search?"+query.Encode())
	if err != nil {
		return nil, fmt.Errorf("forward geocode %q: %w", address, err)
	}

	var results []searchResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("forward geocode %q: decode response: %w", address, err)
	}
	if len(results) == 0 {
		c.logger.Info("address not found", "address", address)
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("forward geocode %q: parse latitude: %w", address, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("forward geocode %q: parse longitude: %w", address, err)
	}

	point, err := kernel.NewGeoPoint(lat, lon)
	if err != nil {
		return nil, fmt.Errorf("forward geocode %q: %w", address, err)
	}
	return &point, nil
}

// Reverse resolves a coordinate to a display address.
// Returns nil without an error when the service knows nothing at the point.
func (c *NominatimClient) Reverse(ctx context.Context, point kernel.GeoPoint) (*ports.Address, error) {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(point.Latitude(), 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(point.Longitude(), 'f', -1, 64))
	query.Set("format", "json")

	body, err := c.get(ctx, c.baseURL+"/reverse?"+query.Encode())
	if err != nil {
		return nil, fmt.Errorf("reverse geocode: %w", err)
	}

	var result reverseResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("reverse geocode: decode response: %w", err)
	}
	if result.Error != "" || result.DisplayName == "" {
		return nil, nil
	}

	return &ports.Address{DisplayName: result.DisplayName}, nil
}

// get performs the request with a single retry on transport errors and
// server-side failures.
func (c *NominatimClient) get(ctx context.Context, requestURL string) ([]byte, error) {
	body, err := c.doOnce(ctx, requestURL)
	if err == nil {
		return body, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}

	c.logger.Warn("geocoder request failed, retrying", "error", err)
	return c.doOnce(ctx, requestURL)
}

func (c *NominatimClient) doOnce(ctx context.Context, requestURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
