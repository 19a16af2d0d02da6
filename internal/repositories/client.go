package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"weather-lookup/pkg/logger"
	"weather-lookup/pkg/observe"
)

// payload is a decoded provider response that can check its own required fields.
type payload interface {
	validate() error
}

// getJSON performs one GET against endpoint and decodes the body into out.
// Every failure comes back as an *UpstreamError.
func getJSON(ctx context.Context, client HTTPClient, l *logger.Logger, op, endpoint string, params url.Values, out payload) error {
	start := time.Now()
	result := "ok"
	defer func() {
		observe.ObserveProviderCall(op, result, time.Since(start))
	}()

	l.Info("making openweathermap API request", map[string]any{
		"op":     op,
		"params": redact(params),
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), http.NoBody)
	if err != nil {
		result = "request_error"
		return &UpstreamError{Op: op, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	resp, err := client.Do(req)
	if err != nil {
		result = "transport_error"
		return &UpstreamError{Op: op, Err: fmt.Errorf("failed to do request: %w", err)}
	}
	defer resp.Body.Close()

	l.Info("received openweathermap API response", map[string]any{
		"op":         op,
		"status":     resp.StatusCode,
		"statusText": resp.Status,
	})

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		result = "transport_error"
		return &UpstreamError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		result = "http_error"
		return &UpstreamError{Op: op, StatusCode: resp.StatusCode, Err: errors.New(resp.Status)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		result = "invalid_payload"
		return &UpstreamError{Op: op, StatusCode: resp.StatusCode, Err: &InvalidPayloadError{Err: fmt.Errorf("failed to parse JSON response: %w", err)}}
	}

	if err := out.validate(); err != nil {
		result = "invalid_payload"
		return &UpstreamError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}

	return nil
}

func endpointURL(base, path string) string {
	return strings.TrimRight(base, "/") + path
}

func formatCoord(v float64) string {
	return fmt.Sprintf("%.6f", v)
}

func orDiscard(l *logger.Logger) *logger.Logger {
	if l != nil {
		return l
	}
	return logger.NewZapLogger("weather-lookup", logger.WithWriters(io.Discard))
}

// redact drops the credential so request parameters can be logged.
func redact(params url.Values) string {
	safe := url.Values{}
	for k, v := range params {
		if k == "appid" {
			continue
		}
		safe[k] = v
	}
	return safe.Encode()
}
