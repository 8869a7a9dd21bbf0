package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"konnect-service-go/internal/models"
	"konnect-service-go/internal/payload"
)

type refreshIntervalBody struct {
	Error           string `json:"error"`
	IntervalSeconds int64  `json:"interval_seconds"`
}

// GetRefreshInterval returns the configured interval and true, or the service's
// fallback value and false when none is configured.
func (c *Client) GetRefreshInterval(ctx context.Context) (int64, bool, error) {
	var body refreshIntervalBody
	req := c.client.R().SetResult(&body)

	resp, err := c.doRequest(ctx, http.MethodGet, "/config/refresh-interval", req)
	var apiErr *APIError
	switch {
	case err == nil:
		return body.IntervalSeconds, true, nil
	case errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound:
		if jsonErr := json.Unmarshal(resp.Body(), &body); jsonErr != nil {
			return 0, false, fmt.Errorf("failed to decode refresh interval fallback: %w", jsonErr)
		}
		return body.IntervalSeconds, false, nil
	default:
		return 0, false, fmt.Errorf("failed to get refresh interval: %w", err)
	}
}

// CreateRefreshInterval stores a new interval value.
func (c *Client) CreateRefreshInterval(ctx context.Context, seconds int64) (*models.RefreshInterval, error) {
	in := models.RefreshIntervalInput{IntervalSeconds: payload.Set(seconds)}
	ri, err := call[models.RefreshInterval](ctx, c, http.MethodPost, "/config/refresh-intervals", in, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create refresh interval: %w", err)
	}
	return ri, nil
}

// UpdateRefreshInterval changes the value of an existing interval row.
func (c *Client) UpdateRefreshInterval(ctx context.Context, id uint64, seconds int64) (*models.RefreshInterval, error) {
	in := models.RefreshIntervalInput{IntervalSeconds: payload.Set(seconds)}
	ri, err := call[models.RefreshInterval](ctx, c, http.MethodPut, "/config/refresh-intervals/{id}", in, idParams(id))
	if err != nil {
		return nil, fmt.Errorf("failed to update refresh interval %d: %w", id, err)
	}
	return ri, nil
}
