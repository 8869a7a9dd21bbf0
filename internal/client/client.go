// Package client is a typed REST client for the konnect service API.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"konnect-service-go/internal/config"
)

const maxRetries = 3

// APIError is a response the service answered with a 4xx or 5xx status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Client talks to the service over HTTP with client-side rate limiting.
type Client struct {
	client  *resty.Client
	logger  *zap.Logger
	limiter *rate.Limiter
	backoff time.Duration
}

// NewClient creates a new API client.
func NewClient(cfg config.Client, logger *zap.Logger) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	// rate.Limit is requests per second.
	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimitBurst)

	return &Client{
		client:  client,
		logger:  logger.Named("client"),
		limiter: limiter,
		backoff: time.Second,
	}
}

func idempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

// doRequest executes req with rate limiting. Idempotent requests are retried on
// network errors, 429 and 5xx with exponential backoff or the server's Retry-After.
// Error responses come back as *APIError together with the response.
func (c *Client) doRequest(ctx context.Context, method, url string, req *resty.Request) (*resty.Response, error) {
	var resp *resty.Response
	var err error
	req.SetContext(ctx)

	for i := 0; i < maxRetries; i++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait failed: %w", err)
		}

		c.logger.Debug("Executing request", zap.String("method", method), zap.String("url", c.client.BaseURL+url))
		resp, err = req.Execute(method, url)

		var retryAfter time.Duration
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
		case !resp.IsError():
			return resp, nil
		case resp.StatusCode() == http.StatusTooManyRequests || resp.StatusCode() >= 500:
			err = apiError(resp)
			if seconds, convErr := strconv.Atoi(resp.Header().Get("Retry-After")); convErr == nil {
				retryAfter = time.Duration(seconds) * time.Second
			}
		default:
			return resp, apiError(resp)
		}

		if !idempotent(method) || i == maxRetries-1 {
			break
		}
		if retryAfter == 0 {
			retryAfter = time.Duration(math.Pow(2, float64(i))) * c.backoff
		}

		c.logger.Warn("Request failed, retrying...",
			zap.Int("attempt", i+1),
			zap.Duration("retry_after", retryAfter),
			zap.Error(err),
		)

		select {
		case <-time.After(retryAfter):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return resp, err
	}
	return nil, fmt.Errorf("request failed: %w", err)
}

// apiError reads the service's {"error": "..."} body, falling back to the raw text.
func apiError(resp *resty.Response) *APIError {
	var body struct {
		Error string `json:"error"`
	}
	msg := resp.String()
	if json.Unmarshal(resp.Body(), &body) == nil && body.Error != "" {
		msg = body.Error
	}
	return &APIError{StatusCode: resp.StatusCode(), Message: msg}
}

// call sends body (when non-nil) and decodes a successful response into a new T.
func call[T any](ctx context.Context, c *Client, method, url string, body any, pathParams map[string]string) (*T, error) {
	out := new(T)
	req := c.client.R().SetResult(out).SetPathParams(pathParams)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	if _, err := c.doRequest(ctx, method, url, req); err != nil {
		return nil, err
	}
	return out, nil
}

// Health checks that the service is up.
func (c *Client) Health(ctx context.Context) error {
	if _, err := call[map[string]string](ctx, c, http.MethodGet, "/health", nil, nil); err != nil {
		return fmt.Errorf("failed to check health: %w", err)
	}
	return nil
}
