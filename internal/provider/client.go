package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"

	"scenemedia/be/internal/logging"
)

// Defaults for Config.
const (
	DefaultMaxRetries = 3
	DefaultBaseDelay  = time.Second
	DefaultTimeout    = 15 * time.Second
)

// Config controls the retry behaviour of a Client.
type Config struct {
	// MaxRetries is the total number of attempts, including the first one.
	MaxRetries int
	// BaseDelay is the fixed pause between attempts.
	BaseDelay time.Duration
	// Timeout bounds each individual attempt.
	Timeout time.Duration
	// HTTPClient overrides the transport. Its Timeout is replaced by Timeout.
	HTTPClient *http.Client
}

func normalizeConfig(cfg Config) Config {
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = DefaultBaseDelay
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return cfg
}

// Client performs bounded-retry GET requests against a provider endpoint.
type Client struct {
	httpClient  *http.Client
	maxAttempts int
	delay       time.Duration
	logger      logging.Logger
}

// NewClient creates a provider client.
func NewClient(cfg Config, logger logging.Logger) *Client {
	cfg = normalizeConfig(cfg)

	httpClient := &http.Client{}
	if cfg.HTTPClient != nil {
		copied := *cfg.HTTPClient
		httpClient = &copied
	}
	httpClient.Timeout = cfg.Timeout

	return &Client{
		httpClient:  httpClient,
		maxAttempts: cfg.MaxRetries,
		delay:       cfg.BaseDelay,
		logger:      logging.OrDiscard(logger),
	}
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("provider returned status %d", e.code)
}

// retryable reports whether an attempt error should trigger another attempt. Transport
// failures and 4xx/5xx statuses are retried; an unreadable body is not.
func retryable(err error) bool {
	return err != nil && !errors.Is(err, ErrMalformedResponse)
}

func (c *Client) newRetryPolicy(endpoint string) retrypolicy.RetryPolicy[*Result] {
	return retrypolicy.NewBuilder[*Result]().
		WithMaxAttempts(c.maxAttempts).
		WithDelay(c.delay).
		HandleIf(func(_ *Result, err error) bool {
			return retryable(err)
		}).
		OnRetry(func(e failsafe.ExecutionEvent[*Result]) {
			c.logger.WithFields(logging.Fields{
				"endpoint": endpoint,
				"attempt":  e.Attempts(),
				"error":    e.LastError(),
			}).Warn("retrying provider request")
		}).
		Build()
}

// Fetch issues a GET to endpoint with params. A successful response is returned at once,
// even when it has no hits. On failure the error wraps ErrUnavailable (all attempts
// failed) or ErrMalformedResponse.
func (c *Client) Fetch(ctx context.Context, endpoint string, params url.Values) (*Result, error) {
	target, err := buildURL(endpoint, params)
	if err != nil {
		return nil, err
	}

	executor := failsafe.With[*Result](c.newRetryPolicy(endpoint))
	res, err := executor.WithContext(ctx).Get(func() (*Result, error) {
		return c.attempt(ctx, target)
	})
	if err != nil {
		if errors.Is(err, ErrMalformedResponse) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s after %d attempts: %v", ErrUnavailable, endpoint, c.maxAttempts, err)
	}
	return res, nil
}

func (c *Client) attempt(ctx context.Context, target string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create provider request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// The url.Error text embeds the query string, which carries the API key.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &statusError{code: resp.StatusCode}
	}

	var decoded response
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if decoded.Hits == nil {
		return nil, fmt.Errorf("%w: missing hits", ErrMalformedResponse)
	}

	return &Result{Items: decoded.Hits, TotalCount: decoded.TotalHits}, nil
}

func buildURL(endpoint string, params url.Values) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("parse provider url: %w", err)
	}
	q := u.Query()
	for k, vals := range params {
		for _, v := range vals {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
