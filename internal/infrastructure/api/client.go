// Package api implements the HTTP resource client for the storefront
// microservices: typed request helpers, bearer-token injection, error
// normalization, linear-backoff retry and a circuit breaker.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sony/gobreaker/v2"

	"github.com/novellea/storefront-client/internal/config"
	"github.com/novellea/storefront-client/internal/domain"
	"github.com/novellea/storefront-client/internal/session"
)

type Client struct {
	baseURL       string
	httpClient    *http.Client
	breaker       *gobreaker.CircuitBreaker[*http.Response]
	session       *session.Store
	retry         RetryPolicy
	logger        *slog.Logger
	onAuthExpired func()
}

type Option func(*Client)

// WithAuthExpiredHook registers the navigation hook fired after a 401
// invalidates the session (the UI redirects to the login entry point).
func WithAuthExpiredHook(fn func()) Option {
	return func(c *Client) { c.onAuthExpired = fn }
}

// WithHTTPClient swaps the underlying transport, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func NewClient(
	cfg config.APIConfig,
	retryCfg config.RetryConfig,
	breakerCfg config.BreakerConfig,
	sess *session.Store,
	logger *slog.Logger,
	opts ...Option,
) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.ConnTimeout,
		},
		session: sess,
		retry: RetryPolicy{
			BaseDelay:  retryCfg.BaseDelay,
			MaxRetries: retryCfg.MaxRetries,
		},
		logger: logger,
	}
	c.breaker = newBreaker(breakerCfg, logger)

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do sends one logical request, retrying transport failures per the
// client's retry policy. Resp decodes from the JSON body; endpoints that
// answer with no body yield the zero Resp.
func do[Req any, Resp any](c *Client, ctx context.Context, method, path string, reqBody *Req, idempotencyKey string) (Resp, error) {
	return retryDo(ctx, c.retry, func(ctx context.Context) (Resp, error) {
		return doOnce[Req, Resp](c, ctx, method, path, reqBody, idempotencyKey)
	})
}

func doOnce[Req any, Resp any](c *Client, ctx context.Context, method, path string, reqBody *Req, idempotencyKey string) (Resp, error) {
	var zero Resp

	var bodyReader io.Reader
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return zero, fmt.Errorf("error marshalling json: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return zero, fmt.Errorf("error creating request: %w", err)
	}

	if reqBody != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if idempotencyKey != "" {
		httpReq.Header.Set("Idempotency-Key", idempotencyKey)
	}
	if token := c.session.Token(); token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		return c.httpClient.Do(httpReq)
	})
	if err != nil {
		// Breaker-open counts as a transport failure too: no response
		// was received.
		return zero, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return zero, c.expireSession()
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return zero, readServerError(resp)
	}

	if !strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		// Void-returning endpoints answer with an empty body.
		return zero, nil
	}

	var decoded Resp
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return zero, fmt.Errorf("error decoding json response: %w", err)
	}
	return decoded, nil
}

// doRaw fetches a binary resource (e.g. an invoice PDF) with the same
// auth, retry and error handling as do.
func (c *Client) doRaw(ctx context.Context, path string) ([]byte, error) {
	return retryDo(ctx, c.retry, func(ctx context.Context) ([]byte, error) {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return nil, fmt.Errorf("error creating request: %w", err)
		}
		if token := c.session.Token(); token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := c.breaker.Execute(func() (*http.Response, error) {
			return c.httpClient.Do(httpReq)
		})
		if err != nil {
			return nil, &NetworkError{Err: err}
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusUnauthorized {
			return nil, c.expireSession()
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, readServerError(resp)
		}
		return io.ReadAll(resp.Body)
	})
}

// expireSession clears the stored credential and fires the login
// redirect hook. Callers must not retry past this.
func (c *Client) expireSession() error {
	if err := c.session.Logout(); err != nil {
		c.logger.Warn("failed to clear session after 401", "error", err)
	}
	if c.onAuthExpired != nil {
		c.onAuthExpired()
	}
	return &AuthError{Message: "session expired"}
}

func readServerError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var errResp serverErrorResponse
	message := ""
	if err := json.Unmarshal(body, &errResp); err == nil {
		if errResp.Message != "" {
			message = errResp.Message
		} else {
			message = errResp.Error
		}
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	serverErr := &ServerError{
		StatusCode: resp.StatusCode,
		Message:    message,
	}
	if resp.StatusCode == http.StatusNotFound {
		// Callers match missing resources with errors.Is, without
		// depending on this package.
		return fmt.Errorf("%w: %w", domain.ErrNotFound, serverErr)
	}
	return serverErr
}
