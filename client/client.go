// Package client is the REST client for the catalog/order gateway.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Config configures a gateway client. Only BaseURL is required.
type Config struct {
	// BaseURL is the gateway root including the /api prefix, e.g.
	// "http://localhost:8080/api".
	BaseURL string
	// Timeout bounds each HTTP request; 0 means no client-side timeout,
	// matching the browser clients this replaces.
	Timeout time.Duration
	// Retry applies to idempotent GETs. Nil uses DefaultRetryConfig.
	Retry *RetryConfig
	// EnableTracing wraps the transport with OpenTelemetry HTTP
	// instrumentation.
	EnableTracing bool
	// Logger receives request logging. Nil uses a fresh logger.
	Logger *logrus.Logger
}

// Client issues requests against the gateway. All methods are safe for
// concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	retry   *RetryConfig
	log     *logrus.Logger
}

func New(cfg Config) *Client {
	transport := http.DefaultTransport
	if cfg.EnableTracing {
		transport = otelhttp.NewTransport(transport)
	}
	retryCfg := cfg.Retry
	if retryCfg == nil {
		retryCfg = DefaultRetryConfig()
	}
	log := cfg.Logger
	if log == nil {
		log = logrus.New()
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		retry: retryCfg,
		log:   log,
	}
}

// envelope is the `{status, message, data}` shape every gateway
// endpoint answers with.
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// get fetches path and decodes the envelope's data into out, retrying
// per the client's retry config.
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return retry(ctx, c.retry, func() error {
		return c.do(ctx, http.MethodGet, path, nil, out)
	})
}

// send issues a mutation exactly once.
func (c *Client) send(ctx context.Context, method, path string, body, out interface{}) error {
	return c.do(ctx, method, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read gateway response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var env envelope
		if err := json.Unmarshal(data, &env); err == nil {
			apiErr.Message = env.Message
		}
		c.log.Debugf("%s %s -> %d: %s", method, path, resp.StatusCode, apiErr.Message)
		return apiErr
	}

	if out == nil {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("decode gateway response: %w", err)
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode gateway response data: %w", err)
	}
	return nil
}

// statusCode extracts the HTTP status from an error returned by do.
func statusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
