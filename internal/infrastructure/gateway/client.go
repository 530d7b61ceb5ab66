package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/registro/client/internal/domain/shared"
	"go.uber.org/zap"
)

// TokenStore provides the persisted bearer token and the means to discard it.
// Clearing happens here, and only here, when the server answers 401.
type TokenStore interface {
	Token() string
	Clear() error
}

// Client is the single point of outbound HTTP communication. Every remote
// call in the module goes through it: it attaches the bearer token, assigns a
// request id, normalizes every failure into a shared.AppError and tears down
// the session on 401. No other component touches the transport.
type Client struct {
	baseURL        string
	http           *http.Client
	tokens         TokenStore
	onUnauthorized func()
	logger         *zap.Logger
	metrics        *Metrics
}

// Option is a functional option for configuring the client
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithTokenStore attaches the persisted session store
func WithTokenStore(tokens TokenStore) Option {
	return func(c *Client) { c.tokens = tokens }
}

// WithOnUnauthorized sets the hook invoked after a 401 has cleared the
// session, typically to navigate to the login entry point.
func WithOnUnauthorized(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithMetrics attaches request metrics
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New creates a gateway client rooted at baseURL (including any API prefix,
// e.g. http://localhost:8000/api/v1).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetJSON issues a GET and decodes the JSON response into out
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, query, nil, out)
}

// PostJSON issues a POST with a JSON body and decodes the response into out
func (c *Client) PostJSON(ctx context.Context, path string, body any, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, nil, body, out)
}

// PutJSON issues a PUT with a JSON body and decodes the response into out
func (c *Client) PutJSON(ctx context.Context, path string, body any, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, nil, body, out)
}

// Delete issues a DELETE, ignoring any response body beyond error handling
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, nil)
}

// DoRaw issues a request with a caller-encoded body (e.g. multipart) and
// decodes the JSON response into out. The caller supplies the content type
// produced by its encoder.
func (c *Client) DoRaw(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	return c.do(ctx, method, path, nil, contentType, body, out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return shared.NewRequestError(fmt.Sprintf("could not encode request body: %v", err))
		}
		reader = bytes.NewReader(encoded)
	}
	return c.do(ctx, method, path, query, "application/json", reader, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, contentType string, body io.Reader, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return shared.NewRequestError(fmt.Sprintf("could not build request: %v", err))
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed without a response",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err))
		c.observe(method, 0)
		return shared.NewTransportError("could not reach the server")
	}
	defer resp.Body.Close()

	c.logger.Debug("request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))
	c.observe(method, resp.StatusCode)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return shared.NewTransportError("could not read the server response")
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.teardownSession()
		return shared.NewUnauthorizedError(detailMessage(respBody, "authentication required"))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return shared.NewServerError(detailMessage(respBody, "server error"), resp.StatusCode)
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return shared.NewServerError("could not decode the server response", resp.StatusCode)
	}
	return nil
}

// teardownSession clears all persisted auth state and fires the
// unauthorized hook. Runs before the 401 propagates so no caller ever
// observes a live session alongside an unauthorized error.
func (c *Client) teardownSession() {
	if c.tokens != nil {
		if err := c.tokens.Clear(); err != nil {
			c.logger.Error("failed to clear session after 401", zap.Error(err))
		}
	}
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}

func (c *Client) observe(method string, status int) {
	if c.metrics != nil {
		c.metrics.ObserveRequest(method, status)
	}
}

// detailMessage extracts the human-readable message from an error body's
// detail field, falling back when the body has some other shape.
func detailMessage(body []byte, fallback string) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	return fallback
}
