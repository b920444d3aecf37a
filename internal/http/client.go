package http

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptrace"
	"time"

	"github.com/google/uuid"

	"github.com/wesleyorama2/fetchkit/internal/container"
	"github.com/wesleyorama2/fetchkit/internal/metrics"
	"github.com/wesleyorama2/fetchkit/internal/resolve"
)

// DefaultTimeout is the request timeout of a Client built without WithTimeout.
const DefaultTimeout = 30 * time.Second

// RequestIDHeader carries the id added by WithRequestID.
const RequestIDHeader = "X-Request-Id"

// Client issues Containers. It is safe for concurrent use by multiple
// goroutines.
type Client struct {
	httpClient *http.Client
	headers    http.Header
	recorder   *metrics.Recorder
	resolver   *resolve.Resolver
	logger     *slog.Logger
	requestID  bool
}

// ClientOption is a function that configures a Client
type ClientOption func(*Client)

// NewClient creates a new HTTP client with the given options
func NewClient(options ...ClientOption) *Client {
	client := &Client{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		headers:  make(http.Header),
		resolver: resolve.Default(),
		logger:   slog.Default(),
	}

	for _, option := range options {
		option(client)
	}

	return client
}

// WithTimeout sets the timeout for the client
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHeader adds a header sent with every request. Container headers win.
func WithHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.headers.Set(key, value)
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRecorder records the total time of every request.
func WithRecorder(r *metrics.Recorder) ClientOption {
	return func(c *Client) {
		c.recorder = r
	}
}

// WithResolver sets the Resolver used by Fetch.
func WithResolver(r *resolve.Resolver) ClientOption {
	return func(c *Client) {
		c.resolver = r
	}
}

// WithLogger sets the logger for request and response records.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// WithRequestID adds a random X-Request-Id header to requests that do not
// carry one.
func WithRequestID() ClientOption {
	return func(c *Client) {
		c.requestID = true
	}
}

// Issue builds and executes the request described by c.
func (c *Client) Issue(ctx context.Context, ct container.Container) (*Response, error) {
	req, err := BuildRequest(ctx, ct)
	if err != nil {
		return nil, err
	}

	for key, values := range c.headers {
		if req.Header.Get(key) == "" {
			req.Header[key] = values
		}
	}
	if c.requestID && req.Header.Get(RequestIDHeader) == "" {
		req.Header.Set(RequestIDHeader, uuid.NewString())
	}

	timing := TimingInfo{StartTime: time.Now()}
	req = req.WithContext(httptrace.WithClientTrace(req.Context(), newTrace(&timing)))

	c.logger.Debug("sending request", "method", req.Method, "url", req.URL.String())

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	transferStart := time.Now()
	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	timing.ContentTransferTime = time.Since(transferStart)
	timing.TotalTime = time.Since(timing.StartTime)

	if c.recorder != nil {
		c.recorder.Record(timing.TotalTime)
	}

	c.logger.Debug("received response",
		"status", httpResp.StatusCode,
		"bytes", len(body),
		"duration", timing.TotalTime)

	return &Response{
		StatusCode:   httpResp.StatusCode,
		Status:       httpResp.Status,
		Headers:      httpResp.Header,
		ResponseTime: timing.TotalTime,
		Timing:       timing,
		body:         body,
	}, nil
}

// Fetch issues ct and resolves the response as ct's resolveAs option. It is
// the IssueFunc for presets built on this client.
func (c *Client) Fetch(ctx context.Context, ct container.Container) (any, error) {
	resp, err := c.Issue(ctx, ct)
	if err != nil {
		return nil, err
	}
	return c.resolver.Resolve(resp, ct.ResolveAs())
}

// Preset binds base to a preset backed by Fetch.
func (c *Client) Preset(base container.Container) container.Preset[any] {
	return container.Compose[any](c.Fetch).Bind(base)
}
