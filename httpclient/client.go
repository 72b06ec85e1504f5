// Package httpclient wraps the standard http.Client for registry lookups.
//
// It adds user agent management, per-request deadlines, structured request
// logging, Prometheus counters, optional per-host rate limiting, and
// optional OpenTelemetry tracing. There is no retry layer: the engine's
// contract is a single attempt that degrades to local rules on any failure,
// so retrying would only delay the fallback.
package httpclient

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/willibrandon/nugetcompat/observability"
	"github.com/willibrandon/nugetcompat/resilience"
)

const (
	DefaultTimeout     = 5 * time.Second
	DefaultDialTimeout = 3 * time.Second
	DefaultUserAgent   = "nugetcompat/0.1.0"
)

// Client wraps http.Client with registry-lookup configuration.
type Client struct {
	httpClient  *http.Client
	userAgent   string
	timeout     time.Duration
	logger      observability.Logger
	rateLimiter *resilience.PerSourceLimiter // nil disables
}

// Config holds HTTP client configuration.
type Config struct {
	Timeout           time.Duration
	DialTimeout       time.Duration
	UserAgent         string
	MaxIdleConns      int
	Logger            observability.Logger          // nil uses NullLogger
	EnableTracing     bool                          // wrap transport with OpenTelemetry tracing
	RateLimiterConfig *resilience.TokenBucketConfig // nil disables rate limiting
}

// DefaultConfig returns a client configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Timeout:      DefaultTimeout,
		DialTimeout:  DefaultDialTimeout,
		UserAgent:    DefaultUserAgent,
		MaxIdleConns: 20,
	}
}

// NewClient creates a new HTTP client with the given configuration.
func NewClient(cfg *Config) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = DefaultDialTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   cfg.DialTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: cfg.DialTimeout,
		ForceAttemptHTTP2:   true,
	}

	var finalTransport http.RoundTripper = transport
	if cfg.EnableTracing {
		finalTransport = observability.NewHTTPTracingTransport(transport, "github.com/willibrandon/nugetcompat/httpclient")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = observability.NewNullLogger()
	}

	client := &Client{
		httpClient: &http.Client{
			Transport: finalTransport,
			Timeout:   cfg.Timeout,
		},
		userAgent: cfg.UserAgent,
		timeout:   cfg.Timeout,
		logger:    logger,
	}

	if cfg.RateLimiterConfig != nil {
		client.rateLimiter = resilience.NewPerSourceLimiter(*cfg.RateLimiterConfig)
	}

	return client
}

// Do executes an HTTP request with context and user agent.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	req = req.WithContext(ctx)

	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	host := req.URL.Host

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx, host); err != nil {
			c.logger.WarnContext(ctx, "HTTP {Method} {URL} rate limit wait failed: {Error}",
				req.Method, req.URL.String(), err)
			return nil, fmt.Errorf("rate limit wait failed: %w", err)
		}
	}

	c.logger.DebugContext(ctx, "HTTP {Method} {URL}", req.Method, req.URL.String())

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.WarnContext(ctx, "HTTP {Method} {URL} failed after {Duration}ms: {Error}",
			req.Method, req.URL.String(), duration.Milliseconds(), err)
		observability.HTTPRequestsTotal.WithLabelValues(req.Method, "error", host).Inc()
		return nil, err
	}

	c.logger.DebugContext(ctx, "HTTP {Method} {URL} {StatusCode} ({Duration}ms)",
		req.Method, req.URL.String(), resp.StatusCode, duration.Milliseconds())
	observability.HTTPRequestsTotal.WithLabelValues(req.Method, fmt.Sprintf("%d", resp.StatusCode), host).Inc()
	observability.HTTPRequestDuration.WithLabelValues(req.Method, host).Observe(duration.Seconds())

	return resp, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return c.Do(ctx, req)
}

// Timeout returns the per-request deadline.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}
