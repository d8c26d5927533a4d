package imghref

import (
	"context"
	"net/http"
	"time"
)

const (
	defaultTimeout       = 30 * time.Second
	defaultMaxSize int64 = 16 * 1024 * 1024
	defaultUserAgent     = "imghref/1"
)

// httpConfig holds configuration for HTTP-backed resolvers.
type httpConfig struct {
	client    *http.Client
	timeout   time.Duration
	maxSize   int64
	ctx       context.Context
	userAgent string
}

// Option configures an HTTP-backed resolver.
type Option func(*httpConfig)

// WithHTTPClient sets the HTTP client used for fetching. Use this to
// supply custom transports, proxies, or TLS configuration. The client is
// used as-is except that WithTimeout, when also given, applies to a copy.
func WithHTTPClient(client *http.Client) Option {
	return func(c *httpConfig) {
		c.client = client
	}
}

// WithTimeout sets the per-request timeout. The default is 30 seconds.
// A hung request blocks the whole Resolve call, so a finite timeout is
// strongly recommended.
func WithTimeout(d time.Duration) Option {
	return func(c *httpConfig) {
		c.timeout = d
	}
}

// WithMaxSize caps the response body size in bytes. Responses larger
// than the cap resolve to nothing. The default is 16 MiB.
func WithMaxSize(n int64) Option {
	return func(c *httpConfig) {
		c.maxSize = n
	}
}

// WithContext sets the base context for outgoing requests. Cancel it to
// abort in-flight fetches. The default is context.Background().
func WithContext(ctx context.Context) Option {
	return func(c *httpConfig) {
		c.ctx = ctx
	}
}

// WithUserAgent sets the User-Agent header on outgoing requests.
func WithUserAgent(ua string) Option {
	return func(c *httpConfig) {
		c.userAgent = ua
	}
}

func newHTTPConfig(opts ...Option) httpConfig {
	cfg := httpConfig{
		maxSize:   defaultMaxSize,
		ctx:       context.Background(),
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	switch {
	case cfg.client == nil:
		timeout := cfg.timeout
		if timeout == 0 {
			timeout = defaultTimeout
		}
		cfg.client = &http.Client{Timeout: timeout}
	case cfg.timeout > 0:
		// Never mutate a caller-supplied client.
		client := *cfg.client
		client.Timeout = cfg.timeout
		cfg.client = &client
	}

	if cfg.maxSize <= 0 {
		cfg.maxSize = defaultMaxSize
	}

	return cfg
}
