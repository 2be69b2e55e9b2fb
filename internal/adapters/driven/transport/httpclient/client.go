package httpclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/cliprelay/internal/core/domain"
	"github.com/custodia-labs/cliprelay/internal/core/ports/driven"
	"github.com/custodia-labs/cliprelay/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.Transport = (*Client)(nil)

// DefaultTimeout bounds each request when none is configured.
const DefaultTimeout = 10 * time.Second

// Config configures the HTTP transport.
type Config struct {
	// Timeout bounds each request, including reading the response.
	Timeout time.Duration

	// InsecureSkipVerify accepts self-signed certificates.
	InsecureSkipVerify bool

	// RatePerSecond limits requests. Zero disables limiting.
	RatePerSecond float64

	// Burst is the token bucket size. Values below one are raised to one.
	Burst int

	// UserAgent is sent with every request when set.
	UserAgent string
}

// ConfigFromSettings builds a transport configuration from app settings.
func ConfigFromSettings(s domain.AppSettings, userAgent string) Config {
	return Config{
		Timeout:            s.Endpoint.Timeout,
		InsecureSkipVerify: s.Endpoint.InsecureSkipVerify,
		RatePerSecond:      s.Dispatch.RatePerSecond,
		Burst:              s.Dispatch.Burst,
		UserAgent:          userAgent,
	}
}

// Client posts JSON envelopes. It makes exactly one attempt per call.
type Client struct {
	http      *http.Client
	limiter   *rate.Limiter
	userAgent string
}

// New creates a transport from cfg.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in for self-signed local endpoints
	}

	return newClient(&http.Client{Timeout: timeout, Transport: transport}, cfg)
}

// NewWithHTTPClient creates a transport around an existing client.
// The client's own timeout and TLS settings are used as-is.
func NewWithHTTPClient(hc *http.Client, cfg Config) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return newClient(hc, cfg)
}

func newClient(hc *http.Client, cfg Config) *Client {
	c := &Client{http: hc, userAgent: cfg.UserAgent}
	if cfg.RatePerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}
	return c
}

// Post sends body to url with Content-Type application/json.
// The response body is drained and discarded.
func (c *Client) Post(ctx context.Context, url string, body []byte) (*domain.Response, error) {
	if err := c.wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrNetwork, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %w", domain.ErrNetwork, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	logger.Debug("transport: POST %s (%d bytes)", url, len(body))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	n, err := io.Copy(io.Discard, resp.Body)
	summary := &domain.Response{StatusCode: resp.StatusCode, BodyBytes: n}
	if err != nil {
		return summary, fmt.Errorf("%w: reading response: %w", domain.ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return summary, &domain.RemoteStatusError{StatusCode: resp.StatusCode}
	}
	return summary, nil
}

// wait blocks until the limiter allows a request.
func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}
