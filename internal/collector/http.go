package collector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"TempHarvest/internal/model"
)

// DefaultUserAgent is sent when no User-Agent header is configured.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/115.0.0.0 Safari/537.36"

// HTTPFetcher implements Fetcher over net/http.
type HTTPFetcher struct {
	Client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

// HTTPOptions configures NewHTTPFetcher.
type HTTPOptions struct {
	Timeout  time.Duration
	ProxyURL string
	// BreakerThreshold opens the circuit after this many consecutive
	// failures; 0 disables the breaker.
	BreakerThreshold uint32
	BreakerCooldown  time.Duration
}

// NewHTTPFetcher creates a fetcher with optional proxy support.
func NewHTTPFetcher(opts HTTPOptions) *HTTPFetcher {
	transport := &http.Transport{}
	if opts.ProxyURL != "" {
		if u, err := url.Parse(opts.ProxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	f := &HTTPFetcher{
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
	if opts.BreakerThreshold > 0 {
		threshold := opts.BreakerThreshold
		f.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "month-pages",
			MaxRequests: 1,
			Timeout:     opts.BreakerCooldown,
			ReadyToTrip: func(c gobreaker.Counts) bool {
				return c.ConsecutiveFailures >= threshold
			},
		})
	}
	return f
}

func (f *HTTPFetcher) Name() string { return "http" }

// Fetch GETs url with headers and returns the body. Any network failure or
// non-2xx status wraps model.ErrTransport.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	if f.breaker == nil {
		return f.get(ctx, url, headers)
	}
	body, err := f.breaker.Execute(func() (interface{}, error) {
		return f.get(ctx, url, headers)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %w", model.ErrTransport, err)
		}
		return nil, err
	}
	return body.([]byte), nil
}

func (f *HTTPFetcher) get(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", model.ErrTransport, err)
	}
	req.Header.Set("User-Agent", DefaultUserAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", model.ErrTransport, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", model.ErrTransport, resp.StatusCode)
	}
	return body, nil
}
