// Package scrape provides the shared HTTP plumbing for provider plugins:
// a decompressing transport, optional proxy support, and charset-tolerant
// readers for the fetched HTML.
package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/tamilstream/tamilstream/internal/config"
)

// Client fetches pages from source sites with a shared, correctly configured
// http.Client. Provider plugins embed one instead of building their own.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient builds a scraping client from config: timeout, optional proxy,
// and the decoding transport.
func NewClient(cfg *config.Config) *Client {
	timeout := 30 * time.Second // default
	if cfg.ClientTimeout != "" {
		if parsed, err := time.ParseDuration(cfg.ClientTimeout); err != nil {
			logger := config.GetLogger()
			logger.Warn().Err(err).Str("timeout", cfg.ClientTimeout).Msg("Invalid timeout duration, using default 30s")
		} else {
			timeout = parsed
		}
	}

	// Clone DefaultTransport to preserve its pooling and HTTP/2 settings.
	baseTransport := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.ProxyConnectionString != "" {
		proxyURL, err := url.Parse(cfg.ProxyConnectionString)
		if err != nil {
			logger := config.GetLogger()
			logger.Warn().Err(err).Str("proxy", cfg.ProxyConnectionString).Msg("Invalid proxy URL, continuing without proxy")
		} else {
			baseTransport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: NewDecodingTransport(baseTransport),
		},
		userAgent: cfg.UserAgent,
	}
}

// NewClientWithHTTP wraps an existing http.Client. Used by tests and by
// callers that already carry a configured client.
func NewClientWithHTTP(httpClient *http.Client, userAgent string) *Client {
	return &Client{httpClient: httpClient, userAgent: userAgent}
}

// FetchPage GETs the given URL and returns a UTF-8 reader over the body.
// The returned closer releases the underlying connection.
func (c *Client) FetchPage(ctx context.Context, pageURL string) (io.Reader, io.Closer, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build request for %s: %w", pageURL, err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, pageURL)
	}

	reader, err := NewUTF8Reader(resp.Body)
	if err != nil {
		resp.Body.Close()
		return nil, nil, fmt.Errorf("failed to detect charset for %s: %w", pageURL, err)
	}

	return reader, resp.Body, nil
}

// NewUTF8Reader wraps an io.Reader with automatic character encoding
// detection and conversion to UTF-8, so goquery always sees valid UTF-8
// regardless of the site's declared or actual encoding.
func NewUTF8Reader(body io.Reader) (io.Reader, error) {
	// contentType is empty so detection works from the content itself
	return charset.NewReader(body, "")
}
