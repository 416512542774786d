package httpfetch

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"onepage/internal/ports"
)

// Fetcher retrieves media bytes over HTTP with bounded timeouts.
type Fetcher struct {
	client *http.Client
}

var _ ports.Fetcher = (*Fetcher)(nil)

// New returns a fetcher with an overall request timeout.
func New(timeout time.Duration) *Fetcher {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 60 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &Fetcher{
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// Fetch downloads url and returns the payload with its content type.
// Non-2xx responses are errors.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("fetching %s: %s", url, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return data, contentType, nil
}
