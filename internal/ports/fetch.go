package ports

import "context"

// Fetcher retrieves the raw bytes of a deferred media source.
type Fetcher interface {
	// Fetch downloads url and returns the payload with its content type.
	Fetch(ctx context.Context, url string) (data []byte, contentType string, err error)
}
