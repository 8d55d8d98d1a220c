package browser

import (
	"context"
	"io"

	"batteryspec/worker/helpers"
)

// PageFetcher loads one URL and returns its HTML. The Chrome session
// implements it with a rendered page; HTTPFetcher implements it with a bare
// request for pages that need no JavaScript, which is all catalog mode
// probes.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// HTTPFetcher fetches pages over plain HTTP with randomized browser-like
// headers and UTF-8 transcoding.
type HTTPFetcher struct{}

var _ PageFetcher = (*HTTPFetcher)(nil)

// NewHTTPFetcher creates an HTTPFetcher.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{}
}

// Fetch retrieves url and returns the body as a UTF-8 string.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	body, err := helpers.FetchWithRandomHeaders(ctx, url)
	if err != nil {
		return "", err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
