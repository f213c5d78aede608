package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var ErrNotAnImage = errors.New("source response is not an image")

// UpstreamStatusError reports a non-OK response from the source server. The
// upstream status is propagated verbatim as this service's status.
type UpstreamStatusError struct {
	Status int
	URL    string
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("source fetch returned status %d for %s", e.Status, e.URL)
}

// SourceImage is the fetched, not-yet-decoded remote image: raw bytes plus
// the passthrough headers copied onto the proxied response. Request-scoped,
// never persisted.
type SourceImage struct {
	Body         []byte
	ContentType  string
	CacheControl string
	ETag         string
	LastModified string
}

type Fetcher struct {
	client *http.Client
}

// New builds a Fetcher around a plain http.Client. No client timeout is set:
// the proxy imposes no deadline of its own on source fetches, so a hung
// upstream holds its request open until the transport gives up.
func New() *Fetcher {
	return &Fetcher{client: &http.Client{}}
}

// Fetch retrieves the source image and validates that the payload is an
// image. Non-OK upstream statuses surface as *UpstreamStatusError;
// non-image payloads as ErrNotAnImage.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*SourceImage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamStatusError{Status: resp.StatusCode, URL: rawURL}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		// upstream did not say, sniff the payload instead
		contentType = mimetype.Detect(body).String()
	}

	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: got content type %q", ErrNotAnImage, contentType)
	}

	return &SourceImage{
		Body:         body,
		ContentType:  contentType,
		CacheControl: resp.Header.Get("Cache-Control"),
		ETag:         resp.Header.Get("ETag"),
		LastModified: resp.Header.Get("Last-Modified"),
	}, nil
}
