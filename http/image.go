package http

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lpforge/lpextract"
)

// MaxImageBytes caps a hero-image download.
const MaxImageBytes = 20 << 20

// Ensure ImageFetcher implements lpextract.ImageFetcher at compile time.
var _ lpextract.ImageFetcher = (*ImageFetcher)(nil)

// ImageFetcher downloads image bytes with a HEAD probe for content type
// and size before committing to the full transfer.
type ImageFetcher struct {
	client *http.Client
}

// NewImageFetcher creates a new ImageFetcher. If client is nil, a client
// with a 30s timeout is used.
func NewImageFetcher(client *http.Client) *ImageFetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &ImageFetcher{client: client}
}

// FetchImage downloads the image at the URL. Responses that are not images
// or exceed MaxImageBytes are rejected.
func (f *ImageFetcher) FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	if err := f.probe(ctx, imageURL); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, err
	}
	applyBrowserHeaders(req, userAgents[0])
	req.Header.Set("Accept", "image/avif,image/webp,image/apng,image/*,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, lpextract.Errorf(lpextract.EUNAVAILABLE, "HTTP %d fetching image %s", resp.StatusCode, imageURL)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxImageBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxImageBytes {
		return nil, lpextract.Errorf(lpextract.EINVALID, "image %s exceeds %d bytes", imageURL, MaxImageBytes)
	}

	return data, nil
}

// probe issues a HEAD request to reject non-image or oversized resources
// cheaply. Servers that reject HEAD don't fail the fetch; the GET response
// still gets validated by size.
func (f *ImageFetcher) probe(ctx context.Context, imageURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, imageURL, nil)
	if err != nil {
		return err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusMethodNotAllowed {
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		return lpextract.Errorf(lpextract.EUNAVAILABLE, "HTTP %d probing image %s", resp.StatusCode, imageURL)
	}

	ct := resp.Header.Get("Content-Type")
	if ct != "" && !strings.HasPrefix(ct, "image/") {
		return lpextract.Errorf(lpextract.EINVALID, "non-image content type %q for %s", ct, imageURL)
	}
	if resp.ContentLength > MaxImageBytes {
		return lpextract.Errorf(lpextract.EINVALID, "image %s reports %d bytes", imageURL, resp.ContentLength)
	}

	return nil
}
