package mock

import (
	"context"

	"github.com/lpforge/lpextract"
)

var _ lpextract.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of lpextract.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ lpextract.StrategyFetcher = (*StrategyFetcher)(nil)

// StrategyFetcher is a mock implementation of lpextract.StrategyFetcher.
type StrategyFetcher struct {
	FetchFn func(ctx context.Context, url string) (*lpextract.FetchResult, error)
}

func (f *StrategyFetcher) Fetch(ctx context.Context, url string) (*lpextract.FetchResult, error) {
	return f.FetchFn(ctx, url)
}

var _ lpextract.ImageFetcher = (*ImageFetcher)(nil)

// ImageFetcher is a mock implementation of lpextract.ImageFetcher.
type ImageFetcher struct {
	FetchImageFn func(ctx context.Context, url string) ([]byte, error)
}

func (f *ImageFetcher) FetchImage(ctx context.Context, url string) ([]byte, error) {
	return f.FetchImageFn(ctx, url)
}
