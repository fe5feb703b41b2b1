package pipeline

import (
	"context"

	"github.com/lpforge/lpextract"
	"golang.org/x/sync/errgroup"
)

// DefaultBatchConcurrency bounds concurrent extractions in a batch run.
const DefaultBatchConcurrency = 4

// RunBatch extracts a list of URLs concurrently. Results are returned in
// input order; a URL that fails all fetch strategies yields its terminal
// StrategyFailed result rather than aborting the batch. The batch stops
// early only on context cancellation or an invalid input URL.
func (p *Pipeline) RunBatch(ctx context.Context, urls []string, concurrency int) ([]*lpextract.ExtractionResult, error) {
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}

	results := make([]*lpextract.ExtractionResult, len(urls))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, u := range urls {
		g.Go(func() error {
			result, err := p.Run(ctx, u)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
