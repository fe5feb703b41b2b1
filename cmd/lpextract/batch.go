package main

import (
	"fmt"

	"github.com/lpforge/lpextract"
)

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	urls, err := deps.Sitemaps.Discover(deps.Ctx, c.SiteURL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lpextract.ErrorMessage(err))
		return err
	}
	if len(urls) == 0 {
		fmt.Fprintf(deps.Stderr, "error: no URLs found in sitemap for %s\n", c.SiteURL)
		return lpextract.Errorf(lpextract.ENOTFOUND, "no URLs found in sitemap for %s", c.SiteURL)
	}

	if c.Limit > 0 && len(urls) > c.Limit {
		urls = urls[:c.Limit]
	}
	fmt.Fprintf(deps.Stderr, "extracting %d pages from %s\n", len(urls), c.SiteURL)

	results, err := deps.Pipeline.RunBatch(deps.Ctx, urls, c.Concurrency)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lpextract.ErrorMessage(err))
		return err
	}

	if c.JSON {
		return printJSON(deps, results)
	}

	failed := 0
	for _, result := range results {
		printResult(deps, result)
		if result.Strategy == lpextract.StrategyFailed {
			failed++
		}
	}
	fmt.Fprintf(deps.Stdout, "%d pages extracted, %d failed\n", len(results)-failed, failed)
	return nil
}
