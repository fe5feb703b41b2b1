package main

import (
	"encoding/json"
	"fmt"

	"github.com/lpforge/lpextract"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	result, err := deps.Pipeline.Run(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lpextract.ErrorMessage(err))
		return err
	}

	if c.JSON {
		if err := printJSON(deps, result); err != nil {
			return err
		}
	} else {
		printResult(deps, result)
	}

	// Exit non-zero so scripts can tell a degraded result from a real one.
	if result.Strategy == lpextract.StrategyFailed {
		return lpextract.Errorf(lpextract.EFETCHFAILED, "all fetch strategies failed for %s", c.URL)
	}
	return nil
}

// printJSON writes one or more results as indented JSON.
func printJSON(deps *Dependencies, v any) error {
	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printResult writes a human-readable extraction summary.
func printResult(deps *Dependencies, result *lpextract.ExtractionResult) {
	fmt.Fprintf(deps.Stdout, "%s\n", result.URL)
	fmt.Fprintf(deps.Stdout, "  strategy: %s\n", result.Strategy)

	if result.Strategy == lpextract.StrategyFailed {
		fmt.Fprintln(deps.Stdout, "  all fetch strategies failed")
		return
	}

	fmt.Fprintf(deps.Stdout, "  title: %s\n", result.Metadata["title"])
	fmt.Fprintf(deps.Stdout, "  text: %d chars, %d words\n", result.Stats.CharCount, result.Stats.WordCount)
	fmt.Fprintf(deps.Stdout, "  images: %d", result.Stats.ImageCount)
	if len(result.Images) > 0 {
		fmt.Fprintf(deps.Stdout, " (hero: %s)", result.Images[0].SourceURL)
	}
	fmt.Fprintln(deps.Stdout)

	if result.Structured == nil {
		return
	}

	usable := ""
	if result.Structured.Confidence < lpextract.UsableConfidence {
		usable = " (below usable threshold)"
	}
	fmt.Fprintf(deps.Stdout, "  confidence: %.2f%s\n", result.Structured.Confidence, usable)
	for _, field := range lpextract.DefaultSchema() {
		if !result.Structured.Fields.NonEmpty(field.Name) {
			continue
		}
		fmt.Fprintf(deps.Stdout, "  %s: %s\n", field.Name, result.Structured.Fields.String(field.Name))
	}
}
