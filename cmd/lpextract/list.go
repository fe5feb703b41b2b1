package main

import (
	"fmt"

	"github.com/lpforge/lpextract"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := lpextract.ExtractionFilter{Limit: c.Limit}
	if c.URL != "" {
		filter.URL = &c.URL
	}

	recs, err := deps.Extractions.FindExtractions(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lpextract.ErrorMessage(err))
		return err
	}

	if len(recs) == 0 {
		fmt.Fprintln(deps.Stdout, "No extractions found. Use 'lpextract extract' to create one.")
		return nil
	}

	for _, rec := range recs {
		fmt.Fprintf(deps.Stdout, "%s  %.2f  %s  %s\n", rec.ID, rec.Confidence, rec.CreatedAt.Format("2006-01-02"), rec.URL)
		if !c.Full {
			continue
		}
		for _, field := range lpextract.DefaultSchema() {
			if !rec.Fields.NonEmpty(field.Name) {
				continue
			}
			fmt.Fprintf(deps.Stdout, "    %s: %s\n", field.Name, rec.Fields.String(field.Name))
		}
	}

	return nil
}
