package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/lpforge/lpextract"
	"github.com/lpforge/lpextract/pipeline"
	"github.com/lpforge/lpextract/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx         context.Context
	Stdout      io.Writer
	Stderr      io.Writer
	Logger      *slog.Logger
	DB          *sqlite.DB
	Extractions lpextract.ExtractionService
	Sitemaps    lpextract.SitemapDiscoverer
	Pipeline    *pipeline.Pipeline
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Extract ExtractCmd `cmd:"" help:"Extract content from a landing page URL"`
	Batch   BatchCmd   `cmd:"" help:"Extract all pages discovered in a site's sitemap"`
	List    ListCmd    `cmd:"" help:"List archived extractions"`
	Delete  DeleteCmd  `cmd:"" help:"Delete an archived extraction"`

	Verbose bool `short:"v" help:"Enable debug logging"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL              string `arg:"" help:"Landing page URL"`
	NoBrowser        bool   `help:"Skip the browser strategy and fetch over plain HTTP"`
	NoLLM            bool   `help:"Skip structured language-model extraction"`
	JSON             bool   `short:"j" help:"Print the full result as JSON"`
	SavePreprocessed string `placeholder:"DIR" help:"Write preprocessed text artifacts to DIR"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	SiteURL          string `arg:"" help:"Site URL whose sitemap feeds the batch"`
	Limit            int    `short:"n" default:"25" help:"Maximum number of pages to extract"`
	Concurrency      int    `short:"c" default:"4" help:"Concurrent extraction limit"`
	NoBrowser        bool   `help:"Skip the browser strategy and fetch over plain HTTP"`
	NoLLM            bool   `help:"Skip structured language-model extraction"`
	JSON             bool   `short:"j" help:"Print results as JSON"`
	SavePreprocessed string `placeholder:"DIR" help:"Write preprocessed text artifacts to DIR"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	URL   string `help:"Filter by exact URL"`
	Limit int    `short:"n" default:"20" help:"Maximum number of records"`
	Full  bool   `help:"Show extracted fields for each record"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Extraction record ID"`
	Force bool   `help:"Confirm deletion"`
}
