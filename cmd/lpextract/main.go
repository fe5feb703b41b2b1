package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/lpforge/lpextract"
	"github.com/lpforge/lpextract/bloom"
	"github.com/lpforge/lpextract/fs"
	"github.com/lpforge/lpextract/gemini"
	"github.com/lpforge/lpextract/goquery"
	"github.com/lpforge/lpextract/htmltomarkdown"
	lphttp "github.com/lpforge/lpextract/http"
	"github.com/lpforge/lpextract/mem"
	"github.com/lpforge/lpextract/pipeline"
	"github.com/lpforge/lpextract/rod"
	lpslog "github.com/lpforge/lpextract/slog"
	"github.com/lpforge/lpextract/sqlite"
	"github.com/lpforge/lpextract/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	ExtractionService lpextract.ExtractionService

	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	for _, c := range m.closers {
		_ = c.Close()
	}
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("lpextract"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'lpextract --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set LPEXTRACT_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.ExtractionService = sqlite.NewExtractionService(m.DB)
	deps.DB = m.DB
	deps.Extractions = m.ExtractionService
	deps.Sitemaps = lpslog.NewLoggingSitemapDiscoverer(lphttp.NewSitemapService(nil), deps.Logger)

	switch cmd {
	case "extract":
		deps.Pipeline, err = m.buildPipeline(ctx, deps, pipelineConfig{
			noBrowser:        cli.Extract.NoBrowser,
			noLLM:            cli.Extract.NoLLM,
			savePreprocessed: cli.Extract.SavePreprocessed,
		}, stderr)
	case "batch":
		deps.Pipeline, err = m.buildPipeline(ctx, deps, pipelineConfig{
			noBrowser:        cli.Batch.NoBrowser,
			noLLM:            cli.Batch.NoLLM,
			savePreprocessed: cli.Batch.SavePreprocessed,
		}, stderr)
	}
	if err != nil {
		return err
	}

	return kongCtx.Run(deps)
}

// pipelineConfig carries the per-command pipeline flags.
type pipelineConfig struct {
	noBrowser        bool
	noLLM            bool
	savePreprocessed string
}

// buildPipeline wires the extraction pipeline from its stage
// implementations.
func (m *Main) buildPipeline(ctx context.Context, deps *Dependencies, cfg pipelineConfig, stderr io.Writer) (*pipeline.Pipeline, error) {
	var browser lpextract.Fetcher
	if !cfg.noBrowser {
		rodFetcher, err := rod.NewFetcher()
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or pass --no-browser")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		m.closers = append(m.closers, rodFetcher)
		browser = rodFetcher
	}

	httpFetcher := lphttp.NewFetcher()
	m.closers = append(m.closers, httpFetcher)

	fetcher := lpslog.NewLoggingStrategyFetcher(
		pipeline.NewFallbackFetcher(browser, httpFetcher),
		deps.Logger,
	)

	registry := lpslog.NewLoggingRegistry(goquery.DefaultRegistry(), deps.Logger)
	extractor := goquery.NewExtractor(registry)
	preprocessor := htmltomarkdown.NewPreprocessor(
		htmltomarkdown.WithExtractor(trafilatura.NewExtractor()),
	)

	opts := []pipeline.Option{
		pipeline.WithCache(mem.NewCache(lpextract.DefaultCacheCapacity)),
		pipeline.WithFailedFilter(bloom.NewFilter(10000, 0.01)),
		pipeline.WithImageFetcher(lphttp.NewImageFetcher(nil)),
		pipeline.WithDomainLimiter(pipeline.NewDomainLimiter(1.0)),
		pipeline.WithStore(m.ExtractionService),
		pipeline.WithLogger(deps.Logger),
	}

	if cfg.savePreprocessed != "" {
		opts = append(opts, pipeline.WithPreprocessedWriter(fs.NewWriter(cfg.savePreprocessed)))
	}

	if !cfg.noLLM {
		structured, err := buildStructuredExtractor(ctx, deps.Logger, stderr)
		if err != nil {
			return nil, err
		}
		if structured != nil {
			opts = append(opts, pipeline.WithStructuredExtractor(structured))
		}
	}

	return pipeline.New(fetcher, extractor, preprocessor, opts...), nil
}

// buildStructuredExtractor creates the Gemini stage when an API key is
// configured. A missing key disables the stage with a hint instead of
// failing the run.
func buildStructuredExtractor(ctx context.Context, logger *slog.Logger, stderr io.Writer) (lpextract.StructuredExtractor, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY not set; skipping structured extraction. Get a key at https://aistudio.google.com/apikey")
		return nil, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, lpextract.Errorf(lpextract.EMODELFAILED, "failed to connect to Gemini API: %s", err)
	}

	geminiOpts := []gemini.Option{}
	if counter, err := gemini.NewTokenCounter(tokenizerModel); err == nil {
		geminiOpts = append(geminiOpts, gemini.WithTokenCounter(counter))
	}

	return lpslog.NewLoggingStructuredExtractor(
		gemini.NewExtractor(client, geminiOpts...),
		logger,
	), nil
}

// tokenizerModel is used for token counting. Using gemini-2.5-flash until
// gemini-2.5-flash-lite is supported by google.golang.org/genai/tokenizer.
const tokenizerModel = "gemini-2.5-flash"

func defaultDBPath() string {
	if path := os.Getenv("LPEXTRACT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "lpextract.db"
	}
	dir := filepath.Join(home, ".lpextract")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "lpextract.db")
}
