package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docrag"
	"github.com/fwojciec/docrag/crawl"
	"github.com/fwojciec/docrag/gemini"
	"github.com/fwojciec/docrag/goquery"
	"github.com/fwojciec/docrag/htmltomarkdown"
	dochttp "github.com/fwojciec/docrag/http"
	"github.com/fwojciec/docrag/memory"
	"github.com/fwojciec/docrag/openai"
	"github.com/fwojciec/docrag/rag"
	"github.com/fwojciec/docrag/readability"
	ragslog "github.com/fwojciec/docrag/slog"
	"github.com/fwojciec/docrag/sqlite"
	"github.com/fwojciec/docrag/trafilatura"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	m := NewMain()
	err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	_ = m.Close()
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", errorText(err))
		os.Exit(1)
	}
}

// errorText returns the application message of err, or err itself for
// errors without one.
func errorText(err error) string {
	if docrag.ErrorCode(err) == docrag.EINTERNAL {
		return err.Error()
	}
	return docrag.ErrorMessage(err)
}

// Main represents the program.
type Main struct {
	// Config is read from the environment when nil.
	Config *Config

	// HTTPClient is used for sitemap and page requests when set.
	HTTPClient *http.Client

	// Embedder and Generator replace the configured provider when set.
	Embedder  docrag.Embedder
	Generator docrag.Generator

	// SQLite database backing the index when the sqlite store is selected.
	DB *sqlite.DB

	fetcher docrag.Fetcher
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close releases the resources opened by Run.
func (m *Main) Close() error {
	if m.fetcher != nil {
		_ = m.fetcher.Close()
	}
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docrag"),
		kong.Description("Answer a question from a documentation site."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if helpRequested(args) {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return docrag.Errorf(docrag.EINVALID, "%v", err)
	}

	cfg := m.Config
	if cfg == nil {
		if cfg, err = LoadConfig(); err != nil {
			return err
		}
	}
	cli.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	logger.Debug("config", "config", cfg.String())

	deps, err := m.wire(ctx, cfg, logger, stdout, stderr)
	if err != nil {
		return err
	}
	return cli.Run(deps)
}

// valueFlags take the following argument as their value.
var valueFlags = map[string]bool{
	"-s": true, "--source": true,
	"-n": true, "--max-units": true,
	"-p": true, "--provider": true,
	"--store": true,
}

// helpRequested reports whether a help flag precedes the question. Words
// after the question starts belong to it.
func helpRequested(args []string) bool {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--help" || arg == "-h":
			return true
		case arg == "--":
			return false
		case valueFlags[arg]:
			i++
		case !strings.HasPrefix(arg, "-"):
			return false
		}
	}
	return false
}

// wire builds the services selected by cfg.
func (m *Main) wire(ctx context.Context, cfg *Config, logger *slog.Logger, stdout, stderr io.Writer) (*Dependencies, error) {
	embedder, generator, err := m.providers(ctx, cfg)
	if err != nil {
		return nil, err
	}
	embedder = ragslog.NewLoggingEmbedder(embedder, logger)
	generator = ragslog.NewLoggingGenerator(generator, logger)

	fetchOpts := []dochttp.Option{dochttp.WithTimeout(cfg.FetchTimeout)}
	if m.HTTPClient != nil {
		fetchOpts = append(fetchOpts, dochttp.WithClient(m.HTTPClient))
	}
	m.fetcher = ragslog.NewLoggingFetcher(dochttp.NewFetcher(fetchOpts...), logger)

	registry := goquery.NewRegistry()
	normOpts := []goquery.Option{goquery.WithRegistry(registry)}
	if cfg.Format == "markdown" {
		normOpts = append(normOpts, goquery.WithConverter(htmltomarkdown.NewConverter()))
	}
	switch cfg.Extractor {
	case "trafilatura":
		normOpts = append(normOpts, goquery.WithExtractor(trafilatura.NewExtractor()))
	case "readability":
		normOpts = append(normOpts, goquery.WithExtractor(readability.NewExtractor()))
	}

	var limiter docrag.DomainLimiter
	if cfg.FetchRPS > 0 {
		limiter = crawl.NewDomainLimiter(cfg.FetchRPS)
	}

	filter, err := docrag.NewURLFilter(cfg.Include, cfg.Exclude)
	if err != nil {
		return nil, err
	}

	discoverer := &crawl.Discoverer{
		Sitemaps: ragslog.NewLoggingSitemapService(dochttp.NewSitemapService(m.HTTPClient), logger),
		Filter:   filter,
	}
	// Pages fetched by the walk are served to the unit fetch from cache.
	pages := crawl.NewPageCache()
	if cfg.Walk {
		discoverer.Walker = &crawl.Walker{
			Fetcher:     pages.Recording(m.fetcher),
			Links:       registry.LinkExtractor(),
			RateLimiter: limiter,
			Concurrency: cfg.Concurrency,
			Limit:       cfg.WalkLimit,
			RetryDelays: cfg.RetryDelays(),
		}
	}

	indexer, err := m.indexer(cfg, embedder)
	if err != nil {
		return nil, err
	}

	builder := &rag.Builder{
		Sources: discoverer,
		Fetcher: &crawl.UnitFetcher{
			Fetcher:     pages.Serving(m.fetcher),
			Normalizer:  goquery.NewNormalizer(normOpts...),
			Metadata:    cfg.Metadata(),
			Concurrency: cfg.Concurrency,
			RetryDelays: cfg.RetryDelays(),
			RateLimiter: limiter,
			OnRetry: func(url string, attempt int, err error) {
				logger.Warn("retrying fetch", "url", url, "attempt", attempt, "err", err)
			},
		},
		Indexer:  indexer,
		Split:    cfg.SplitOptions(),
		MaxUnits: cfg.MaxUnits,
		Progress: progress(stderr),
	}
	if cfg.CountTokens {
		tc, err := gemini.NewTokenCounter(gemini.DefaultTokenizerModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create token counter: %w", err)
		}
		builder.TokenCounter = tc
	}

	return &Dependencies{
		Ctx:       ctx,
		Stdout:    stdout,
		Stderr:    stderr,
		Config:    cfg,
		Builder:   builder,
		Generator: generator,
	}, nil
}

// providers returns the embedding and generation services, preferring the
// ones set on Main.
func (m *Main) providers(ctx context.Context, cfg *Config) (docrag.Embedder, docrag.Generator, error) {
	if m.Embedder != nil && m.Generator != nil {
		return m.Embedder, m.Generator, nil
	}

	var embedder docrag.Embedder
	var generator docrag.Generator
	switch cfg.Provider {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, nil, docrag.Errorf(docrag.EINVALID, "GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}
		client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiBaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		embedder = gemini.NewEmbedder(client, cfg.EmbeddingModel)
		generator = gemini.NewGenerator(client, cfg.ChatModel)
	default:
		if cfg.OpenAIAPIKey == "" {
			return nil, nil, docrag.Errorf(docrag.EINVALID, "OPENAI_API_KEY not set")
		}
		client := openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)
		embedder = openai.NewEmbedder(client, cfg.EmbeddingModel)
		generator = openai.NewGenerator(client, cfg.ChatModel)
	}

	if m.Embedder != nil {
		embedder = m.Embedder
	}
	if m.Generator != nil {
		generator = m.Generator
	}
	return embedder, generator, nil
}

// indexer returns the index builder for the configured store.
func (m *Main) indexer(cfg *Config, embedder docrag.Embedder) (docrag.IndexBuilder, error) {
	if cfg.Store != "sqlite" {
		return &memory.Builder{
			Embedder:    embedder,
			Concurrency: cfg.EmbedConcurrency,
			BatchSize:   cfg.EmbedBatchSize,
		}, nil
	}

	m.DB = sqlite.NewDB(":memory:")
	if err := m.DB.Open(); err != nil {
		return nil, fmt.Errorf("failed to open index database: %w", err)
	}
	return &sqlite.Builder{
		DB:          m.DB,
		Embedder:    embedder,
		Concurrency: cfg.EmbedConcurrency,
		BatchSize:   cfg.EmbedBatchSize,
	}, nil
}
