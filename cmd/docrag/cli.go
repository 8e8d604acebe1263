package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/docrag"
	"github.com/fwojciec/docrag/crawl"
	"github.com/fwojciec/docrag/rag"
)

// DefaultQuestion is asked when no question is given.
const DefaultQuestion = "What is a Node in Godot?"

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Config    *Config
	Builder   *rag.Builder
	Generator docrag.Generator
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Question []string `arg:"" optional:"" passthrough:"" help:"Question to ask about the documentation (default: \"What is a Node in Godot?\"). Flags must come before it."`
	Source   string   `short:"s" help:"Documentation URL (overrides DOCRAG_SOURCE_URL)"`
	MaxUnits int      `short:"n" help:"Maximum pages to fetch (overrides DOCRAG_MAX_UNITS)"`
	Provider string   `short:"p" help:"Model provider: openai or gemini (overrides DOCRAG_PROVIDER)"`
	Store    string   `help:"Index store: memory or sqlite (overrides DOCRAG_STORE)"`
}

// question joins the positional words, or returns DefaultQuestion.
func (c *CLI) question() string {
	q := strings.TrimSpace(strings.Join(c.Question, " "))
	if q == "" {
		return DefaultQuestion
	}
	return q
}

// apply copies flag overrides onto cfg.
func (c *CLI) apply(cfg *Config) {
	if c.Source != "" {
		cfg.SourceURL = c.Source
	}
	if c.MaxUnits != 0 {
		cfg.MaxUnits = c.MaxUnits
	}
	if c.Provider != "" {
		cfg.Provider = c.Provider
	}
	if c.Store != "" {
		cfg.Store = c.Store
	}
}

// Run builds the index for the configured site and answers the question.
func (c *CLI) Run(deps *Dependencies) error {
	question := c.question()
	cfg := deps.Config

	fmt.Fprintf(deps.Stderr, "Indexing %s\n", cfg.SourceURL)
	idx, stats, err := deps.Builder.Build(deps.Ctx, cfg.SourceURL)
	fmt.Fprintf(deps.Stderr, "\r%80s\r", "")
	if err != nil {
		return err
	}

	summary := fmt.Sprintf("Indexed %d chunks (%d before dedup) from %d of %d pages, %s",
		stats.UniqueChunks, stats.Chunks, stats.Units, stats.URLs, crawl.FormatBytes(stats.Bytes))
	if stats.Tokens > 0 {
		summary += ", " + crawl.FormatTokens(stats.Tokens)
	}
	if stats.DupUnits > 0 {
		summary += fmt.Sprintf(", %d duplicate pages skipped", stats.DupUnits)
	}
	fmt.Fprintln(deps.Stderr, summary)

	asker := &rag.Asker{
		Index:        idx,
		Generator:    deps.Generator,
		K:            cfg.TopK,
		MaxCitations: cfg.MaxCitations,
		Product:      cfg.Product,
	}
	answer, err := asker.Ask(deps.Ctx, question)
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Q: %s\n\n%s\n", question, answer.Text)
	return nil
}

// progress reports fetch progress on one rewritten line and each skipped
// page on its own line.
func progress(w io.Writer) docrag.FetchProgressFunc {
	return func(p docrag.FetchProgress) {
		if p.Error != nil {
			fmt.Fprintf(w, "\rskip %s: %v\n", p.URL, p.Error)
		}
		fmt.Fprintf(w, "\r[%d/%d] %s", p.Completed, p.Total, crawl.TruncateURL(p.URL, 60))
	}
}
