package main

import (
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/docrag"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// envPrefix prefixes every configuration variable. Provider API keys are
// also read without it.
const envPrefix = "DOCRAG"

// Config holds the program configuration, read from the environment.
type Config struct {
	OpenAIAPIKey  string `envconfig:"OPENAI_API_KEY"`
	OpenAIBaseURL string `envconfig:"OPENAI_BASE_URL"`
	GeminiAPIKey  string `envconfig:"GEMINI_API_KEY"`
	GeminiBaseURL string `envconfig:"GEMINI_BASE_URL"`

	Provider       string `envconfig:"PROVIDER" default:"openai"`
	EmbeddingModel string `envconfig:"EMBEDDING_MODEL"`
	ChatModel      string `envconfig:"CHAT_MODEL"`

	SourceURL string   `envconfig:"SOURCE_URL" default:"https://docs.godotengine.org/en/stable/"`
	Product   string   `envconfig:"PRODUCT" default:"Godot"`
	Site      string   `envconfig:"SITE" default:"godot-docs"`
	Version   string   `envconfig:"VERSION" default:"stable"`
	Kind      string   `envconfig:"KIND" default:"docs"`
	Include   []string `envconfig:"INCLUDE"`
	Exclude   []string `envconfig:"EXCLUDE"`

	MaxUnits     int           `envconfig:"MAX_UNITS" default:"600"`
	Concurrency  int           `envconfig:"CONCURRENCY" default:"10"`
	FetchTimeout time.Duration `envconfig:"FETCH_TIMEOUT" default:"10s"`
	FetchRPS     float64       `envconfig:"FETCH_RPS" default:"0"`
	FetchRetries int           `envconfig:"FETCH_RETRIES" default:"0"`
	Walk         bool          `envconfig:"WALK" default:"true"`
	WalkLimit    int           `envconfig:"WALK_LIMIT" default:"1000"`
	Format       string        `envconfig:"FORMAT" default:"text"`
	Extractor    string        `envconfig:"EXTRACTOR" default:"none"`

	ChunkSize        int    `envconfig:"CHUNK_SIZE" default:"1200"`
	ChunkOverlap     int    `envconfig:"CHUNK_OVERLAP" default:"200"`
	EmbedConcurrency int    `envconfig:"EMBED_CONCURRENCY" default:"4"`
	EmbedBatchSize   int    `envconfig:"EMBED_BATCH_SIZE" default:"100"`
	Store            string `envconfig:"STORE" default:"memory"`
	CountTokens      bool   `envconfig:"COUNT_TOKENS" default:"false"`

	TopK         int `envconfig:"TOP_K" default:"8"`
	MaxCitations int `envconfig:"MAX_CITATIONS" default:"8"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"warn"`
}

// LoadConfig reads .env, if present, and then the environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, docrag.Errorf(docrag.EINVALID, "failed to process config: %v", err)
	}
	return &cfg, nil
}

// Validate returns an error if the configuration cannot run a build.
// API keys are checked when the provider clients are created.
func (c *Config) Validate() error {
	u, err := url.Parse(c.SourceURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return docrag.Errorf(docrag.EINVALID, "source URL must be an absolute http(s) URL: %q", c.SourceURL)
	}

	if err := oneOf("provider", c.Provider, "openai", "gemini"); err != nil {
		return err
	}
	if err := oneOf("store", c.Store, "memory", "sqlite"); err != nil {
		return err
	}
	if err := oneOf("format", c.Format, "text", "markdown"); err != nil {
		return err
	}
	if err := oneOf("extractor", c.Extractor, "none", "trafilatura", "readability"); err != nil {
		return err
	}

	if err := c.SplitOptions().Validate(); err != nil {
		return err
	}
	if c.TopK <= 0 {
		return docrag.Errorf(docrag.EINVALID, "top k must be positive")
	}
	if c.MaxCitations <= 0 {
		return docrag.Errorf(docrag.EINVALID, "max citations must be positive")
	}
	if c.FetchRetries < 0 || c.FetchRPS < 0 {
		return docrag.Errorf(docrag.EINVALID, "fetch retries and rate must not be negative")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if _, err := docrag.NewURLFilter(c.Include, c.Exclude); err != nil {
		return err
	}
	return nil
}

// SplitOptions returns the chunking options.
func (c *Config) SplitOptions() docrag.SplitOptions {
	return docrag.SplitOptions{MaxChunkSize: c.ChunkSize, Overlap: c.ChunkOverlap}
}

// Metadata returns the provenance stamped on fetched units.
func (c *Config) Metadata() docrag.UnitMetadata {
	return docrag.UnitMetadata{Site: c.Site, Version: c.Version, Kind: c.Kind}
}

// Level returns the configured log level.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, docrag.Errorf(docrag.EINVALID, "invalid log level %q", c.LogLevel)
	}
	return level, nil
}

// RetryDelays returns the first FetchRetries backoff delays, doubling from
// one second.
func (c *Config) RetryDelays() []time.Duration {
	if c.FetchRetries <= 0 {
		return nil
	}
	delays := make([]time.Duration, c.FetchRetries)
	d := time.Second
	for i := range delays {
		delays[i] = d
		d *= 2
	}
	return delays
}

func oneOf(name, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return docrag.Errorf(docrag.EINVALID, "invalid %s %q (want one of %v)", name, value, allowed)
}

// String summarizes the configuration without secrets.
func (c *Config) String() string {
	return fmt.Sprintf("provider=%s store=%s source=%s max_units=%d chunk=%d/%d top_k=%d",
		c.Provider, c.Store, c.SourceURL, c.MaxUnits, c.ChunkSize, c.ChunkOverlap, c.TopK)
}
