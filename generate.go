package docrag

import "context"

// Prompt is a single-turn request to a generation service.
type Prompt struct {
	System      string
	User        string
	Temperature float32
}

// Generator produces a text completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt Prompt) (string, error)
}

// TokenCounter counts tokens in text for a specific model.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
