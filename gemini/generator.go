// Package gemini implements generation, embeddings, and token counting on
// Google Gemini.
package gemini

import (
	"context"
	"strings"

	"github.com/fwojciec/docrag"
	"google.golang.org/genai"
)

// Default models.
const (
	DefaultChatModel      = "gemini-2.5-flash"
	DefaultEmbeddingModel = "gemini-embedding-001"
)

// Ensure Generator implements docrag.Generator at compile time.
var _ docrag.Generator = (*Generator)(nil)

// Generator implements docrag.Generator using Google Gemini.
type Generator struct {
	client *genai.Client
	model  string
}

// NewGenerator creates a new Generator. An empty model selects
// DefaultChatModel.
func NewGenerator(client *genai.Client, model string) *Generator {
	if model == "" {
		model = DefaultChatModel
	}
	return &Generator{client: client, model: model}
}

// Generate sends the prompt as a single user turn with the system
// instruction attached and returns the response text.
func (g *Generator) Generate(ctx context.Context, prompt docrag.Prompt) (string, error) {
	if strings.TrimSpace(prompt.User) == "" {
		return "", docrag.Errorf(docrag.EINVALID, "prompt required")
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{genai.NewContentFromText(prompt.User, genai.RoleUser)},
		BuildConfig(prompt),
	)
	if err != nil {
		return "", docrag.Errorf(docrag.EUNAVAILABLE, "gemini generation: %v", err)
	}
	if result == nil {
		return "", docrag.Errorf(docrag.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for a prompt.
func BuildConfig(prompt docrag.Prompt) *genai.GenerateContentConfig {
	temp := prompt.Temperature
	config := &genai.GenerateContentConfig{
		Temperature: &temp,
	}
	if prompt.System != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: prompt.System}},
		}
	}
	return config
}
