package gemini

import (
	"context"

	"google.golang.org/genai"
)

// NewClient creates a Gemini API client. An empty baseURL uses the public
// endpoint.
func NewClient(ctx context.Context, apiKey, baseURL string) (*genai.Client, error) {
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})
}
