// Package openai implements embeddings and chat generation on the OpenAI
// API or any OpenAI-compatible endpoint.
package openai

import (
	"encoding/json"
	"errors"

	"github.com/fwojciec/docrag"
	openai "github.com/sashabaranov/go-openai"
)

// Default models.
const (
	DefaultEmbeddingModel = openai.SmallEmbedding3
	DefaultChatModel      = openai.GPT4oMini
)

// NewClient creates an API client. An empty baseURL uses the public OpenAI
// endpoint.
func NewClient(apiKey, baseURL string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(cfg)
}

// parseAPIError turns a client error into an EUNAVAILABLE error carrying the
// most readable message the response offers.
func parseAPIError(op string, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return docrag.Errorf(docrag.EUNAVAILABLE, "%s: API error %d: %s", op, apiErr.HTTPStatusCode, apiErr.Message)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if detail := extractDetail(reqErr.Body); detail != "" {
			return docrag.Errorf(docrag.EUNAVAILABLE, "%s: API error %d: %s", op, reqErr.HTTPStatusCode, detail)
		}
		return docrag.Errorf(docrag.EUNAVAILABLE, "%s: API error %d: %s", op, reqErr.HTTPStatusCode, string(reqErr.Body))
	}

	return docrag.Errorf(docrag.EUNAVAILABLE, "%s: %v", op, err)
}

// extractDetail reads the "detail" field used by some compatible providers.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil {
		return parsed.Detail
	}
	return ""
}
