package openai

import (
	"context"
	"math"
	"strings"

	"github.com/fwojciec/docrag"
	openai "github.com/sashabaranov/go-openai"
)

var _ docrag.Generator = (*Generator)(nil)

// Generator implements docrag.Generator with chat completions.
type Generator struct {
	client *openai.Client
	model  string
}

// NewGenerator creates a Generator. An empty model selects DefaultChatModel.
func NewGenerator(client *openai.Client, model string) *Generator {
	if model == "" {
		model = DefaultChatModel
	}
	return &Generator{client: client, model: model}
}

// Generate sends the prompt as a system and a user message and returns the
// first choice's content.
func (g *Generator) Generate(ctx context.Context, prompt docrag.Prompt) (string, error) {
	if strings.TrimSpace(prompt.User) == "" {
		return "", docrag.Errorf(docrag.EINVALID, "prompt required")
	}

	resp, err := g.client.CreateChatCompletion(ctx, BuildRequest(g.model, prompt))
	if err != nil {
		return "", parseAPIError("chat completion", err)
	}
	if len(resp.Choices) == 0 {
		return "", docrag.Errorf(docrag.EUNAVAILABLE, "chat completion: no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

// BuildRequest returns the chat completion request for a prompt.
func BuildRequest(model string, prompt docrag.Prompt) openai.ChatCompletionRequest {
	var messages []openai.ChatCompletionMessage
	if prompt.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: prompt.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt.User,
	})

	// A zero temperature is dropped from the request body, so the smallest
	// positive value stands in for it.
	temp := prompt.Temperature
	if temp == 0 {
		temp = math.SmallestNonzeroFloat32
	}

	return openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: temp,
	}
}
