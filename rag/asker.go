package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/docrag"
)

// DefaultProduct names the documented product in the system prompt.
const DefaultProduct = "Godot"

var _ docrag.Asker = (*Asker)(nil)

// Asker answers questions from an index. It holds no per-question state and
// is safe for concurrent use.
type Asker struct {
	Index     docrag.Index
	Generator docrag.Generator

	// K is the number of chunks retrieved. Defaults to docrag.DefaultTopK.
	K int

	// MaxCitations caps distinct cited sources. Defaults to
	// docrag.DefaultMaxCitations.
	MaxCitations int

	// Product is named in the system prompt. Defaults to DefaultProduct.
	Product string
}

// Ask retrieves the chunks most similar to question, asks the generator to
// answer from them, and appends the cited sources. When nothing is retrieved
// the generator is not called and the answer is docrag.DontKnowAnswer.
func (a *Asker) Ask(ctx context.Context, question string) (*docrag.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, docrag.Errorf(docrag.EINVALID, "question required")
	}

	k := a.K
	if k <= 0 {
		k = docrag.DefaultTopK
	}
	maxCitations := a.MaxCitations
	if maxCitations <= 0 {
		maxCitations = docrag.DefaultMaxCitations
	}

	results, err := a.Index.Search(ctx, question, k)
	if err != nil {
		return nil, fmt.Errorf("retrieve: %w", err)
	}

	answer := &docrag.Answer{Question: question, Results: results}
	if len(results) == 0 {
		answer.Text = docrag.DontKnowAnswer
		return answer, nil
	}

	answer.Citations = docrag.Citations(results, maxCitations)
	answer.Context = docrag.FormatContext(results, answer.Citations)

	text, err := a.Generator.Generate(ctx, docrag.Prompt{
		System:      SystemPrompt(a.product()),
		User:        UserPrompt(question, answer.Context),
		Temperature: 0,
	})
	if err != nil {
		if docrag.ErrorCode(err) == docrag.EINTERNAL {
			return nil, docrag.Errorf(docrag.EUNAVAILABLE, "generate answer: %v", err)
		}
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	answer.Text = docrag.FormatAnswer(text, answer.Citations)
	return answer, nil
}

func (a *Asker) product() string {
	if a.Product == "" {
		return DefaultProduct
	}
	return a.Product
}

// SystemPrompt returns the instruction that keeps answers grounded.
func SystemPrompt(product string) string {
	return fmt.Sprintf(`You are a concise %s documentation assistant.
Answer ONLY from the provided context. If unsure, say "I don't know".
Do not invent sources; the cited URLs are added after your answer.`, product)
}

// UserPrompt returns the user message carrying the question and context.
func UserPrompt(question, context string) string {
	return "Question: " + question + "\n\nContext:\n" + context
}
