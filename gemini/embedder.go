package gemini

import (
	"context"

	"github.com/fwojciec/docrag"
	"google.golang.org/genai"
)

var (
	_ docrag.Embedder      = (*Embedder)(nil)
	_ docrag.BatchEmbedder = (*Embedder)(nil)
)

// Embedder implements docrag.Embedder using the Gemini embedding models.
type Embedder struct {
	client *genai.Client
	model  string
}

// NewEmbedder creates a new Embedder. An empty model selects
// DefaultEmbeddingModel.
func NewEmbedder(client *genai.Client, model string) *Embedder {
	if model == "" {
		model = DefaultEmbeddingModel
	}
	return &Embedder{client: client, model: model}
}

// Embed returns the embedding of text.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EmbedBatch embeds texts in one request and returns vectors in input order.
func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	contents := make([]*genai.Content, len(texts))
	for i, t := range texts {
		contents[i] = genai.NewContentFromText(t, genai.RoleUser)
	}

	result, err := e.client.Models.EmbedContent(ctx, e.model, contents, nil)
	if err != nil {
		return nil, docrag.Errorf(docrag.EUNAVAILABLE, "gemini embedding: %v", err)
	}
	if result == nil || len(result.Embeddings) != len(texts) {
		return nil, docrag.Errorf(docrag.EINTERNAL, "gemini returned %d embeddings for %d texts", embeddingCount(result), len(texts))
	}

	vecs := make([][]float32, len(texts))
	for i, emb := range result.Embeddings {
		if emb == nil {
			return nil, docrag.Errorf(docrag.EINTERNAL, "gemini returned no embedding for text %d", i)
		}
		vecs[i] = emb.Values
	}
	return vecs, nil
}

func embeddingCount(r *genai.EmbedContentResponse) int {
	if r == nil {
		return 0
	}
	return len(r.Embeddings)
}
