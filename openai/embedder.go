package openai

import (
	"context"

	"github.com/fwojciec/docrag"
	openai "github.com/sashabaranov/go-openai"
)

var (
	_ docrag.Embedder      = (*Embedder)(nil)
	_ docrag.BatchEmbedder = (*Embedder)(nil)
)

// Embedder implements docrag.Embedder with the embeddings endpoint.
type Embedder struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

// NewEmbedder creates an Embedder. An empty model selects
// DefaultEmbeddingModel.
func NewEmbedder(client *openai.Client, model string) *Embedder {
	m := openai.EmbeddingModel(model)
	if m == "" {
		m = DefaultEmbeddingModel
	}
	return &Embedder{client: client, model: m}
}

// Embed returns the embedding of text.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EmbedBatch embeds texts in one request. Vectors are placed by the index
// the response reports, so they come back in input order.
func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:          texts,
		Model:          e.model,
		EncodingFormat: openai.EmbeddingEncodingFormatFloat,
	})
	if err != nil {
		return nil, parseAPIError("embeddings", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, docrag.Errorf(docrag.EINTERNAL, "embeddings: got %d vectors for %d texts", len(resp.Data), len(texts))
	}

	vecs := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(texts) || vecs[d.Index] != nil {
			return nil, docrag.Errorf(docrag.EINTERNAL, "embeddings: unexpected index %d", d.Index)
		}
		vecs[d.Index] = d.Embedding
	}
	return vecs, nil
}
