package mock

import "github.com/fwojciec/docrag"

var _ docrag.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of docrag.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*docrag.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*docrag.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ docrag.Normalizer = (*Normalizer)(nil)

// Normalizer is a mock implementation of docrag.Normalizer.
type Normalizer struct {
	NormalizeFn func(html string) (*docrag.NormalizeResult, error)
}

func (n *Normalizer) Normalize(html string) (*docrag.NormalizeResult, error) {
	return n.NormalizeFn(html)
}
