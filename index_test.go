package docrag_test

import (
	"testing"

	"github.com/fwojciec/docrag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineSimilarity(t *testing.T) {
	t.Parallel()

	t.Run("identical vectors score one", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, 1.0, docrag.CosineSimilarity([]float32{1, 2, 3}, []float32{1, 2, 3}), 1e-6)
	})

	t.Run("orthogonal vectors score zero", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, 0.0, docrag.CosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-6)
	})

	t.Run("opposite vectors score minus one", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, -1.0, docrag.CosineSimilarity([]float32{1, 1}, []float32{-1, -1}), 1e-6)
	})

	t.Run("ignores magnitude", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, 1.0, docrag.CosineSimilarity([]float32{1, 2}, []float32{10, 20}), 1e-6)
	})

	t.Run("length mismatch scores zero", func(t *testing.T) {
		t.Parallel()
		assert.Zero(t, docrag.CosineSimilarity([]float32{1, 2}, []float32{1, 2, 3}))
	})

	t.Run("zero vector scores zero", func(t *testing.T) {
		t.Parallel()
		assert.Zero(t, docrag.CosineSimilarity([]float32{0, 0}, []float32{1, 2}))
	})

	t.Run("empty vectors score zero", func(t *testing.T) {
		t.Parallel()
		assert.Zero(t, docrag.CosineSimilarity(nil, nil))
	})
}

func TestRankEntries(t *testing.T) {
	t.Parallel()

	entry := func(source string, vec ...float32) docrag.IndexEntry {
		return docrag.IndexEntry{ID: source, Chunk: &docrag.Chunk{Source: source}, Vector: vec}
	}

	entries := []docrag.IndexEntry{
		entry("far", 0, 1),
		entry("near", 1, 0.1),
		entry("exact", 1, 0),
		entry("far-twin", 0, 1),
	}

	t.Run("orders by descending score", func(t *testing.T) {
		t.Parallel()

		results := docrag.RankEntries([]float32{1, 0}, entries, 10)

		require.Len(t, results, 4)
		assert.Equal(t, "exact", results[0].Chunk.Source)
		assert.Equal(t, "near", results[1].Chunk.Source)
		for i := 0; i+1 < len(results); i++ {
			assert.GreaterOrEqual(t, results[i].Score, results[i+1].Score)
		}
	})

	t.Run("keeps insertion order for ties", func(t *testing.T) {
		t.Parallel()

		results := docrag.RankEntries([]float32{1, 0}, entries, 10)

		require.Len(t, results, 4)
		assert.Equal(t, "far", results[2].Chunk.Source)
		assert.Equal(t, "far-twin", results[3].Chunk.Source)
	})

	t.Run("truncates to k", func(t *testing.T) {
		t.Parallel()

		results := docrag.RankEntries([]float32{1, 0}, entries, 2)

		require.Len(t, results, 2)
		assert.Equal(t, "exact", results[0].Chunk.Source)
	})

	t.Run("returns every entry when k exceeds the count", func(t *testing.T) {
		t.Parallel()

		assert.Len(t, docrag.RankEntries([]float32{1, 0}, entries, 100), len(entries))
	})

	t.Run("returns nothing for no entries", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, docrag.RankEntries([]float32{1, 0}, nil, 5))
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		first := docrag.RankEntries([]float32{0.3, 0.7}, entries, 3)
		second := docrag.RankEntries([]float32{0.3, 0.7}, entries, 3)

		assert.Equal(t, first, second)
	})
}
