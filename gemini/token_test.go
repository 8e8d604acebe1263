package gemini_test

import (
	"context"
	"testing"

	"github.com/fwojciec/docrag/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCounter_CountTokens(t *testing.T) {
	t.Parallel()

	tc, err := gemini.NewTokenCounter(gemini.DefaultTokenizerModel)
	require.NoError(t, err)

	t.Run("counts tokens in text", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), "Nodes are the building blocks of a Godot scene.")

		require.NoError(t, err)
		assert.Positive(t, count)
	})

	t.Run("empty string returns zero", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), "")

		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("grows with the text", func(t *testing.T) {
		t.Parallel()

		one, err := tc.CountTokens(context.Background(), "signal")
		require.NoError(t, err)
		many, err := tc.CountTokens(context.Background(), "Connect the pressed signal of a Button node to a method on the parent scene.")
		require.NoError(t, err)

		assert.Greater(t, many, one)
	})
}
