package gemini_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/fwojciec/docrag"
	"github.com/fwojciec/docrag/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Generate(t *testing.T) {
	t.Parallel()

	t.Run("returns the response text", func(t *testing.T) {
		t.Parallel()

		bodies := make(chan string, 1)
		client := newTestClient(t, fakeGemini(t, "A Node is the base building block.", bodies))
		g := gemini.NewGenerator(client, "")

		text, err := g.Generate(context.Background(), docrag.Prompt{
			System: "You answer questions about Godot.",
			User:   "Question: What is a Node?",
		})

		require.NoError(t, err)
		assert.Equal(t, "A Node is the base building block.", text)
		body := <-bodies
		assert.Contains(t, body, "Question: What is a Node?")
		assert.Contains(t, body, "You answer questions about Godot.")
	})

	t.Run("returns EUNAVAILABLE when the service fails", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"error":{"code":503,"message":"overloaded","status":"UNAVAILABLE"}}`))
		})
		g := gemini.NewGenerator(client, gemini.DefaultChatModel)

		_, err := g.Generate(context.Background(), docrag.Prompt{User: "What is a Node?"})

		require.Error(t, err)
		assert.Equal(t, docrag.EUNAVAILABLE, docrag.ErrorCode(err))
	})

	t.Run("returns EINVALID for an empty prompt", func(t *testing.T) {
		t.Parallel()

		g := gemini.NewGenerator(nil, "")

		_, err := g.Generate(context.Background(), docrag.Prompt{User: "  "})

		require.Error(t, err)
		assert.Equal(t, docrag.EINVALID, docrag.ErrorCode(err))
	})
}

func TestBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("sets system instruction and temperature", func(t *testing.T) {
		t.Parallel()

		config := gemini.BuildConfig(docrag.Prompt{System: "Answer only from context.", Temperature: 0})

		require.NotNil(t, config.SystemInstruction)
		require.Len(t, config.SystemInstruction.Parts, 1)
		assert.Equal(t, "Answer only from context.", config.SystemInstruction.Parts[0].Text)
		require.NotNil(t, config.Temperature)
		assert.Zero(t, *config.Temperature)
	})

	t.Run("omits an empty system instruction", func(t *testing.T) {
		t.Parallel()

		config := gemini.BuildConfig(docrag.Prompt{User: "q"})

		assert.Nil(t, config.SystemInstruction)
	})
}
