package slog_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/docrag"
	"github.com/fwojciec/docrag/mock"
	ragslog "github.com/fwojciec/docrag/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingGenerator_Generate(t *testing.T) {
	t.Parallel()

	t.Run("logs prompt and answer sizes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Generator{
			GenerateFn: func(context.Context, docrag.Prompt) (string, error) {
				return "A Node.", nil
			},
		}
		g := ragslog.NewLoggingGenerator(inner, newLogger(&buf))

		text, err := g.Generate(context.Background(), docrag.Prompt{System: "sys", User: "user"})

		require.NoError(t, err)
		assert.Equal(t, "A Node.", text)
		output := buf.String()
		assert.Contains(t, output, "msg=generate")
		assert.Contains(t, output, "prompt_chars=7")
		assert.Contains(t, output, "answer_chars=7")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Generator{
			GenerateFn: func(context.Context, docrag.Prompt) (string, error) {
				return "", errors.New("model overloaded")
			},
		}
		g := ragslog.NewLoggingGenerator(inner, newLogger(&buf))

		_, err := g.Generate(context.Background(), docrag.Prompt{User: "q"})

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"model overloaded\"")
	})
}
