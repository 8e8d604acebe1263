package crawl_test

import (
	"testing"

	"github.com/fwojciec/docrag/crawl"
	"github.com/stretchr/testify/assert"
)

func TestTruncateURL(t *testing.T) {
	t.Parallel()

	const long = "https://docs.godotengine.org/en/stable/classes/class_node.html"

	tests := []struct {
		name   string
		url    string
		maxLen int
		want   string
	}{
		{"short url unchanged", "https://x.org", 50, "https://x.org"},
		{"exact length unchanged", "https://x.org", 13, "https://x.org"},
		{"keeps the tail", long, 20, "...s/class_node.html"},
		{"zero length", long, 0, ""},
		{"negative length", long, -1, ""},
		{"too short for ellipsis", long, 3, "htt"},
		{"short url with small max", "ab", 3, "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := crawl.TruncateURL(tt.url, tt.maxLen)
			assert.Equal(t, tt.want, got)
			if tt.maxLen > 0 {
				assert.LessOrEqual(t, len(got), tt.maxLen)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "512 B", crawl.FormatBytes(512))
	assert.Equal(t, "1.5 KB", crawl.FormatBytes(1536))
	assert.Equal(t, "2.0 MB", crawl.FormatBytes(2*1024*1024))
}

func TestFormatTokens(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "~500 tokens", crawl.FormatTokens(500))
	assert.Equal(t, "~10k tokens", crawl.FormatTokens(10000))
	assert.Equal(t, "~2k tokens", crawl.FormatTokens(1500))
}

func TestComputeHash(t *testing.T) {
	t.Parallel()

	t.Run("is stable for the same content", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, crawl.ComputeHash("Nodes and scenes"), crawl.ComputeHash("Nodes and scenes"))
	})

	t.Run("differs for different content", func(t *testing.T) {
		t.Parallel()
		assert.NotEqual(t, crawl.ComputeHash("content a"), crawl.ComputeHash("content b"))
	})

	t.Run("is lowercase hex", func(t *testing.T) {
		t.Parallel()
		assert.Regexp(t, `^[0-9a-f]+$`, crawl.ComputeHash("test"))
	})
}
