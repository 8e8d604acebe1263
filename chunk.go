package docrag

import (
	"sort"
	"strings"
	"unicode"
)

// Chunking defaults.
const (
	DefaultChunkSize    = 1200
	DefaultChunkOverlap = 200

	// DedupPrefixLen is the number of leading runes of a chunk's content
	// that take part in its dedup key.
	DedupPrefixLen = 200
)

// Chunk is a bounded-length slice of a unit's content prepared for
// embedding and retrieval.
type Chunk struct {
	Source   string       `json:"source"`
	Content  string       `json:"content"`
	Metadata UnitMetadata `json:"metadata"`
	DedupKey string       `json:"dedupKey"`

	// Position is the chunk's index among the chunks of its unit.
	Position int `json:"position"`

	// Start and End are rune offsets of the span the chunk was cut from.
	// Content is that span with surrounding whitespace trimmed.
	Start int `json:"start"`
	End   int `json:"end"`
}

// SplitOptions configures SplitUnits.
type SplitOptions struct {
	// MaxChunkSize is the maximum chunk length in runes.
	MaxChunkSize int

	// Overlap is the number of runes shared by consecutive chunks of a unit.
	Overlap int
}

// DefaultSplitOptions returns the default chunk size and overlap.
func DefaultSplitOptions() SplitOptions {
	return SplitOptions{
		MaxChunkSize: DefaultChunkSize,
		Overlap:      DefaultChunkOverlap,
	}
}

// Validate returns an error if the options cannot produce progress.
func (o SplitOptions) Validate() error {
	if o.MaxChunkSize <= 0 {
		return Errorf(EINVALID, "max chunk size must be positive")
	}
	if o.Overlap < 0 {
		return Errorf(EINVALID, "chunk overlap must not be negative")
	}
	if o.Overlap >= o.MaxChunkSize {
		return Errorf(EINVALID, "chunk overlap (%d) must be smaller than max chunk size (%d)", o.Overlap, o.MaxChunkSize)
	}
	return nil
}

// SplitUnits splits every unit into overlapping chunks.
//
// Units are processed in Position order and chunks are emitted in document
// order, so the output order is deterministic regardless of the order in
// which units were fetched.
func SplitUnits(units []*TextUnit, opts SplitOptions) ([]*Chunk, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	ordered := make([]*TextUnit, len(units))
	copy(ordered, units)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Position < ordered[j].Position
	})

	var chunks []*Chunk
	for _, unit := range ordered {
		chunks = append(chunks, splitUnit(unit, opts)...)
	}
	return chunks, nil
}

func splitUnit(unit *TextUnit, opts SplitOptions) []*Chunk {
	var chunks []*Chunk
	runes := []rune(unit.Content)
	for _, span := range splitSpans(runes, opts) {
		content := strings.TrimSpace(string(runes[span.start:span.end]))
		if content == "" {
			continue
		}
		chunks = append(chunks, &Chunk{
			Source:   unit.Source,
			Content:  content,
			Metadata: unit.Metadata,
			DedupKey: DedupKey(unit.Source, content),
			Position: len(chunks),
			Start:    span.start,
			End:      span.end,
		})
	}
	return chunks
}

type span struct {
	start, end int
}

// splitSpans cuts text into spans of at most MaxChunkSize runes where each
// span after the first starts Overlap runes before the end of the previous.
func splitSpans(text []rune, opts SplitOptions) []span {
	n := len(text)
	if n == 0 {
		return nil
	}

	var spans []span
	start := 0
	for {
		end := start + opts.MaxChunkSize
		if end >= n {
			spans = append(spans, span{start, n})
			return spans
		}

		// The cut may move back by at most a quarter chunk, and never so far
		// that the next span would fail to advance past this one's start.
		lowest := max(end-opts.MaxChunkSize/4, start+opts.Overlap+1)
		end = snapBoundary(text, lowest, end)
		spans = append(spans, span{start, end})

		start = end - opts.Overlap
	}
}

// snapBoundary returns the best cut position in (lowest, end]: after a
// paragraph break, then after a sentence end, then after whitespace.
// It returns end when no boundary exists in the window.
func snapBoundary(text []rune, lowest, end int) int {
	if lowest >= end {
		return end
	}

	for i := end; i > lowest; i-- {
		if i >= 2 && text[i-1] == '\n' && text[i-2] == '\n' {
			return i
		}
	}
	for i := end; i > lowest; i-- {
		if i >= 2 && unicode.IsSpace(text[i-1]) && isSentenceEnd(text[i-2]) {
			return i
		}
	}
	for i := end; i > lowest; i-- {
		if unicode.IsSpace(text[i-1]) {
			return i
		}
	}
	return end
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// DedupKey returns the key under which chunks are considered duplicates:
// the source URL and the first DedupPrefixLen runes of the content.
//
// Two chunks of the same source sharing a prefix collapse into one even if
// their tails differ. Repeated boilerplate sections are the target.
func DedupKey(source, content string) string {
	prefix := content
	if runes := []rune(content); len(runes) > DedupPrefixLen {
		prefix = string(runes[:DedupPrefixLen])
	}
	return source + "|" + prefix
}

// DedupeChunks removes chunks whose dedup key was already seen.
// The first occurrence wins and the relative order of survivors is kept.
func DedupeChunks(chunks []*Chunk) []*Chunk {
	seen := make(map[string]struct{}, len(chunks))
	unique := make([]*Chunk, 0, len(chunks))
	for _, c := range chunks {
		key := c.DedupKey
		if key == "" {
			key = DedupKey(c.Source, c.Content)
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, c)
	}
	return unique
}
