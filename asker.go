package docrag

import (
	"context"
	"strings"
)

// DefaultMaxCitations caps the number of distinct sources cited per answer.
const DefaultMaxCitations = 8

// DontKnowAnswer is returned when no documentation matches a question.
const DontKnowAnswer = "I don't know."

// ContextDelimiter separates chunk contents in the assembled context.
const ContextDelimiter = "\n---\n"

// Answer is a question together with the context it was answered from.
type Answer struct {
	Question string `json:"question"`

	// Context is the grounding text handed to the generation service.
	Context string `json:"context"`

	// Text is the generated answer followed by its citations section.
	Text string `json:"text"`

	Citations []string       `json:"citations"`
	Results   []SearchResult `json:"results"`
}

// Asker answers natural language questions about the indexed documentation.
type Asker interface {
	// Ask retrieves documentation relevant to question and returns a
	// grounded answer. Returns EINVALID for an empty question.
	Ask(ctx context.Context, question string) (*Answer, error)
}

// Citations returns the distinct sources of results in first-seen order,
// capped at limit. A limit of zero or less means no cap.
func Citations(results []SearchResult, limit int) []string {
	seen := make(map[string]struct{})
	var sources []string
	for _, r := range results {
		if r.Chunk == nil || r.Chunk.Source == "" {
			continue
		}
		if _, ok := seen[r.Chunk.Source]; ok {
			continue
		}
		if limit > 0 && len(sources) >= limit {
			break
		}
		seen[r.Chunk.Source] = struct{}{}
		sources = append(sources, r.Chunk.Source)
	}
	return sources
}

// FormatContext joins the content of results with ContextDelimiter and
// appends a "Sources:" block listing citations.
// No results produce an empty context.
func FormatContext(results []SearchResult, citations []string) string {
	if len(results) == 0 {
		return ""
	}

	parts := make([]string, 0, len(results))
	for _, r := range results {
		parts = append(parts, r.Chunk.Content)
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(parts, ContextDelimiter))
	if len(citations) > 0 {
		sb.WriteString("\n\nSources:\n")
		sb.WriteString(strings.Join(citations, "\n"))
	}
	return sb.String()
}

// FormatAnswer appends a citations section to a generated answer.
// The answer is returned unchanged (apart from trimming) when there is
// nothing to cite.
func FormatAnswer(text string, citations []string) string {
	text = strings.TrimSpace(text)
	if len(citations) == 0 {
		return text
	}

	var sb strings.Builder
	sb.WriteString(text)
	sb.WriteString("\n\nSources:")
	for _, c := range citations {
		sb.WriteString("\n- ")
		sb.WriteString(c)
	}
	return sb.String()
}
