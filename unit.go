package docrag

import (
	"context"
	"sort"
)

// Default provenance for units fetched from the Godot documentation.
const (
	DefaultSite    = "godot-docs"
	DefaultVersion = "stable"
	DefaultKind    = "docs"
)

// TextUnit is one fetched documentation page reduced to plain text.
type TextUnit struct {
	Source      string       `json:"source"`
	Title       string       `json:"title,omitempty"`
	Content     string       `json:"content"`
	ContentHash string       `json:"contentHash,omitempty"`
	Position    int          `json:"position"` // Discovery order of Source
	Metadata    UnitMetadata `json:"metadata"`
}

// UnitMetadata describes where a unit came from. Chunks inherit it.
type UnitMetadata struct {
	Site    string `json:"site,omitempty"`
	Version string `json:"version,omitempty"`
	Kind    string `json:"kind,omitempty"`
}

// Validate returns an error if the unit contains invalid fields.
func (u *TextUnit) Validate() error {
	if u.Source == "" {
		return Errorf(EINVALID, "unit source required")
	}
	if u.Content == "" {
		return Errorf(EINVALID, "unit content required")
	}
	return nil
}

// DedupeUnits returns units in Position order without those whose
// ContentHash matches an earlier unit's. Alias and redirect URLs serving the
// same page collapse into the first discovered one. Units without a hash
// are always kept.
func DedupeUnits(units []*TextUnit) []*TextUnit {
	ordered := make([]*TextUnit, len(units))
	copy(ordered, units)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Position < ordered[j].Position
	})

	seen := make(map[string]struct{}, len(ordered))
	unique := ordered[:0]
	for _, u := range ordered {
		if u.ContentHash != "" {
			if _, ok := seen[u.ContentHash]; ok {
				continue
			}
			seen[u.ContentHash] = struct{}{}
		}
		unique = append(unique, u)
	}
	return unique
}

// FetchProgress reports progress during page fetching.
type FetchProgress struct {
	URL       string
	Completed int
	Total     int
	Error     error
}

// FetchProgressFunc is called as pages are processed.
type FetchProgressFunc func(FetchProgress)

// URLSource discovers candidate documentation URLs for a site.
// Implementations hide the complexity of sitemap vs link-walk discovery.
type URLSource interface {
	Discover(ctx context.Context, sourceURL string) ([]string, error)
}

// UnitFetcher retrieves pages and normalizes them into text units.
//
// A failure for a single URL never fails the batch: it is reported through
// progress and the URL produces no unit. Only context cancellation is
// returned as an error.
type UnitFetcher interface {
	FetchUnits(ctx context.Context, urls []string, progress FetchProgressFunc) ([]*TextUnit, error)
}
