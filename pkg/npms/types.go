package npms

import (
	"maps"
	"slices"
)

// Document is the subset of an npms.io package analysis that the dataset
// consumes. Fields outside these paths are ignored on decode.
type Document struct {
	Collected  Collected  `json:"collected"`
	Evaluation Evaluation `json:"evaluation"`
	Score      Score      `json:"score"`
}

// Collected groups the data npms gathered from the package itself.
type Collected struct {
	Metadata Metadata `json:"metadata"`
}

// Metadata mirrors collected.metadata: the package manifest as analyzed.
type Metadata struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Description     string            `json:"description"`
	Keywords        []string          `json:"keywords"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
	Maintainers     []Maintainer      `json:"maintainers"`
}

// Maintainer is one entry of collected.metadata.maintainers.
type Maintainer struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Evaluation mirrors evaluation: npms' raw metric aggregates.
type Evaluation struct {
	Popularity Popularity `json:"popularity"`
}

// Popularity mirrors evaluation.popularity.
type Popularity struct {
	CommunityInterest     float64 `json:"communityInterest"`
	DownloadsCount        float64 `json:"downloadsCount"`
	DownloadsAcceleration float64 `json:"downloadsAcceleration"`
	DependentsCount       int     `json:"dependentsCount"`
}

// Score mirrors score: the final 0..1 indicators npms derives.
type Score struct {
	Detail ScoreDetail `json:"detail"`
}

// ScoreDetail mirrors score.detail.
type ScoreDetail struct {
	Quality     float64 `json:"quality"`
	Popularity  float64 `json:"popularity"`
	Maintenance float64 `json:"maintenance"`
}

// DependencyNames returns the runtime dependency names in sorted order.
// The registry serves dependencies as a name-to-range map; the crawl only
// needs the names, and sorting keeps traversal order deterministic.
func (m Metadata) DependencyNames() []string {
	return slices.Sorted(maps.Keys(m.Dependencies))
}

// DevDependencyNames returns the dev dependency names in sorted order.
func (m Metadata) DevDependencyNames() []string {
	return slices.Sorted(maps.Keys(m.DevDependencies))
}

// MaintainerUsernames returns the maintainer usernames in list order, or an
// empty slice when the maintainers field is absent.
func (m Metadata) MaintainerUsernames() []string {
	names := make([]string, 0, len(m.Maintainers))
	for _, mt := range m.Maintainers {
		names = append(names, mt.Username)
	}
	return names
}

// SearchResult is one page of /v2/search results.
type SearchResult struct {
	Total   int           `json:"total"`
	Results []SearchEntry `json:"results"`
}

// SearchEntry is a single search hit.
type SearchEntry struct {
	Package SearchPackage `json:"package"`
}

// SearchPackage is the package summary inside a search hit.
type SearchPackage struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
}
