// Package dataset implements the dependency crawl and CSV assembly: it
// walks a package's transitive dependency closure on npms.io, flattens each
// analysis document into a fixed-schema row, and writes the deduplicated
// rows as one delimited table.
package dataset

import (
	"errors"
	"fmt"

	"github.com/danielhocevar/DissectingNPM/pkg/npms"
)

// Headers is the fixed column order of the output table. Every row written
// by this package follows it exactly.
var Headers = []string{
	"name",
	"version",
	"description",
	"keywords",
	"dependencies",
	"devDependencies",
	"communityInterest",
	"downloadsCount",
	"downloadsAcceleration",
	"dependentsCount",
	"quality",
	"popularity",
	"maintenance",
	"maintainers",
}

// ErrIncomplete is returned when a document lacks a required field. Only
// maintainers are optional; an analysis without a name or version cannot
// produce a usable row and aborts the run.
var ErrIncomplete = errors.New("incomplete package document")

// Row is one package flattened to the Headers schema. Maintainers holds
// usernames until the assembler re-encodes them as dataset-wide integer
// codes at write time.
type Row struct {
	Name                  string
	Version               string
	Description           string
	Keywords              []string
	Dependencies          []string
	DevDependencies       []string
	CommunityInterest     float64
	DownloadsCount        float64
	DownloadsAcceleration float64
	DependentsCount       int
	Quality               float64
	Popularity            float64
	Maintenance           float64
	Maintainers           []string
}

// Flatten extracts the fixed field set from doc. Dependency maps become
// sorted name lists; a missing maintainers field becomes an empty list.
func Flatten(doc *npms.Document) (Row, error) {
	md := doc.Collected.Metadata
	if md.Name == "" {
		return Row{}, fmt.Errorf("%w: collected.metadata.name", ErrIncomplete)
	}
	if md.Version == "" {
		return Row{}, fmt.Errorf("%w: collected.metadata.version for %s", ErrIncomplete, md.Name)
	}

	pop := doc.Evaluation.Popularity
	score := doc.Score.Detail
	return Row{
		Name:                  md.Name,
		Version:               md.Version,
		Description:           md.Description,
		Keywords:              md.Keywords,
		Dependencies:          md.DependencyNames(),
		DevDependencies:       md.DevDependencyNames(),
		CommunityInterest:     pop.CommunityInterest,
		DownloadsCount:        pop.DownloadsCount,
		DownloadsAcceleration: pop.DownloadsAcceleration,
		DependentsCount:       pop.DependentsCount,
		Quality:               score.Quality,
		Popularity:            score.Popularity,
		Maintenance:           score.Maintenance,
		Maintainers:           md.MaintainerUsernames(),
	}, nil
}
