package dataset

import (
	"context"
	"errors"
	"fmt"

	"github.com/danielhocevar/DissectingNPM/pkg/npms"
)

// Fetcher retrieves one package analysis document by name.
type Fetcher interface {
	FetchPackage(ctx context.Context, name string) (*npms.Document, error)
}

// Crawler walks the dependency graph depth-first, one blocking fetch at a
// time. The registry pacing lives in the npms client, so the crawl itself
// has no sleeps.
type Crawler struct {
	fetch Fetcher
	logf  func(string, ...any)
}

// NewCrawler creates a Crawler. logf receives fetch-failure notices and may
// be nil.
func NewCrawler(fetch Fetcher, logf func(string, ...any)) *Crawler {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Crawler{fetch: fetch, logf: logf}
}

// Crawl fetches name, flattens it, and recurses into its dependencies,
// returning the package's row followed by the rows of its unvisited
// transitive dependencies (pre-order).
//
// A failed fetch contributes no rows and no error: the failure is logged
// and the package's subtree is skipped. Names are added to visited only
// after their own fetch succeeds, so a dependency whose fetch failed can be
// attempted again from a later branch. visited is shared by reference
// across the whole run; the check against it happens per dependency edge,
// which is what breaks cycles.
//
// Context cancellation and incomplete documents abort the crawl.
func (c *Crawler) Crawl(ctx context.Context, name string, visited map[string]bool) ([]Row, error) {
	doc, err := c.fetch.FetchPackage(ctx, name)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		c.logf("fetch failed: %v", err)
		return nil, nil
	}

	row, err := Flatten(doc)
	if err != nil {
		return nil, fmt.Errorf("flatten %s: %w", name, err)
	}

	rows := []Row{row}
	visited[name] = true

	for _, dep := range row.Dependencies {
		if visited[dep] {
			continue
		}
		sub, err := c.Crawl(ctx, dep, visited)
		if err != nil {
			return nil, err
		}
		rows = append(rows, sub...)
	}
	return rows, nil
}
