// Package seeds builds seed lists for the crawler by paging the npms.io
// search API: one single-letter query per letter, a fixed number of result
// pages each, all hits merged into one deduplicated name list.
package seeds

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/danielhocevar/DissectingNPM/pkg/npms"
)

// Searcher is the slice of the npms client the generator needs.
type Searcher interface {
	Search(ctx context.Context, query string, from, size int) (*npms.SearchResult, error)
}

// Options controls how much of the registry the generator samples.
type Options struct {
	Letters  string // one query per rune, default "a".."z"
	Pages    int    // result pages per letter
	PageSize int    // hits per page (npms caps this at 250)
}

// WithDefaults fills zero values with the defaults used for the published
// dataset: every letter, 10 pages of 250.
func (o Options) WithDefaults() Options {
	if o.Letters == "" {
		o.Letters = "abcdefghijklmnopqrstuvwxyz"
	}
	if o.Pages <= 0 {
		o.Pages = 10
	}
	if o.PageSize <= 0 {
		o.PageSize = 250
	}
	return o
}

// Collect gathers package names from search pages and returns them sorted
// and deduplicated. Short result pages end a letter early; a search failure
// aborts, since a partial seed list silently skews the dataset.
func Collect(ctx context.Context, s Searcher, opts Options, logf func(string, ...any)) ([]string, error) {
	opts = opts.WithDefaults()
	if logf == nil {
		logf = func(string, ...any) {}
	}

	seen := make(map[string]bool)
	for _, letter := range opts.Letters {
		query := fmt.Sprintf("%c boost-exact:false", letter)
		logf("searching %q", query)

		for page := range opts.Pages {
			res, err := s.Search(ctx, query, page*opts.PageSize, opts.PageSize)
			if err != nil {
				return nil, fmt.Errorf("search %q page %d: %w", query, page, err)
			}
			for _, hit := range res.Results {
				seen[hit.Package.Name] = true
			}
			if len(res.Results) < opts.PageSize {
				break
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// WriteList writes names to path, one per line.
func WriteList(path string, names []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	for _, name := range names {
		if _, err := fmt.Fprintln(f, name); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return f.Close()
}
