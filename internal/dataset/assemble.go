package dataset

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

// DefaultMaxSeeds is how many seed lines an assembly processes unless told
// otherwise.
const DefaultMaxSeeds = 10

// Stats summarizes one assembly run.
type Stats struct {
	Seeds       int // seed lines processed
	Rows        int // rows written
	Maintainers int // distinct maintainers coded
}

// Assembler runs the full pipeline: seeds in, crawled rows out, maintainer
// codes applied, one CSV written.
type Assembler struct {
	crawler *Crawler
	logf    func(string, ...any)
}

// NewAssembler creates an Assembler crawling through fetch. logf receives
// progress and fetch-failure notices and may be nil.
func NewAssembler(fetch Fetcher, logf func(string, ...any)) *Assembler {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Assembler{crawler: NewCrawler(fetch, logf), logf: logf}
}

// Assemble reads up to maxSeeds package names from seedPath, crawls each
// seed's dependency closure with one shared visited set, and writes the
// merged table to outputPath prefixed with "./". The visited set is never
// reset between seeds, so a package fetched under one seed is not fetched
// again under another — but seeds themselves are always crawled, even when
// an earlier closure already visited them.
//
// The output file is produced only on full success; any aborting error
// (unreadable seed file, incomplete document, cancellation) leaves no file
// behind.
func (a *Assembler) Assemble(ctx context.Context, seedPath string, maxSeeds int, outputPath string) (Stats, error) {
	if maxSeeds <= 0 {
		maxSeeds = DefaultMaxSeeds
	}

	seeds, err := readSeeds(seedPath, maxSeeds)
	if err != nil {
		return Stats{}, err
	}

	visited := make(map[string]bool)
	var rows []Row
	for i, seed := range seeds {
		a.logf("crawling seed %d/%d: %s", i+1, len(seeds), seed)
		crawled, err := a.crawler.Crawl(ctx, seed, visited)
		if err != nil {
			return Stats{}, err
		}
		rows = append(rows, crawled...)
		a.logf("seed %s contributed %d rows (%d total)", seed, len(crawled), len(rows))
	}

	table := BuildMaintainerCodes(rows)
	if err := WriteFile("./"+outputPath, rows, table); err != nil {
		return Stats{}, err
	}
	return Stats{Seeds: len(seeds), Rows: len(rows), Maintainers: table.Len()}, nil
}

// readSeeds returns the first limit non-empty lines of the seed file,
// trailing newlines stripped.
func readSeeds(path string, limit int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	var seeds []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() && len(seeds) < limit {
		if line := scanner.Text(); line != "" {
			seeds = append(seeds, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return seeds, nil
}
