// Package graph loads an assembled dataset back into memory as a package
// relationship graph: directed dependency edges between packages present in
// the dataset, plus keyword and shared-maintainer relationships.
package graph

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"

	"github.com/danielhocevar/DissectingNPM/internal/dataset"
)

// Vertex is one package in the graph. Maintainers holds the dataset-wide
// integer codes the assembler wrote, which is enough to test identity
// without knowing the usernames.
type Vertex struct {
	Row         dataset.Row
	Maintainers []int

	upstream   map[string]*Vertex // packages this one depends on
	downstream map[string]*Vertex // packages depending on this one
}

// Name returns the package name.
func (v *Vertex) Name() string { return v.Row.Name }

// Graph is the in-memory package relationship graph.
type Graph struct {
	vertices map[string]*Vertex
	keywords map[string][]*Vertex
	edges    int
}

// Load reads an assembled CSV file and builds the graph.
func Load(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read builds the graph from CSV data. The header must match the
// assembler's column order.
func Read(r io.Reader) (*Graph, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if !slices.Equal(header, dataset.Headers) {
		return nil, fmt.Errorf("unexpected header %v", header)
	}

	g := &Graph{
		vertices: make(map[string]*Vertex),
		keywords: make(map[string][]*Vertex),
	}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		v, err := parseVertex(record)
		if err != nil {
			return nil, err
		}
		g.vertices[v.Name()] = v
	}

	g.connectDependencies()
	g.indexKeywords()
	return g, nil
}

// VertexCount returns the number of packages in the graph.
func (g *Graph) VertexCount() int { return len(g.vertices) }

// EdgeCount returns the number of dependency edges between in-dataset
// packages.
func (g *Graph) EdgeCount() int { return g.edges }

// Vertex looks up a package by name.
func (g *Graph) Vertex(name string) (*Vertex, bool) {
	v, ok := g.vertices[name]
	return v, ok
}

// Names returns all package names in sorted order.
func (g *Graph) Names() []string {
	return slices.Sorted(maps.Keys(g.vertices))
}

// TransitiveDependencies counts the upstream dependency closure of name:
// dependencies, dependencies of dependencies, and so on, each package
// counted once. Only packages present in the dataset are counted, since
// those are the only edges the graph knows about.
func (g *Graph) TransitiveDependencies(name string) (int, error) {
	root, ok := g.vertices[name]
	if !ok {
		return 0, fmt.Errorf("package %s not in dataset", name)
	}
	visited := map[*Vertex]bool{root: true}
	return countUpstream(root, visited), nil
}

func countUpstream(v *Vertex, visited map[*Vertex]bool) int {
	total := 0
	for _, dep := range v.upstream {
		if visited[dep] {
			continue
		}
		visited[dep] = true
		total += 1 + countUpstream(dep, visited)
	}
	return total
}

// Dependents returns the names of in-dataset packages that depend on name,
// sorted.
func (g *Graph) Dependents(name string) []string {
	v, ok := g.vertices[name]
	if !ok {
		return nil
	}
	return slices.Sorted(maps.Keys(v.downstream))
}

// SharedKeyword returns the names of packages sharing at least one keyword
// with name, sorted, excluding name itself.
func (g *Graph) SharedKeyword(name string) []string {
	v, ok := g.vertices[name]
	if !ok {
		return nil
	}
	related := make(map[string]bool)
	for _, kw := range v.Row.Keywords {
		for _, other := range g.keywords[kw] {
			if other != v {
				related[other.Name()] = true
			}
		}
	}
	return slices.Sorted(maps.Keys(related))
}

// SharedMaintainer returns the names of packages sharing at least one
// maintainer code with name, sorted, excluding name itself.
func (g *Graph) SharedMaintainer(name string) []string {
	v, ok := g.vertices[name]
	if !ok {
		return nil
	}
	mine := make(map[int]bool, len(v.Maintainers))
	for _, code := range v.Maintainers {
		mine[code] = true
	}

	related := make(map[string]bool)
	for _, other := range g.vertices {
		if other == v {
			continue
		}
		for _, code := range other.Maintainers {
			if mine[code] {
				related[other.Name()] = true
				break
			}
		}
	}
	return slices.Sorted(maps.Keys(related))
}

// connectDependencies adds an edge for every dependency listed in a row
// whose target is also in the dataset.
func (g *Graph) connectDependencies() {
	for _, v := range g.vertices {
		for _, dep := range v.Row.Dependencies {
			up, ok := g.vertices[dep]
			if !ok || up == v {
				continue
			}
			v.upstream[dep] = up
			up.downstream[v.Name()] = v
			g.edges++
		}
	}
}

func (g *Graph) indexKeywords() {
	for _, v := range g.vertices {
		for _, kw := range v.Row.Keywords {
			g.keywords[kw] = append(g.keywords[kw], v)
		}
	}
}

func parseVertex(record []string) (*Vertex, error) {
	if len(record) != len(dataset.Headers) {
		return nil, fmt.Errorf("row has %d fields, want %d", len(record), len(dataset.Headers))
	}

	var row dataset.Row
	row.Name = record[0]
	row.Version = record[1]
	row.Description = record[2]

	if err := json.Unmarshal([]byte(record[3]), &row.Keywords); err != nil {
		return nil, fmt.Errorf("row %s: keywords: %w", row.Name, err)
	}
	if err := json.Unmarshal([]byte(record[4]), &row.Dependencies); err != nil {
		return nil, fmt.Errorf("row %s: dependencies: %w", row.Name, err)
	}
	if err := json.Unmarshal([]byte(record[5]), &row.DevDependencies); err != nil {
		return nil, fmt.Errorf("row %s: devDependencies: %w", row.Name, err)
	}

	floats := map[int]*float64{
		6:  &row.CommunityInterest,
		7:  &row.DownloadsCount,
		8:  &row.DownloadsAcceleration,
		10: &row.Quality,
		11: &row.Popularity,
		12: &row.Maintenance,
	}
	for i, dst := range floats {
		v, err := strconv.ParseFloat(record[i], 64)
		if err != nil {
			return nil, fmt.Errorf("row %s: %s: %w", row.Name, dataset.Headers[i], err)
		}
		*dst = v
	}
	dependents, err := strconv.Atoi(record[9])
	if err != nil {
		return nil, fmt.Errorf("row %s: dependentsCount: %w", row.Name, err)
	}
	row.DependentsCount = dependents

	var codes []int
	if err := json.Unmarshal([]byte(record[13]), &codes); err != nil {
		return nil, fmt.Errorf("row %s: maintainers: %w", row.Name, err)
	}

	return &Vertex{
		Row:         row,
		Maintainers: codes,
		upstream:    make(map[string]*Vertex),
		downstream:  make(map[string]*Vertex),
	}, nil
}
