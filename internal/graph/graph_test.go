package graph

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/danielhocevar/DissectingNPM/internal/dataset"
)

// sampleCSV mirrors the assembler's output: express -> body-parser -> bytes,
// with lodash standing alone. Maintainer code 0 is shared by express and
// lodash; keyword "http" is shared by express and body-parser.
const sampleCSV = `name,version,description,keywords,dependencies,devDependencies,communityInterest,downloadsCount,downloadsAcceleration,dependentsCount,quality,popularity,maintenance,maintainers
express,4.17.1,web framework,"[""http"",""server""]","[""body-parser"",""left-pad""]",[],100,5000,1.5,900,0.9,0.95,0.8,"[0,1]"
body-parser,1.19.0,parse bodies,"[""http""]","[""bytes""]",[],50,2000,0.5,400,0.85,0.8,0.7,[2]
bytes,3.1.0,byte utils,[],[],[],10,1000,0.1,300,0.8,0.7,0.6,[3]
lodash,4.17.21,utilities,"[""util""]",[],[],200,9000,2.5,1500,0.95,0.99,0.9,[0]
`

func loadSample(t *testing.T) *Graph {
	t.Helper()
	g, err := Read(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	return g
}

func TestReadBuildsVertices(t *testing.T) {
	g := loadSample(t)

	if g.VertexCount() != 4 {
		t.Errorf("VertexCount() = %d, want 4", g.VertexCount())
	}
	// left-pad is listed as a dependency but absent from the dataset, so
	// only express->body-parser and body-parser->bytes become edges.
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
	}

	v, ok := g.Vertex("express")
	if !ok {
		t.Fatal("express not found")
	}
	if v.Row.Version != "4.17.1" || v.Row.DependentsCount != 900 {
		t.Errorf("express row = %+v", v.Row)
	}
	if !reflect.DeepEqual(v.Maintainers, []int{0, 1}) {
		t.Errorf("express maintainers = %v, want [0 1]", v.Maintainers)
	}
}

func TestTransitiveDependencies(t *testing.T) {
	g := loadSample(t)

	tests := []struct {
		pkg  string
		want int
	}{
		{"express", 2}, // body-parser, bytes; left-pad not in dataset
		{"body-parser", 1},
		{"bytes", 0},
		{"lodash", 0},
	}
	for _, tt := range tests {
		t.Run(tt.pkg, func(t *testing.T) {
			got, err := g.TransitiveDependencies(tt.pkg)
			if err != nil {
				t.Fatalf("TransitiveDependencies(%q) error: %v", tt.pkg, err)
			}
			if got != tt.want {
				t.Errorf("TransitiveDependencies(%q) = %d, want %d", tt.pkg, got, tt.want)
			}
		})
	}

	if _, err := g.TransitiveDependencies("absent"); err == nil {
		t.Error("TransitiveDependencies() expected error for unknown package")
	}
}

func TestDependents(t *testing.T) {
	g := loadSample(t)
	if got := g.Dependents("bytes"); !reflect.DeepEqual(got, []string{"body-parser"}) {
		t.Errorf("Dependents(bytes) = %v, want [body-parser]", got)
	}
	if got := g.Dependents("express"); len(got) != 0 {
		t.Errorf("Dependents(express) = %v, want none", got)
	}
}

func TestSharedKeyword(t *testing.T) {
	g := loadSample(t)
	if got := g.SharedKeyword("express"); !reflect.DeepEqual(got, []string{"body-parser"}) {
		t.Errorf("SharedKeyword(express) = %v, want [body-parser]", got)
	}
	if got := g.SharedKeyword("bytes"); len(got) != 0 {
		t.Errorf("SharedKeyword(bytes) = %v, want none", got)
	}
}

func TestSharedMaintainer(t *testing.T) {
	g := loadSample(t)
	if got := g.SharedMaintainer("express"); !reflect.DeepEqual(got, []string{"lodash"}) {
		t.Errorf("SharedMaintainer(express) = %v, want [lodash]", got)
	}
	if got := g.SharedMaintainer("bytes"); len(got) != 0 {
		t.Errorf("SharedMaintainer(bytes) = %v, want none", got)
	}
}

func TestReadRejectsWrongHeader(t *testing.T) {
	_, err := Read(strings.NewReader("name,version\nfoo,1.0.0\n"))
	if err == nil {
		t.Fatal("Read() expected error for wrong header")
	}
}

func TestRoundTripWithAssembler(t *testing.T) {
	t.Chdir(t.TempDir())

	rows := []dataset.Row{
		{Name: "a", Version: "1.0.0", Keywords: []string{"k"}, Dependencies: []string{"b"}, Maintainers: []string{"m1"}},
		{Name: "b", Version: "2.0.0", Keywords: []string{"k"}, Dependencies: []string{}, Maintainers: []string{"m1", "m2"}},
	}
	if err := dataset.WriteFile("./roundtrip.csv", rows, dataset.BuildMaintainerCodes(rows)); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	g, err := Load("./roundtrip.csv")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if g.VertexCount() != 2 || g.EdgeCount() != 1 {
		t.Errorf("graph = %d vertices %d edges, want 2/1", g.VertexCount(), g.EdgeCount())
	}
	if got := g.SharedMaintainer("a"); !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("SharedMaintainer(a) = %v, want [b]", got)
	}
}

func TestToDOT(t *testing.T) {
	g := loadSample(t)
	dot := ToDOT(g)

	if !strings.HasPrefix(dot, "digraph packages {") {
		t.Errorf("DOT output missing digraph preamble:\n%s", dot)
	}
	for _, want := range []string{
		`"express" -> "body-parser";`,
		`"body-parser" -> "bytes";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q", want)
		}
	}
	if strings.Contains(dot, "left-pad") {
		t.Error("DOT output should not reference packages outside the dataset")
	}
}

func TestRenderSVG(t *testing.T) {
	g := loadSample(t)
	svg, err := RenderSVG(context.Background(), ToDOT(g))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output does not look like SVG")
	}
}
