package dataset

import (
	"errors"
	"reflect"
	"testing"

	"github.com/danielhocevar/DissectingNPM/pkg/npms"
)

func TestHeadersSchema(t *testing.T) {
	if len(Headers) != 14 {
		t.Fatalf("len(Headers) = %d, want 14", len(Headers))
	}
	if Headers[0] != "name" || Headers[13] != "maintainers" {
		t.Errorf("Headers order changed: first %q, last %q", Headers[0], Headers[13])
	}
}

func TestFlatten(t *testing.T) {
	doc := makeDoc("react", []string{"object-assign", "loose-envify"}, []string{"gaearon", "acdlite"})
	doc.Collected.Metadata.Description = "ui library"
	doc.Evaluation.Popularity.DownloadsAcceleration = 42.5

	row, err := Flatten(doc)
	if err != nil {
		t.Fatalf("Flatten() error: %v", err)
	}

	if row.Name != "react" || row.Version != "1.0.0" || row.Description != "ui library" {
		t.Errorf("identity fields = %s@%s %q", row.Name, row.Version, row.Description)
	}
	if want := []string{"loose-envify", "object-assign"}; !reflect.DeepEqual(row.Dependencies, want) {
		t.Errorf("Dependencies = %v, want sorted %v", row.Dependencies, want)
	}
	if want := []string{"gaearon", "acdlite"}; !reflect.DeepEqual(row.Maintainers, want) {
		t.Errorf("Maintainers = %v, want list order %v", row.Maintainers, want)
	}
	if row.DownloadsAcceleration != 42.5 {
		t.Errorf("DownloadsAcceleration = %v, want 42.5", row.DownloadsAcceleration)
	}
	if row.Quality != 0.5 || row.Popularity != 0.6 || row.Maintenance != 0.7 {
		t.Errorf("scores = %v/%v/%v", row.Quality, row.Popularity, row.Maintenance)
	}
}

func TestFlattenDeterministic(t *testing.T) {
	doc := makeDoc("a", []string{"b", "c"}, []string{"m1"})
	first, err := Flatten(doc)
	if err != nil {
		t.Fatalf("Flatten() error: %v", err)
	}
	second, err := Flatten(doc)
	if err != nil {
		t.Fatalf("Flatten() error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Flatten() not deterministic: %+v vs %+v", first, second)
	}
}

func TestFlattenMissingMaintainersDefaultsEmpty(t *testing.T) {
	doc := makeDoc("bare", nil, nil)
	row, err := Flatten(doc)
	if err != nil {
		t.Fatalf("Flatten() error: %v", err)
	}
	if row.Maintainers == nil || len(row.Maintainers) != 0 {
		t.Errorf("Maintainers = %#v, want empty non-nil list", row.Maintainers)
	}
}

func TestFlattenRequiredFields(t *testing.T) {
	tests := []struct {
		name  string
		corrupt func(*npms.Document)
	}{
		{"missing name", func(d *npms.Document) { d.Collected.Metadata.Name = "" }},
		{"missing version", func(d *npms.Document) { d.Collected.Metadata.Version = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := makeDoc("pkg", nil, nil)
			tt.corrupt(doc)
			if _, err := Flatten(doc); !errors.Is(err, ErrIncomplete) {
				t.Errorf("Flatten() error = %v, want ErrIncomplete", err)
			}
		})
	}
}

func TestMaintainerCodesDenseFirstSeen(t *testing.T) {
	rows := []Row{
		{Maintainers: []string{"x"}},
		{Maintainers: []string{"y"}},
		{Maintainers: []string{"x"}},
		{Maintainers: []string{"z"}},
	}

	table := BuildMaintainerCodes(rows)
	if table.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", table.Len())
	}

	wantCodes := map[string]int{"x": 0, "y": 1, "z": 2}
	for name, want := range wantCodes {
		got, ok := table.Code(name)
		if !ok || got != want {
			t.Errorf("Code(%q) = %d, %v; want %d, true", name, got, ok, want)
		}
	}

	wantRows := [][]int{{0}, {1}, {0}, {2}}
	for i, row := range rows {
		if got := table.Codes(row.Maintainers); !reflect.DeepEqual(got, wantRows[i]) {
			t.Errorf("row %d codes = %v, want %v", i, got, wantRows[i])
		}
	}
}

func TestMaintainerCodesWithinRowOrder(t *testing.T) {
	rows := []Row{{Maintainers: []string{"b", "a"}}, {Maintainers: []string{"a", "c"}}}
	table := BuildMaintainerCodes(rows)

	if got := table.Codes([]string{"b", "a"}); !reflect.DeepEqual(got, []int{0, 1}) {
		t.Errorf("codes = %v, want [0 1] (first-seen order, not sorted)", got)
	}
	if got := table.Codes([]string{"a", "c"}); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("codes = %v, want [1 2]", got)
	}
}

func TestMaintainerCodesEmptyDataset(t *testing.T) {
	table := BuildMaintainerCodes(nil)
	if table.Len() != 0 {
		t.Errorf("Len() = %d, want 0", table.Len())
	}
	if got := table.Codes([]string{"unknown"}); len(got) != 0 {
		t.Errorf("Codes() = %v, want empty", got)
	}
}
