package cli

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/layoutkit/pkg/pipeline"
	"github.com/matzehuels/layoutkit/pkg/scene"
)

var sampleNode = scene.Node{
	Name: "bar", Kind: "row", Width: 100, Height: 20,
	Children: []scene.Node{
		{Name: "a", Kind: "item", X: 0, Width: 20, Height: 20},
		{Kind: "item", X: 20, Width: 80, Height: 0},
	},
}

func TestGeometryRows(t *testing.T) {
	want := [][]string{
		{"bar", "row", "0", "0", "100", "20"},
		{"  a", "item", "0", "0", "20", "20"},
		{"  ·", "item", "20", "0", "80", "0"},
	}
	if diff := cmp.Diff(want, geometryRows(sampleNode)); diff != "" {
		t.Errorf("geometryRows() mismatch (-want +got):\n%s", diff)
	}
}

func TestGeometryTable(t *testing.T) {
	out := geometryTable(sampleNode)
	for _, want := range []string{"Item", "Height", "bar", "80"} {
		if !strings.Contains(out, want) {
			t.Errorf("geometryTable() missing %q:\n%s", want, out)
		}
	}
}

func TestStatsLine(t *testing.T) {
	tests := []struct {
		name   string
		stats  pipeline.Stats
		frames int
		cached bool
		want   []string
	}{
		{"fresh", pipeline.Stats{Items: 4, Directives: 1, Subscriptions: 1}, 2, false, []string{"4 items", "1 directives", "1 live", "2 frames", iconFresh}},
		{"cached", pipeline.Stats{Items: 1}, 0, true, []string{"1 items", iconCached}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := statsLine(tt.stats, tt.frames, tt.cached)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("statsLine() = %q, missing %q", got, w)
				}
			}
		})
	}
}
