package wireframe

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/layoutkit/pkg/scene"
)

func sample() scene.Node {
	return scene.Node{
		ID: "r", Name: "panel", Kind: "column", X: 0, Y: 0, Width: 200, Height: 100,
		Children: []scene.Node{
			{
				ID: "bar", Name: "bar", Kind: "row", X: 10, Y: 20, Width: 180, Height: 30,
				Children: []scene.Node{
					{ID: "t", Kind: "text", X: 5, Y: 5, Width: 28, Height: 13, Text: "a<b"},
					{ID: "z", Name: "gap", Kind: "item", X: 40},
				},
			},
		},
	}
}

func TestBoxes(t *testing.T) {
	got := Boxes(sample())
	want := []Box{
		{ID: "r", Label: "panel", Kind: "column", W: 200, H: 100},
		{ID: "bar", Label: "bar", Kind: "row", X: 10, Y: 20, W: 180, H: 30, Depth: 1},
		{ID: "t", Label: "text", Kind: "text", Text: "a<b", X: 15, Y: 25, W: 28, H: 13, Depth: 2},
		{ID: "z", Label: "gap", Kind: "item", X: 50, Y: 20, Depth: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Boxes() mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(sample(), WithLabels(), WithMargin(5)))

	for _, want := range []string{
		`viewBox="0 0 210.0 110.0"`,
		`<rect id="item-bar" class="item row" x="10.00" y="20.00" width="180.00" height="30.00" fill="none" stroke="#2ca02c"/>`,
		`stroke-dasharray="4 3"`,
		`>a&lt;b</text>`,
		`>panel</text>`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("RenderSVG() missing %q in:\n%s", want, svg)
		}
	}

	plain := string(RenderSVG(sample()))
	if strings.Contains(plain, ">panel</text>") {
		t.Error("labels should be off by default")
	}
}
