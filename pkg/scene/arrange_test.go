package scene

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/layoutkit/pkg/layout"
)

func positions(it *Item, prop string) []float64 {
	var out []float64
	for _, c := range it.Items() {
		out = append(out, c.Property(prop))
	}
	return out
}

func TestArrange(t *testing.T) {
	row := NewRow("row")
	row.SetProperty(layout.PropLeftPadding, 5)
	row.SetProperty(layout.PropSpacing, 10)
	for _, w := range []float64{50, 32.5, 97.5} {
		c := NewItem(KindItem, "")
		c.SetProperty(layout.PropWidth, w)
		c.SetProperty(layout.PropY, 7)
		row.AddChild(c)
	}

	col := NewColumn("col")
	col.SetProperty(layout.PropTopPadding, 2)
	for _, h := range []float64{10, 20} {
		c := NewItem(KindItem, "")
		c.SetProperty(layout.PropHeight, h)
		col.AddChild(c)
	}

	plain := NewItem(KindItem, "plain")
	c := NewItem(KindItem, "")
	c.SetProperty(layout.PropX, 3)
	c.SetProperty(layout.PropWidth, 40)
	plain.AddChild(c)
	plain.AddChild(NewItem(KindItem, ""))

	root := NewColumn("root")
	root.AddChild(row)
	root.AddChild(col)
	root.AddChild(plain)
	Arrange(root)

	if diff := cmp.Diff([]float64{5, 65, 107.5}, positions(row, layout.PropX)); diff != "" {
		t.Errorf("row x mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{7, 7, 7}, positions(row, layout.PropY)); diff != "" {
		t.Errorf("row y should be untouched (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{2, 12}, positions(col, layout.PropY)); diff != "" {
		t.Errorf("column y mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{3, 0}, positions(plain, layout.PropX)); diff != "" {
		t.Errorf("plain item children should keep their x (-want +got):\n%s", diff)
	}
}

func TestArrangeKeepsCenteredRowPositions(t *testing.T) {
	row := NewRow("row")
	row.SetProperty(layout.PropSpacing, 10)
	row.Resize(200, 100)
	for _, size := range []float64{40, 60} {
		c := NewItem(KindItem, "")
		c.Resize(size, size)
		row.AddChild(c)
	}

	if err := layout.New().AutoAlign(row, "hcenter,vcenter"); err != nil {
		t.Fatalf("AutoAlign() error: %v", err)
	}
	Arrange(row)
	row.Resize(400, 300)

	if diff := cmp.Diff([]float64{0, 50}, positions(row, layout.PropX)); diff != "" {
		t.Errorf("row x after resize mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{130, 120}, positions(row, layout.PropY)); diff != "" {
		t.Errorf("row y after resize mismatch (-want +got):\n%s", diff)
	}
}
