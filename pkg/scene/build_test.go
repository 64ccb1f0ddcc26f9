package scene

import (
	"strings"
	"testing"

	"github.com/matzehuels/layoutkit/pkg/errors"
	"github.com/matzehuels/layoutkit/pkg/layout"
)

func mustDecode(t *testing.T, input string) *Document {
	t.Helper()
	doc, err := Decode(strings.NewReader(input), FormatTOML)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	return doc
}

func TestBuild(t *testing.T) {
	root, err := Build(mustDecode(t, toolbarTOML), nil)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if root.Kind() != KindRow || root.Orientation() != layout.Row {
		t.Errorf("root = %s/%v, want a row", root.Kind(), root.Orientation())
	}
	if got := root.Directives(); got.AutoSize != "h" {
		t.Errorf("Directives() = %+v, want auto_size h", got)
	}

	props := map[string]float64{
		layout.PropWidth:        210,
		layout.PropHeight:       40,
		layout.PropLeftPadding:  5,
		layout.PropRightPadding: 5,
		layout.PropSpacing:      10,
	}
	for p, want := range props {
		if got := root.Property(p); got != want {
			t.Errorf("root %s = %v, want %v", p, got, want)
		}
	}

	title := root.Find("title")
	if title == nil {
		t.Fatal("title not built")
	}
	if title.Text() != "Title" || title.Property(layout.PropContentWidth) != 35 {
		t.Errorf("title text = %q, content width %v", title.Text(), title.Property(layout.PropContentWidth))
	}
	if got := root.Find("fill").Property(layout.PropWidth); got != 0 {
		t.Errorf("fill width = %v, want 0 (stretch)", got)
	}
}

func TestBuildDeterministicIDs(t *testing.T) {
	doc := mustDecode(t, toolbarTOML)
	a, err := Build(doc, nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Build(doc, nil)
	if err != nil {
		t.Fatal(err)
	}
	if a.ID() != b.ID() || a.Find("title").ID() != b.Find("title").ID() {
		t.Error("building the same document twice should yield the same IDs")
	}
	if a.ID() == a.Find("title").ID() {
		t.Error("distinct items should have distinct IDs")
	}
}

func TestBuildPaddingOverride(t *testing.T) {
	doc := mustDecode(t, `
[root]
type = "column"
padding = 4
top_padding = 0
left_padding = 9
`)
	root, err := Build(doc, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]float64{
		layout.PropLeftPadding:   9,
		layout.PropRightPadding:  4,
		layout.PropTopPadding:    0,
		layout.PropBottomPadding: 4,
	}
	for p, w := range want {
		if got := root.Property(p); got != w {
			t.Errorf("%s = %v, want %v", p, got, w)
		}
	}
}

func TestBuildUnknownWidget(t *testing.T) {
	doc := mustDecode(t, `
[root]
type = "row"

[[root.children]]
type = "Gauge"
`)
	_, err := Build(doc, nil)
	if !errors.Is(err, errors.ErrCodeUnknownWidget) {
		t.Errorf("Build() error = %v, want %s", err, errors.ErrCodeUnknownWidget)
	}
}

func TestBuildRunsFactories(t *testing.T) {
	reg := NewRegistry()
	var seen []string
	err := reg.Register("Badge", func(it *Item, s *Spec) error {
		seen = append(seen, s.Name)
		it.SetData(it.Property("count") * 2)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	doc := mustDecode(t, `
[root]
type = "row"

[[root.children]]
type = "badge"
name = "b"
props = { count = 3 }
`)
	root, err := Build(doc, reg)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	b := root.Find("b")
	if b.Kind() != "Badge" {
		t.Errorf("Kind() = %q, want the registered spelling", b.Kind())
	}
	if b.Data() != 6.0 {
		t.Errorf("Data() = %v, want 6", b.Data())
	}
	if len(seen) != 1 {
		t.Errorf("factory ran %d times, want 1", len(seen))
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register("Row", nil); err == nil {
		t.Error("Register() should reject a name clashing with a built-in")
	}
	if err := reg.Register("", nil); err == nil {
		t.Error("Register() should reject an empty name")
	}
	if _, _, ok := reg.Lookup(""); !ok {
		t.Error("Lookup(\"\") should resolve to item")
	}
	if got := strings.Join(reg.Kinds(), ","); got != "column,item,row,text" {
		t.Errorf("Kinds() = %s", got)
	}
}

func TestSnapshot(t *testing.T) {
	root, err := Build(mustDecode(t, toolbarTOML), nil)
	if err != nil {
		t.Fatal(err)
	}
	root.Find("icon").SetProperty(layout.PropX, 5)

	snap := Snapshot(root)
	if snap.Count() != 4 {
		t.Errorf("Count() = %d, want 4", snap.Count())
	}
	icon := snap.Find("icon")
	if icon == nil || icon.X != 5 || icon.Width != 50 {
		t.Errorf("icon snapshot = %+v", icon)
	}
	if snap.ID != root.ID().String() || snap.Kind != "row" {
		t.Errorf("root snapshot = %+v", snap)
	}
	if title := snap.Find("title"); title.Text != "Title" {
		t.Errorf("title text = %q", title.Text)
	}
}
