package widgets

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/layoutkit/pkg/errors"
	"github.com/matzehuels/layoutkit/pkg/layout"
	"github.com/matzehuels/layoutkit/pkg/model"
	"github.com/matzehuels/layoutkit/pkg/scene"
)

const listDoc = `
[root]
type = "column"
width = 200

[[root.children]]
type = "ListView"
name = "list"
width = 120
padding = 5
spacing = 2
props = { rowHeight = 18 }
model = { roles = ["title", "count"], text_role = "title", items = [{ title = "one" }, { title = "two" }] }

[[root.children]]
type = "Slider"
name = "volume"
props = { from = 0, to = 10, stepSize = 2, value = 5.4 }
`

func build(t *testing.T) *scene.Item {
	t.Helper()
	doc, err := scene.Decode(strings.NewReader(listDoc), scene.FormatTOML)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	root, err := scene.Build(doc, NewRegistry())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return root
}

func texts(lv *ListView) []string {
	var out []string
	for _, d := range lv.Item().Items() {
		out = append(out, d.Text())
	}
	return out
}

func TestListViewFromDocument(t *testing.T) {
	root := build(t)
	lv, ok := ListViewOf(root.Find("list"))
	if !ok {
		t.Fatal("list item has no ListView")
	}

	if diff := cmp.Diff([]string{"one", "two"}, texts(lv)); diff != "" {
		t.Errorf("delegates mismatch (-want +got):\n%s", diff)
	}
	d := lv.Delegate(1)
	if d.Property(layout.PropWidth) != 110 {
		t.Errorf("delegate width = %v, want 110", d.Property(layout.PropWidth))
	}
	if d.Property(layout.PropY) != 5+18+2 || d.Property(layout.PropX) != 5 {
		t.Errorf("delegate at (%v, %v), want (5, 25)", d.Property(layout.PropX), d.Property(layout.PropY))
	}
	if got := lv.Item().Property(layout.PropContentHeight); got != 38 {
		t.Errorf("contentHeight = %v, want 38", got)
	}
	if lv.Item().Orientation() != layout.Column {
		t.Error("ListView should stack vertically")
	}
}

func TestListViewMirrorsModel(t *testing.T) {
	root := build(t)
	lv, _ := ListViewOf(root.Find("list"))
	m := lv.Model()

	m.Append(model.Item{"title": "three"})
	if err := m.Insert(0, model.Item{"title": "zero"}); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Update(2, model.Item{"title": "TWO"}); err != nil {
		t.Fatal(err)
	}
	if err := m.Delete(1); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]string{"zero", "TWO", "three"}, texts(lv)); diff != "" {
		t.Errorf("delegates mismatch (-want +got):\n%s", diff)
	}
	if got := lv.Delegate(2).Property(layout.PropY); got != 5+2*(18+2) {
		t.Errorf("last delegate y = %v, want 45", got)
	}

	lv.Item().SetProperty(layout.PropWidth, 300)
	for i, d := range lv.Item().Items() {
		if d.Property(layout.PropWidth) != 290 {
			t.Errorf("delegate %d width = %v after resize, want 290", i, d.Property(layout.PropWidth))
		}
	}

	m.Clear()
	if n := len(lv.Item().Items()); n != 0 {
		t.Errorf("%d delegates after Clear(), want 0", n)
	}
	if got := lv.Item().Property(layout.PropContentHeight); got != 0 {
		t.Errorf("contentHeight after Clear() = %v, want 0", got)
	}
}

func TestListViewDropsRemovedDelegates(t *testing.T) {
	root := build(t)
	lv, _ := ListViewOf(root.Find("list"))
	m := lv.Model()

	var removed []*scene.Item
	for i := range 20 {
		m.Append(model.Item{"title": "tmp"})
		removed = append(removed, lv.Delegate(m.RowCount()-1))
		if err := m.Pop(); err != nil {
			t.Fatalf("cycle %d: Pop() error: %v", i, err)
		}
	}
	gone := lv.Delegate(1)
	if err := m.Delete(1); err != nil {
		t.Fatal(err)
	}
	removed = append(removed, gone)

	lv.Item().SetProperty(layout.PropWidth, 300)
	for i, d := range removed {
		if d.Parent() != nil {
			t.Fatalf("removed delegate %d still has a parent", i)
		}
		if got := d.Property(layout.PropWidth); got != 110 {
			t.Errorf("removed delegate %d width = %v after resize, want 110", i, got)
		}
	}
	if got := lv.Delegate(0).Property(layout.PropWidth); got != 290 {
		t.Errorf("remaining delegate width = %v, want 290", got)
	}
}

func TestListViewErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code errors.Code
	}{
		{
			name: "no model",
			doc:  "[root]\ntype = \"ListView\"\n",
			code: errors.ErrCodeInvalidScene,
		},
		{
			name: "declared children",
			doc:  "[root]\ntype = \"ListView\"\nmodel = { roles = [\"a\"] }\n[[root.children]]\ntype = \"item\"\n",
			code: errors.ErrCodeInvalidScene,
		},
		{
			name: "text role not in model",
			doc:  "[root]\ntype = \"ListView\"\nmodel = { roles = [\"a\"], text_role = \"b\" }\n",
			code: errors.ErrCodeInvalidRole,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := scene.Decode(strings.NewReader(tt.doc), scene.FormatTOML)
			if err != nil {
				t.Fatalf("Decode() error: %v", err)
			}
			_, err = scene.Build(doc, NewRegistry())
			if !errors.Is(err, tt.code) {
				t.Errorf("Build() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestSlider(t *testing.T) {
	root := build(t)
	s, ok := SliderOf(root.Find("volume"))
	if !ok {
		t.Fatal("volume item has no Slider")
	}

	// 5.4 snaps to the nearest step of 2.
	if s.Value() != 6 || s.Position() != 0.6 {
		t.Errorf("initial value/position = %v/%v, want 6/0.6", s.Value(), s.Position())
	}

	tests := []struct {
		set  float64
		want float64
	}{
		{3, 4},
		{-7, 0},
		{99, 10},
		{8.9, 8},
	}
	for _, tt := range tests {
		s.SetValue(tt.set)
		if s.Value() != tt.want {
			t.Errorf("SetValue(%v) -> %v, want %v", tt.set, s.Value(), tt.want)
		}
	}

	s.Increase()
	if s.Value() != 10 {
		t.Errorf("Increase() -> %v, want 10", s.Value())
	}
	s.Increase()
	if s.Value() != 10 {
		t.Errorf("Increase() at the top -> %v, want 10", s.Value())
	}

	// Narrowing the range re-clamps the value.
	s.Item().SetProperty(PropTo, 4)
	if s.Value() != 4 || s.Position() != 1 {
		t.Errorf("after to=4 value/position = %v/%v, want 4/1", s.Value(), s.Position())
	}
}

func TestSliderDefaultsAndErrors(t *testing.T) {
	it := scene.NewItem(TypeSlider, "s")
	s, err := NewSlider(it)
	if err != nil {
		t.Fatal(err)
	}
	s.SetValue(0.25)
	if s.Value() != 0.25 || s.Position() != 0.25 {
		t.Errorf("continuous slider value/position = %v/%v", s.Value(), s.Position())
	}

	bad := scene.NewItem(TypeSlider, "bad")
	bad.SetProperty(PropFrom, 5)
	bad.SetProperty(PropTo, 1)
	if _, err := NewSlider(bad); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("NewSlider(inverted) error = %v", err)
	}
}

func TestRegister(t *testing.T) {
	reg := scene.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatal(err)
	}
	if err := Register(reg); err == nil {
		t.Error("registering twice should fail")
	}
	if _, _, ok := reg.Lookup("listview"); !ok {
		t.Error("Lookup(listview) failed")
	}
}
