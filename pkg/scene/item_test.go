package scene

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/layoutkit/pkg/layout"
)

func TestSetPropertyNotifiesOnChange(t *testing.T) {
	it := NewItem(KindItem, "box")
	var calls int
	it.Subscribe(layout.PropWidth, func() { calls++ })

	it.SetProperty(layout.PropWidth, 0) // first write notifies even at 0
	it.SetProperty(layout.PropWidth, 0)
	it.SetProperty(layout.PropWidth, 10)
	it.SetProperty(layout.PropWidth, 10)
	it.SetProperty(layout.PropHeight, 10)

	if calls != 2 {
		t.Errorf("width subscriber called %d times, want 2", calls)
	}
	if !it.Has(layout.PropHeight) || it.Has(layout.PropX) {
		t.Error("Has() should report set properties only")
	}
	if got := it.Property("missing"); got != 0 {
		t.Errorf("Property(missing) = %v, want 0", got)
	}
}

func TestSubscribersRunInOrder(t *testing.T) {
	it := NewItem(KindItem, "")
	var order []int
	for i := range 3 {
		it.Subscribe("p", func() { order = append(order, i) })
	}

	it.Emit("p")

	if diff := cmp.Diff([]int{0, 1, 2}, order); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestBind(t *testing.T) {
	parent := NewItem(KindItem, "parent")
	child := NewItem(KindItem, "child")
	parent.SetProperty(layout.PropWidth, 100)

	parent.Bind(child, layout.PropWidth, func() float64 {
		return parent.Property(layout.PropWidth) / 2
	}, layout.Dependency{Source: parent, Property: layout.PropWidth})

	if got := child.Property(layout.PropWidth); got != 50 {
		t.Errorf("bound width = %v, want 50", got)
	}
	parent.SetProperty(layout.PropWidth, 300)
	if got := child.Property(layout.PropWidth); got != 150 {
		t.Errorf("bound width after change = %v, want 150", got)
	}
}

func TestTree(t *testing.T) {
	root := NewColumn("root")
	a, b, c := NewItem(KindItem, "a"), NewItem(KindItem, "b"), NewItem(KindItem, "c")
	root.AddChild(a)
	root.AddChild(c)
	root.InsertChild(1, b)

	names := func(items []*Item) []string {
		var out []string
		for _, it := range items {
			out = append(out, it.Name())
		}
		return out
	}

	if diff := cmp.Diff([]string{"a", "b", "c"}, names(root.Items())); diff != "" {
		t.Fatalf("children mismatch (-want +got):\n%s", diff)
	}
	if b.Parent() != root {
		t.Error("inserted child has no parent")
	}

	other := NewRow("other")
	other.AddChild(b)
	if diff := cmp.Diff([]string{"a", "c"}, names(root.Items())); diff != "" {
		t.Errorf("reparenting should detach (-want +got):\n%s", diff)
	}

	removed := root.RemoveChildren(0, 5)
	if diff := cmp.Diff([]string{"a", "c"}, names(removed)); diff != "" {
		t.Errorf("removed mismatch (-want +got):\n%s", diff)
	}
	if len(root.Children()) != 0 || a.Parent() != nil {
		t.Error("RemoveChildren() should empty the item and clear parents")
	}
}

func TestFindAndWalk(t *testing.T) {
	root := NewColumn("root")
	row := NewRow("row")
	row.AddChild(NewText("label", "hi"))
	root.AddChild(row)
	root.AddChild(NewItem(KindItem, "spacer"))

	if got := root.Find("label"); got == nil || got.Kind() != KindText {
		t.Errorf("Find(label) = %v, want the text item", got)
	}
	if got := root.Find("nope"); got != nil {
		t.Errorf("Find(nope) = %v, want nil", got)
	}

	var visited []string
	root.Walk(func(it *Item, depth int) bool {
		visited = append(visited, it.Name())
		return it.Name() != "row"
	})
	if diff := cmp.Diff([]string{"root", "row", "spacer"}, visited); diff != "" {
		t.Errorf("Walk() mismatch (-want +got):\n%s", diff)
	}

	var post []string
	_ = root.PostOrder(func(it *Item) error {
		post = append(post, it.Name())
		return nil
	})
	if diff := cmp.Diff([]string{"label", "row", "spacer", "root"}, post); diff != "" {
		t.Errorf("PostOrder() mismatch (-want +got):\n%s", diff)
	}
}

func TestOrientation(t *testing.T) {
	tests := []struct {
		item *Item
		want layout.Orientation
	}{
		{NewRow(""), layout.Row},
		{NewColumn(""), layout.Column},
		{NewItem(KindItem, ""), layout.Free},
		{NewText("", "x"), layout.Free},
	}
	for _, tt := range tests {
		if got := tt.item.Orientation(); got != tt.want {
			t.Errorf("%s Orientation() = %v, want %v", tt.item.Kind(), got, tt.want)
		}
	}
}

func TestTextContentSize(t *testing.T) {
	tests := []struct {
		text       string
		wantWidth  float64
		wantHeight float64
	}{
		{"abc", 21, 13},
		{"ab\nabcd", 28, 26},
		{"", 0, 13},
	}

	for _, tt := range tests {
		it := NewText("t", tt.text)
		if got := it.Property(layout.PropContentWidth); got != tt.wantWidth {
			t.Errorf("contentWidth(%q) = %v, want %v", tt.text, got, tt.wantWidth)
		}
		if got := it.Property(layout.PropContentHeight); got != tt.wantHeight {
			t.Errorf("contentHeight(%q) = %v, want %v", tt.text, got, tt.wantHeight)
		}
	}

	it := NewText("t", "hi")
	if got := layout.ContentWidth(it, "hello"); got != 35 {
		t.Errorf("ContentWidth(hello) = %v, want 35", got)
	}
	if it.Text() != "hi" {
		t.Errorf("Text() = %q after measuring, want %q", it.Text(), "hi")
	}
}

func TestString(t *testing.T) {
	if got := NewItem(KindItem, "named").String(); got != "named" {
		t.Errorf("String() = %q, want named", got)
	}
	if got := NewRow("").String(); len(got) != len("row#")+8 {
		t.Errorf("String() = %q, want kind and short id", got)
	}
}
