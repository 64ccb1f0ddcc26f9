package scene

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/image/font"

	"github.com/matzehuels/layoutkit/pkg/fonts"
	"github.com/matzehuels/layoutkit/pkg/layout"
)

// Kind names the type of an item. Widget kinds registered in a [Registry]
// use their registered name.
type Kind string

const (
	KindItem   Kind = "item"
	KindRow    Kind = "row"
	KindColumn Kind = "column"
	KindText   Kind = "text"
)

// Directives are the layout calls recorded for an item when it is built from
// a document. They are applied by the pipeline after the whole tree exists.
type Directives struct {
	AutoSize  string
	EqualSize string
	Align     string
}

// IsZero reports whether no directive is set.
func (d Directives) IsZero() bool {
	return d.AutoSize == "" && d.EqualSize == "" && d.Align == ""
}

// Item is an in-memory scene node. It implements [layout.Container] and
// [layout.TextObject].
//
// Properties are plain float64 values; reading an unset property yields 0.
// Setting a property to a different value notifies its subscribers
// synchronously in registration order. Items are not safe for concurrent
// use.
type Item struct {
	id       uuid.UUID
	name     string
	kind     Kind
	orient   layout.Orientation
	props    map[string]float64
	subs     map[string][]func()
	parent   *Item
	children []*Item

	text string
	face font.Face

	directives Directives
	data       any
}

// NewItem creates a free-positioning item.
func NewItem(kind Kind, name string) *Item {
	if kind == "" {
		kind = KindItem
	}
	it := &Item{
		id:    uuid.New(),
		name:  name,
		kind:  kind,
		props: make(map[string]float64),
		subs:  make(map[string][]func()),
	}
	switch kind {
	case KindRow:
		it.orient = layout.Row
	case KindColumn:
		it.orient = layout.Column
	}
	return it
}

// NewRow creates an item that stacks its children horizontally.
func NewRow(name string) *Item { return NewItem(KindRow, name) }

// NewColumn creates an item that stacks its children vertically.
func NewColumn(name string) *Item { return NewItem(KindColumn, name) }

// NewText creates a text item measured with the default face.
func NewText(name, text string) *Item {
	it := NewItem(KindText, name)
	it.text = text
	it.face = fonts.Default()
	return it
}

func (it *Item) ID() uuid.UUID { return it.id }
func (it *Item) Name() string  { return it.name }
func (it *Item) Kind() Kind    { return it.kind }
func (it *Item) Parent() *Item { return it.parent }

// String returns the item's name, or its kind and short ID when unnamed.
func (it *Item) String() string {
	if it.name != "" {
		return it.name
	}
	return fmt.Sprintf("%s#%s", it.kind, it.id.String()[:8])
}

// SetOrientation overrides the stacking orientation derived from the kind.
func (it *Item) SetOrientation(o layout.Orientation) { it.orient = o }

// Orientation implements [layout.Container].
func (it *Item) Orientation() layout.Orientation { return it.orient }

// Directives returns the layout calls recorded for the item.
func (it *Item) Directives() Directives { return it.directives }

// SetDirectives records layout calls to apply later.
func (it *Item) SetDirectives(d Directives) { it.directives = d }

// Data returns the value attached by a widget factory, if any.
func (it *Item) Data() any { return it.data }

// SetData attaches widget state to the item.
func (it *Item) SetData(v any) { it.data = v }

// =============================================================================
// Properties and notifications
// =============================================================================

// Property implements [layout.Object]. Text items compute contentWidth and
// contentHeight from their text and face.
func (it *Item) Property(name string) float64 {
	if it.face != nil {
		switch name {
		case layout.PropContentWidth:
			return it.contentWidth()
		case layout.PropContentHeight:
			return it.contentHeight()
		}
	}
	return it.props[name]
}

// SetProperty implements [layout.Object]. Subscribers are notified only when
// the value changes or the property was never set.
func (it *Item) SetProperty(name string, v float64) {
	if old, ok := it.props[name]; ok && old == v {
		return
	}
	it.props[name] = v
	it.Emit(name)
}

// Has reports whether the property has been set.
func (it *Item) Has(name string) bool {
	_, ok := it.props[name]
	return ok
}

// Properties returns a copy of the item's set properties.
func (it *Item) Properties() map[string]float64 {
	out := make(map[string]float64, len(it.props))
	for k, v := range it.props {
		out[k] = v
	}
	return out
}

// Subscribe implements [layout.Notifier].
func (it *Item) Subscribe(property string, fn func()) {
	it.subs[property] = append(it.subs[property], fn)
}

// Emit implements [layout.Notifier]. Callbacks subscribed while emitting are
// not run until the next emit.
func (it *Item) Emit(property string) {
	for _, fn := range it.subs[property] {
		fn()
	}
}

// Bind implements [layout.Binder].
func (it *Item) Bind(target layout.Object, property string, expr func() float64, deps ...layout.Dependency) {
	update := func() { target.SetProperty(property, expr()) }
	for _, d := range deps {
		d.Source.Subscribe(d.Property, update)
	}
	update()
}

// Resize sets width then height.
func (it *Item) Resize(width, height float64) {
	it.SetProperty(layout.PropWidth, width)
	it.SetProperty(layout.PropHeight, height)
}

// =============================================================================
// Text
// =============================================================================

// Text implements [layout.TextObject].
func (it *Item) Text() string { return it.text }

// SetText implements [layout.TextObject]. It does not notify subscribers.
func (it *Item) SetText(text string) { it.text = text }

// SetFace sets the face used to measure the item's text and makes the item
// report content sizes.
func (it *Item) SetFace(f font.Face) { it.face = f }

func (it *Item) contentWidth() float64 {
	var widest float64
	for _, line := range strings.Split(it.text, "\n") {
		widest = max(widest, float64(font.MeasureString(it.face, line))/64)
	}
	return widest
}

func (it *Item) contentHeight() float64 {
	lines := strings.Count(it.text, "\n") + 1
	return float64(lines) * float64(it.face.Metrics().Height) / 64
}

// =============================================================================
// Tree
// =============================================================================

// Children implements [layout.Container].
func (it *Item) Children() []layout.Object {
	out := make([]layout.Object, len(it.children))
	for i, c := range it.children {
		out[i] = c
	}
	return out
}

// Items returns the item's children.
func (it *Item) Items() []*Item {
	return append([]*Item(nil), it.children...)
}

// AddChild appends c, detaching it from any previous parent.
func (it *Item) AddChild(c *Item) {
	it.InsertChild(len(it.children), c)
}

// InsertChild inserts c before index i, clamping i to the child range.
func (it *Item) InsertChild(i int, c *Item) {
	if c.parent != nil {
		c.parent.detach(c)
	}
	i = min(max(i, 0), len(it.children))
	it.children = append(it.children, nil)
	copy(it.children[i+1:], it.children[i:])
	it.children[i] = c
	c.parent = it
}

// RemoveChildren removes n children starting at index from and returns them.
// The range is clamped to the existing children.
func (it *Item) RemoveChildren(from, n int) []*Item {
	from = min(max(from, 0), len(it.children))
	to := min(from+max(n, 0), len(it.children))
	removed := append([]*Item(nil), it.children[from:to]...)
	it.children = append(it.children[:from], it.children[to:]...)
	for _, c := range removed {
		c.parent = nil
	}
	return removed
}

func (it *Item) detach(c *Item) {
	for i, x := range it.children {
		if x == c {
			it.RemoveChildren(i, 1)
			return
		}
	}
}

// Walk visits the item and its descendants depth-first, parents before
// children. Returning false from fn skips the item's subtree.
func (it *Item) Walk(fn func(item *Item, depth int) bool) {
	it.walk(fn, 0)
}

func (it *Item) walk(fn func(*Item, int) bool, depth int) {
	if !fn(it, depth) {
		return
	}
	for _, c := range it.children {
		c.walk(fn, depth+1)
	}
}

// PostOrder visits descendants before their parent.
func (it *Item) PostOrder(fn func(item *Item) error) error {
	for _, c := range it.children {
		if err := c.PostOrder(fn); err != nil {
			return err
		}
	}
	return fn(it)
}

// Find returns the first item named name in depth-first order.
func (it *Item) Find(name string) *Item {
	var found *Item
	it.Walk(func(x *Item, _ int) bool {
		if found != nil {
			return false
		}
		if x.name == name {
			found = x
			return false
		}
		return true
	})
	return found
}

var (
	_ layout.Container  = (*Item)(nil)
	_ layout.TextObject = (*Item)(nil)
)
