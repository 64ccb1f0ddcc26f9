package layout

import "strings"

// fakeNode is a minimal host node for engine tests.
type fakeNode struct {
	name     string
	props    map[string]float64
	children []*fakeNode
	orient   Orientation
	subs     map[string][]func()
	writes   int

	text      string
	charWidth float64
}

func newFake(name string, props map[string]float64) *fakeNode {
	if props == nil {
		props = map[string]float64{}
	}
	return &fakeNode{name: name, props: props, subs: map[string][]func(){}}
}

// newContainer builds a container whose children declare the given sizes
// along axis.
func newContainer(orient Orientation, props map[string]float64, axis Axis, sizes ...float64) *fakeNode {
	c := newFake("container", props)
	c.orient = orient
	for _, s := range sizes {
		c.children = append(c.children, newFake("child", map[string]float64{axis.Extent(): s}))
	}
	return c
}

func (n *fakeNode) String() string { return n.name }

func (n *fakeNode) Property(name string) float64 {
	if name == PropContentWidth && n.charWidth > 0 {
		longest := 0
		for _, l := range strings.Split(n.text, "\n") {
			longest = max(longest, len(l))
		}
		return float64(longest) * n.charWidth
	}
	return n.props[name]
}

func (n *fakeNode) SetProperty(name string, v float64) {
	n.writes++
	if old, ok := n.props[name]; ok && old == v {
		return
	}
	n.props[name] = v
	n.Emit(name)
}

func (n *fakeNode) Subscribe(property string, fn func()) {
	n.subs[property] = append(n.subs[property], fn)
}

func (n *fakeNode) Emit(property string) {
	for _, fn := range append([]func(){}, n.subs[property]...) {
		fn()
	}
}

func (n *fakeNode) Bind(target Object, property string, expr func() float64, deps ...Dependency) {
	update := func() { target.SetProperty(property, expr()) }
	for _, d := range deps {
		d.Source.Subscribe(d.Property, update)
	}
	update()
}

func (n *fakeNode) Children() []Object {
	out := make([]Object, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

func (n *fakeNode) Orientation() Orientation { return n.orient }

func (n *fakeNode) Text() string        { return n.text }
func (n *fakeNode) SetText(text string) { n.text = text }

// resize changes the container's extent, notifying subscribers.
func (n *fakeNode) resize(axis Axis, v float64) { n.SetProperty(axis.Extent(), v) }

// sizes returns the children's extents along axis.
func (n *fakeNode) sizes(axis Axis) []float64 {
	out := make([]float64, len(n.children))
	for i, c := range n.children {
		out[i] = c.props[axis.Extent()]
	}
	return out
}

// childWrites returns the total number of property writes on children.
func (n *fakeNode) childWrites() int {
	total := 0
	for _, c := range n.children {
		total += c.writes
	}
	return total
}

var (
	_ Container  = (*fakeNode)(nil)
	_ TextObject = (*fakeNode)(nil)
)
