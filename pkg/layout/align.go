package layout

import (
	"strings"

	"github.com/matzehuels/layoutkit/pkg/errors"
)

// Directive is one entry of an auto-align list.
type Directive string

const (
	HCenter Directive = "hcenter"
	VCenter Directive = "vcenter"
	HFill   Directive = "hfill"
	VFill   Directive = "vfill"
	Spread  Directive = "stretch"
)

// ParseDirectives splits a comma-separated directive list such as
// "hcenter,stretch". Empty entries are skipped. Any unknown directive fails
// the whole list.
func ParseDirectives(list string) ([]Directive, error) {
	if err := errors.ValidateDirectives(list); err != nil {
		return nil, err
	}
	var out []Directive
	for _, d := range strings.Split(list, ",") {
		if d = strings.TrimSpace(d); d != "" {
			out = append(out, Directive(d))
		}
	}
	return out, nil
}

// stacks reports whether c positions its own children along axis, as a row
// does horizontally and a column vertically.
func stacks(c Container, axis Axis) bool {
	o := c.Orientation()
	return o != Free && o.Axis() == axis
}

// center binds each current child's position so that its center matches the
// container's center along the axis. Children added later are not bound.
// Nothing is bound on the stacking axis of a row or column, whose positioner
// owns that coordinate.
func center(c Container, axis Axis) int {
	if stacks(c, axis) {
		return 0
	}
	children := c.Children()
	for _, child := range children {
		deps := []Dependency{{Source: c, Property: axis.Extent()}}
		if n, ok := child.(Notifier); ok {
			deps = append(deps, Dependency{Source: n, Property: axis.Extent()})
		}
		c.Bind(child, axis.Position(), func() float64 {
			return (Extent(c, axis) - Extent(child, axis)) / 2
		}, deps...)
	}
	return len(children)
}

// fill copies the container's extent to every child on each extent change,
// and once right away.
func fill(c Container, axis Axis) int {
	c.Subscribe(axis.Extent(), func() {
		v := Extent(c, axis)
		for _, child := range c.Children() {
			SetExtent(child, axis, v)
		}
	})
	c.Emit(axis.Extent())
	return len(c.Children())
}

// spread gives every child the same share of the container's extent along
// its stacking axis, net of spacing, on each extent change and once right
// away.
func spread(c Container) (Axis, int) {
	axis := c.Orientation().Axis()
	c.Subscribe(axis.Extent(), func() {
		children := c.Children()
		n := float64(len(children))
		avg := (Extent(c, axis) - Spacing(c)*(n-1)) / n
		for _, child := range children {
			SetExtent(child, axis, avg)
		}
	})
	c.Emit(axis.Extent())
	return axis, len(c.Children())
}

// equalSize sets every child to an equal share of the container's extent,
// once. Spacing and padding are ignored.
func equalSize(c Container, axis Axis) float64 {
	children := c.Children()
	avg := Extent(c, axis) / float64(len(children))
	for _, child := range children {
		SetExtent(child, axis, avg)
	}
	return avg
}
