package layout

import (
	"math"

	"github.com/matzehuels/layoutkit/pkg/errors"
)

// SizeClass is the sizing policy derived from a child's declared size.
type SizeClass int

const (
	// Fixed children (size >= 1) consume their size verbatim.
	Fixed SizeClass = iota
	// Elastic children (0 < size < 1) take that ratio of the unclaimed space.
	Elastic
	// Stretch children (size == 0) share what elastic children leave over.
	Stretch
)

// String returns the lower-case class name.
func (c SizeClass) String() string {
	switch c {
	case Elastic:
		return "elastic"
	case Stretch:
		return "stretch"
	default:
		return "fixed"
	}
}

// ClassOf buckets a declared size. Negative and NaN sizes are invalid.
func ClassOf(v float64) (SizeClass, bool) {
	switch {
	case v < 0 || math.IsNaN(v):
		return Fixed, false
	case v == 0:
		return Stretch, true
	case v < 1:
		return Elastic, true
	default:
		return Fixed, true
	}
}

// ElasticItem is a child that takes a fraction of the unclaimed space.
type ElasticItem struct {
	Index int
	Ratio float64
}

// Allocation is the classification of a container's children along one axis.
// It is computed once and reused by every later pass; children that change
// size class afterwards are not reclassified.
type Allocation struct {
	Axis    Axis
	Claimed float64       // sum of fixed sizes
	Elastic []ElasticItem // in child index order
	Stretch []int         // child indexes, ascending
}

// Dynamic reports whether any child needs space computed from the container.
func (a Allocation) Dynamic() bool {
	return len(a.Elastic) > 0 || len(a.Stretch) > 0
}

// fixedCount returns how many of n classified children were fixed.
func (a Allocation) fixedCount(n int) int {
	return n - len(a.Elastic) - len(a.Stretch)
}

// Classify scans the container's children once, in index order, and buckets
// each child's declared size along the axis. An invalid size aborts the scan
// with a *errors.SizeError naming the child; nothing is written either way.
func Classify(c Container, axis Axis) (Allocation, error) {
	alloc := Allocation{Axis: axis}
	for i, child := range c.Children() {
		v := Extent(child, axis)
		class, ok := ClassOf(v)
		if !ok {
			return Allocation{}, &errors.SizeError{Index: i, Child: child, Axis: axis.Extent(), Size: v}
		}
		switch class {
		case Stretch:
			alloc.Stretch = append(alloc.Stretch, i)
		case Elastic:
			alloc.Elastic = append(alloc.Elastic, ElasticItem{Index: i, Ratio: v})
		default:
			alloc.Claimed += v
		}
	}
	return alloc, nil
}
