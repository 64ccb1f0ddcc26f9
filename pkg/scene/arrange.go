package scene

import "github.com/matzehuels/layoutkit/pkg/layout"

// Arrange positions the children of every row and column item in the tree
// along its stacking axis: the first child starts after the leading
// padding, and each following child after its predecessor's extent plus the
// container's spacing. Positions on the other axis are left alone, as are
// the children of plain items and widgets. Centering directives do not
// bind the stacking axis of a row or column, so the positions written here
// hold across resizes.
//
// Arrange is a single pass; call it again after sizes change.
func Arrange(root *Item) {
	root.Walk(func(it *Item, _ int) bool {
		if it.kind != KindRow && it.kind != KindColumn {
			return true
		}
		axis := it.orient.Axis()
		lead, _ := layout.Padding(it, axis)
		spacing := layout.Spacing(it)
		pos := lead
		for _, c := range it.children {
			c.SetProperty(axis.Position(), pos)
			pos += layout.Extent(c, axis) + spacing
		}
		return true
	})
}
