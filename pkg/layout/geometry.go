package layout

// Extent reads a node's size along the axis.
func Extent(o Object, a Axis) float64 {
	return o.Property(a.Extent())
}

// SetExtent writes a node's size along the axis.
func SetExtent(o Object, a Axis, v float64) {
	o.SetProperty(a.Extent(), v)
}

// Padding reads the container's leading and trailing padding along the axis.
func Padding(c Object, a Axis) (leading, trailing float64) {
	lp, tp := a.Padding()
	return c.Property(lp), c.Property(tp)
}

// Spacing reads the gap inserted between adjacent children.
func Spacing(c Object) float64 {
	return c.Property(PropSpacing)
}

// Available returns the space along the axis that n children can share:
// the extent minus both paddings minus spacing between adjacent children.
func Available(c Object, a Axis, n int) float64 {
	leading, trailing := Padding(c, a)
	return Extent(c, a) - leading - trailing - Spacing(c)*float64(n-1)
}
