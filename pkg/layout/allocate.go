package layout

// Pass summarizes one allocation pass.
type Pass struct {
	Available    float64 // extent minus paddings and spacing
	Unclaimed    float64 // available minus the fixed children's claim
	Remaining    float64 // what elastic children left for stretch children
	StretchShare float64 // size written to each stretch child, 0 if none
	Saturated    bool    // no unclaimed space: elastic children were zeroed
}

// Allocate distributes the container's unclaimed space along a.Axis.
//
// Elastic children receive their ratio of the unclaimed budget as it stood
// before any of them were sized, so ratios never compound. Stretch children
// split whatever remains evenly. When there is no unclaimed space every
// elastic child is set to 0 and stretch children are left alone; fixed
// children are never touched. Ratios summing above 1 overshoot the budget and
// leave nothing for stretch children; this is not clamped.
//
// Indexes recorded in a that no longer exist are skipped.
func Allocate(c Container, a Allocation) Pass {
	children := c.Children()
	axis := a.Axis

	var p Pass
	p.Available = Available(c, axis, len(children))
	p.Unclaimed = p.Available - a.Claimed

	if p.Unclaimed <= 0 {
		p.Saturated = true
		for _, e := range a.Elastic {
			if e.Index < len(children) {
				SetExtent(children[e.Index], axis, 0)
			}
		}
		return p
	}

	budget := p.Unclaimed
	p.Remaining = budget
	for _, e := range a.Elastic {
		size := budget * e.Ratio
		if e.Index < len(children) {
			SetExtent(children[e.Index], axis, size)
		}
		p.Remaining -= size
	}

	if p.Remaining <= 0 || len(a.Stretch) == 0 {
		return p
	}

	p.StretchShare = p.Remaining / float64(len(a.Stretch))
	for _, i := range a.Stretch {
		if i < len(children) {
			SetExtent(children[i], axis, p.StretchShare)
		}
	}
	return p
}
