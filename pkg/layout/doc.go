// Package layout sizes and aligns the children of tree-structured containers.
//
// # Overview
//
// The engine distributes a container's extent along one axis among its
// children according to the size each child declares on that axis:
//
//	0        stretch: share the space left over after elastic children
//	(0, 1)   elastic: take this ratio of the unclaimed space
//	>= 1     fixed:   keep this size, claimed before anything else
//
// Unclaimed space is the container's extent minus its paddings, minus
// spacing between adjacent children, minus the fixed children's sizes.
// For a container 210 wide with padding 5/5, spacing 10 and children
// declaring [50, 0.25, 0], the unclaimed space is 130: the elastic child gets
// 32.5 and the stretch child the remaining 97.5.
//
// # Reactive recomputation
//
// [Engine.AutoSizeChildren] classifies the children once, runs one
// allocation pass and installs a [Subscription] on the container's extent
// notification. Every later resize re-runs the pass with the original
// classification. Children added, removed or resized after setup are not
// reclassified.
//
// # Host interfaces
//
// The engine never sees concrete UI nodes. Hosts implement [Object],
// [TextObject] and [Container]; pkg/scene provides an in-memory host.
//
// # Alignment
//
// [Engine.AutoAlign] applies directives (hcenter, vcenter, hfill, vfill,
// stretch), [Engine.EqualSizeChildren] splits an extent evenly once, and
// [ContentWidth] / [TextBlockSize] measure text.
package layout
