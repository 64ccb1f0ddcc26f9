// Package wireframe draws laid-out scene trees as SVG box outlines.
//
// Every item becomes a rectangle at its absolute position: item coordinates
// in a snapshot are relative to the parent, so the renderer accumulates
// offsets while walking the tree. Text items also draw their text.
//
//	svg := wireframe.RenderSVG(result.Root, wireframe.WithLabels())
//
// Items with a zero width or height are drawn dashed so stretched children
// that received no space remain visible.
package wireframe
