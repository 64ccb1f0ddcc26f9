// Package tree renders laid-out scene trees as node-link diagrams.
//
// # Usage
//
// Convert a snapshot to DOT, then render to SVG:
//
//	dot := tree.ToDOT(result.Root, tree.Options{Detailed: true})
//	svg, err := tree.RenderSVG(ctx, dot)
//
// Each item becomes a rounded box labeled with its name (or kind when it has
// none); edges run from parent to child in document order. Detailed labels
// add the kind, position and size of every item, and the text of text
// items.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion goes through [render.ToPDF] and
// [render.ToPNG], which need librsvg (rsvg-convert).
package tree
