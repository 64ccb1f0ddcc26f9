// Package render turns layout results into pictures.
//
// # Overview
//
// It provides:
//
//   - Scene-tree diagrams rendered with Graphviz (in [tree] subpackage)
//   - Wireframes that draw every item's box at its laid-out position (in
//     [wireframe] subpackage)
//   - Generic format conversion from SVG to PDF and PNG
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg := wireframe.RenderSVG(result.Root)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [tree]: github.com/matzehuels/layoutkit/pkg/render/tree
// [wireframe]: github.com/matzehuels/layoutkit/pkg/render/wireframe
package render
