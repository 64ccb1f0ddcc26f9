package tree

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/layoutkit/pkg/fonts"
	"github.com/matzehuels/layoutkit/pkg/render"
	"github.com/matzehuels/layoutkit/pkg/scene"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds kind, geometry and text to node labels.
	// When false, only the name is shown.
	Detailed bool
}

// kindFill colors container kinds; everything else is white.
var kindFill = map[string]string{
	string(scene.KindRow):    "\"#e8f1fb\"",
	string(scene.KindColumn): "\"#eaf6ea\"",
	string(scene.KindText):   "\"#fdf6e3\"",
}

// ToDOT converts a scene snapshot to Graphviz DOT.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
func ToDOT(root scene.Node, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph scene {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=%q, fontsize=14, margin=\"0.2,0.1\"];\n", fonts.DiagramFontFamily)
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.25;\n")
	buf.WriteString("\n")

	var edges []string
	var visit func(n *scene.Node)
	visit = func(n *scene.Node) {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(fmtAttrs(n, opts.Detailed), ", "))
		for i := range n.Children {
			edges = append(edges, fmt.Sprintf("  %q -> %q;\n", n.ID, n.Children[i].ID))
			visit(&n.Children[i])
		}
	}
	visit(&root)

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *scene.Node, detailed bool) string {
	name := n.Name
	if name == "" {
		name = n.Kind
	}
	if !detailed {
		return name
	}

	parts := []string{
		name,
		"kind: " + n.Kind,
		fmt.Sprintf("pos: %s, %s", num(n.X), num(n.Y)),
		fmt.Sprintf("size: %s x %s", num(n.Width), num(n.Height)),
	}
	if n.Text != "" {
		parts = append(parts, fmt.Sprintf("text: %q", n.Text))
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(n *scene.Node, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, detailed))}
	if fill, ok := kindFill[n.Kind]; ok {
		attrs = append(attrs, "fillcolor="+fill)
	}
	if n.Width == 0 || n.Height == 0 {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"")
	}
	return attrs
}

// num formats a coordinate without trailing zeros.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a
// unitless one so the diagram scales with its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}

// Render produces the diagram of root in format (dot, svg, pdf or png).
func Render(ctx context.Context, root scene.Node, format string, opts Options) ([]byte, error) {
	dot := ToDOT(root, opts)
	switch format {
	case render.FormatDOT:
		return []byte(dot), nil
	case render.FormatSVG:
		return RenderSVG(ctx, dot)
	case render.FormatPDF:
		return RenderPDF(ctx, dot)
	case render.FormatPNG:
		return RenderPNG(ctx, dot, 2)
	default:
		return nil, fmt.Errorf("unsupported diagram format %q", format)
	}
}
