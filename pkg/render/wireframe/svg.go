package wireframe

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/layoutkit/pkg/fonts"
	"github.com/matzehuels/layoutkit/pkg/scene"
)

// Box is one item placed in absolute coordinates.
type Box struct {
	ID, Label  string
	Kind       string
	Text       string
	X, Y, W, H float64
	Depth      int
}

// Option configures RenderSVG.
type Option func(*renderer)

type renderer struct {
	labels  bool
	margin  float64
	palette []string
}

// WithLabels draws each item's name in its top-left corner.
func WithLabels() Option { return func(r *renderer) { r.labels = true } }

// WithMargin sets the blank border around the drawing.
func WithMargin(m float64) Option { return func(r *renderer) { r.margin = m } }

// defaultPalette strokes items by depth.
var defaultPalette = []string{"#1f77b4", "#2ca02c", "#d62728", "#9467bd", "#ff7f0e", "#8c564b"}

// Boxes flattens root into absolutely positioned boxes, parents before
// children.
func Boxes(root scene.Node) []Box {
	var out []Box
	var visit func(n *scene.Node, ox, oy float64, depth int)
	visit = func(n *scene.Node, ox, oy float64, depth int) {
		x, y := ox+n.X, oy+n.Y
		label := n.Name
		if label == "" {
			label = n.Kind
		}
		out = append(out, Box{
			ID: n.ID, Label: label, Kind: n.Kind, Text: n.Text,
			X: x, Y: y, W: n.Width, H: n.Height,
			Depth: depth,
		})
		for i := range n.Children {
			visit(&n.Children[i], x, y, depth+1)
		}
	}
	visit(&root, 0, 0, 0)
	return out
}

// RenderSVG draws root and its descendants.
func RenderSVG(root scene.Node, opts ...Option) []byte {
	r := renderer{margin: 10, palette: defaultPalette}
	for _, opt := range opts {
		opt(&r)
	}

	boxes := Boxes(root)
	w, h := extent(boxes)
	w += 2 * r.margin
	h += 2 * r.margin

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	fmt.Fprintf(&buf, "  <g transform=\"translate(%.1f,%.1f)\" font-family=%q font-size=\"11\">\n", r.margin, r.margin, fonts.DiagramFontFamily)
	for _, b := range boxes {
		r.renderBox(&buf, b)
	}
	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

func (r *renderer) renderBox(buf *bytes.Buffer, b Box) {
	stroke := r.palette[b.Depth%len(r.palette)]
	dash := ""
	if b.W == 0 || b.H == 0 {
		dash = ` stroke-dasharray="4 3"`
	}
	fmt.Fprintf(buf, `    <rect id="item-%s" class="item %s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" stroke="%s"%s/>`+"\n",
		html.EscapeString(b.ID), html.EscapeString(b.Kind), b.X, b.Y, b.W, b.H, stroke, dash)

	if b.Text != "" {
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" dominant-baseline="hanging">%s</text>`+"\n",
			b.X, b.Y, html.EscapeString(b.Text))
	} else if r.labels {
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" dominant-baseline="hanging" fill="%s" font-size="9">%s</text>`+"\n",
			b.X+2, b.Y+2, stroke, html.EscapeString(b.Label))
	}
}

// extent returns the bottom-right corner of the union of boxes.
func extent(boxes []Box) (w, h float64) {
	for _, b := range boxes {
		w = max(w, b.X+b.W)
		h = max(h, b.Y+b.H)
	}
	return w, h
}
