package layout

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// TextMetrics are the per-character metrics used by TextBlockSize.
type TextMetrics struct {
	CharWidth  float64 `toml:"char_width" json:"char_width" yaml:"char_width"`
	LineHeight float64 `toml:"line_height" json:"line_height" yaml:"line_height"`

	// Cells measures lines in terminal display cells instead of runes, so
	// East Asian wide runes count as two.
	Cells bool `toml:"cells" json:"cells,omitempty" yaml:"cells,omitempty"`
}

// DefaultTextMetrics are used when no metrics are configured.
var DefaultTextMetrics = TextMetrics{CharWidth: 10, LineHeight: 20}

// withDefaults fills zero metrics from DefaultTextMetrics.
func (m TextMetrics) withDefaults() TextMetrics {
	if m.CharWidth <= 0 {
		m.CharWidth = DefaultTextMetrics.CharWidth
	}
	if m.LineHeight <= 0 {
		m.LineHeight = DefaultTextMetrics.LineHeight
	}
	return m
}

// TextBlockSize estimates the box needed for a block of lines: the longest
// line in runes times the char width, and one line more than the line count
// times the line height. It is a heuristic, not text shaping.
func TextBlockSize(lines []string, m TextMetrics) (width, height float64) {
	m = m.withDefaults()
	longest := 0
	for _, l := range lines {
		longest = max(longest, m.length(l))
	}
	return float64(longest) * m.CharWidth, float64(len(lines)+1) * m.LineHeight
}

func (m TextMetrics) length(line string) int {
	if m.Cells {
		return runewidth.StringWidth(line)
	}
	return utf8.RuneCountInString(line)
}

// SplitLines splits text on newlines, dropping a single trailing newline.
func SplitLines(text string) []string {
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// ContentWidth returns the width t would need to show text.
// With empty text it reports t's current content width.
func ContentWidth(t TextObject, text string) float64 {
	return measure(t, text, PropContentWidth)
}

// ContentHeight returns the height t would need to show text.
// With empty text it reports t's current content height.
func ContentHeight(t TextObject, text string) float64 {
	return measure(t, text, PropContentHeight)
}

// measure temporarily swaps t's text, reads the measured property and puts
// the original text back. The swap is not reentrant: nothing else may touch t
// until it returns.
func measure(t TextObject, text, prop string) float64 {
	if text == "" {
		return t.Property(prop)
	}
	old := t.Text()
	defer t.SetText(old)
	t.SetText(text)
	return t.Property(prop)
}
