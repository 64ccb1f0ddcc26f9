package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/layoutkit/pkg/errors"
	"github.com/matzehuels/layoutkit/pkg/pipeline"
	"github.com/matzehuels/layoutkit/pkg/scene"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)

	styleHeader   = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleZeroSize = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// PrintError prints err to stderr without its error code.
func PrintError(err error) {
	fmt.Fprintln(os.Stderr, styleIconError.Render(iconError)+" "+errors.UserMessage(err))
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// =============================================================================
// Stats Display
// =============================================================================

// statsLine formats layout statistics on a single line.
func statsLine(stats pipeline.Stats, frames int, cached bool) string {
	parts := []string{fmt.Sprintf("%d items", stats.Items)}
	if stats.Directives > 0 {
		parts = append(parts, fmt.Sprintf("%d directives", stats.Directives))
	}
	if stats.Subscriptions > 0 {
		parts = append(parts, fmt.Sprintf("%d live", stats.Subscriptions))
	}
	if frames > 0 {
		parts = append(parts, fmt.Sprintf("%d frames", frames))
	}

	status := styleComputed.Render(iconFresh)
	if cached {
		status = styleCached.Render(iconCached)
	}

	for i, p := range parts {
		parts[i] = StyleDim.Render(p)
	}
	return "  " + strings.Join(append(parts, status), StyleDim.Render(" · "))
}

// =============================================================================
// Geometry Table
// =============================================================================

// geometryRows flattens a snapshot into table rows, indenting names by depth.
func geometryRows(root scene.Node) [][]string {
	var rows [][]string
	var walk func(n scene.Node, depth int)
	walk = func(n scene.Node, depth int) {
		name := n.Name
		if name == "" {
			name = "·"
		}
		rows = append(rows, []string{
			strings.Repeat("  ", depth) + name,
			n.Kind,
			formatNum(n.X),
			formatNum(n.Y),
			formatNum(n.Width),
			formatNum(n.Height),
		})
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	walk(root, 0)
	return rows
}

// geometryTable renders a snapshot as a bordered table. Items with a zero
// extent are highlighted.
func geometryTable(root scene.Node) string {
	rows := geometryRows(root)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("Item", "Kind", "X", "Y", "Width", "Height").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return base.Inherit(styleHeader)
			}
			if row < 0 || row >= len(rows) {
				return base
			}
			r := rows[row]
			if r[4] == "0" || r[5] == "0" {
				return base.Inherit(styleZeroSize)
			}
			if col >= 2 {
				return base.Inherit(StyleNumber)
			}
			return base
		}).
		Render()
}

// formatNum prints a coordinate without trailing zeros.
func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
