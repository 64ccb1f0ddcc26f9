package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/layoutkit/pkg/layout"
	"github.com/matzehuels/layoutkit/pkg/pipeline"
	"github.com/matzehuels/layoutkit/pkg/scene"
)

const (
	defaultPreviewStep = 10
	minPreviewStep     = 1
	maxPreviewStep     = 320
)

var (
	previewSizeStyle = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	previewHelpStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// PreviewModel - Interactive resizing
// =============================================================================

// PreviewModel is the bubbletea model for resizing a live scene. Every
// resize goes through the root's width and height properties, so the
// standing auto-size subscriptions recompute the children.
type PreviewModel struct {
	Name   string
	Root   *scene.Item
	Steps  []scene.Size
	Width  float64
	Height float64
	Step   float64

	// StepIndex is the next resize step of the document to replay.
	StepIndex int

	snapshot      scene.Node
	initialWidth  float64
	initialHeight float64
}

// NewPreviewModel creates a preview of a built scene whose directives have
// been applied.
func NewPreviewModel(name string, root *scene.Item, steps []scene.Size) PreviewModel {
	m := PreviewModel{
		Name:          name,
		Root:          root,
		Steps:         steps,
		Width:         root.Property(layout.PropWidth),
		Height:        root.Property(layout.PropHeight),
		Step:          defaultPreviewStep,
		initialWidth:  root.Property(layout.PropWidth),
		initialHeight: root.Property(layout.PropHeight),
	}
	m.refresh()
	return m
}

// Snapshot returns the geometry currently shown.
func (m PreviewModel) Snapshot() scene.Node { return m.snapshot }

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "left", "h":
		m.resize(m.Width-m.Step, m.Height)
	case "right", "l":
		m.resize(m.Width+m.Step, m.Height)
	case "up", "k":
		m.resize(m.Width, m.Height-m.Step)
	case "down", "j":
		m.resize(m.Width, m.Height+m.Step)
	case "+", "=":
		m.Step = min(m.Step*2, maxPreviewStep)
	case "-", "_":
		m.Step = max(m.Step/2, minPreviewStep)
	case "n":
		if len(m.Steps) > 0 {
			w, h := pipeline.ResizeStep(m.Root, m.Steps[m.StepIndex%len(m.Steps)])
			m.StepIndex++
			m.resize(w, h)
		}
	case "r":
		m.StepIndex = 0
		m.resize(m.initialWidth, m.initialHeight)
	}
	return m, nil
}

// resize applies a new root size, clamped at zero.
func (m *PreviewModel) resize(w, h float64) {
	m.Width, m.Height = max(w, 0), max(h, 0)
	m.Root.Resize(m.Width, m.Height)
	m.refresh()
}

func (m *PreviewModel) refresh() {
	scene.Arrange(m.Root)
	m.snapshot = scene.Snapshot(m.Root)
}

func (m PreviewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Name))
	b.WriteString("  ")
	b.WriteString(previewSizeStyle.Render(fmt.Sprintf("%s × %s", formatNum(m.Width), formatNum(m.Height))))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  step %s", formatNum(m.Step))))
	if len(m.Steps) > 0 {
		b.WriteString(StyleDim.Render(fmt.Sprintf("  resize %d/%d", m.StepIndex%len(m.Steps), len(m.Steps))))
	}
	b.WriteString("\n\n")

	b.WriteString(geometryTable(m.snapshot))
	b.WriteString("\n\n")

	help := "←/→ width  ↑/↓ height  +/- step  r reset  q quit"
	if len(m.Steps) > 0 {
		help = "←/→ width  ↑/↓ height  +/- step  n next resize  r reset  q quit"
	}
	b.WriteString(previewHelpStyle.Render(help))
	return b.String()
}
