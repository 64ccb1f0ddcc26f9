package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/layoutkit/pkg/layout"
	"github.com/matzehuels/layoutkit/pkg/pipeline"
	"github.com/matzehuels/layoutkit/pkg/scene"
)

// previewCommand creates the preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		once bool
		opts pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "preview [scene]",
		Short: "Resize a scene interactively",
		Long: `Build a scene, apply its directives and resize it interactively in the
terminal. The children follow every resize through the same subscriptions a
host application would install.

Without a terminal, or with --once, the geometry table is printed once.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd.Context(), args[0], opts, once || !isTerminal(os.Stdout))
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "print the geometry once instead of starting the preview")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "root width override")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "root height override")
	cmd.Flags().StringVar(&opts.Font, "font", "", "TrueType/OpenType font for text items")
	cmd.Flags().Float64Var(&opts.FontSize, "font-size", 0, "font size in points")

	return cmd
}

func (c *CLI) runPreview(ctx context.Context, path string, opts pipeline.Options, once bool) error {
	docs, err := readScenes([]string{path})
	if err != nil {
		return err
	}
	doc := docs[0]
	if err := doc.Validate(); err != nil {
		return err
	}

	root, err := buildLive(pipeline.NewRunner(nil, nil, c.Logger), doc, opts)
	if err != nil {
		return err
	}
	model := NewPreviewModel(doc.Name, root, doc.Resize)

	if once {
		fmt.Println(StyleTitle.Render(doc.Name))
		fmt.Println(geometryTable(model.Snapshot()))
		return nil
	}

	_, err = tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	return err
}

// buildLive builds doc and applies its directives and size overrides,
// leaving the subscriptions installed for further resizing.
func buildLive(runner *pipeline.Runner, doc *scene.Document, opts pipeline.Options) (*scene.Item, error) {
	root, err := runner.Build(doc, opts)
	if err != nil {
		return nil, err
	}
	if _, _, err := runner.ApplyDirectives(root); err != nil {
		return nil, err
	}
	if opts.Width > 0 {
		root.SetProperty(layout.PropWidth, opts.Width)
	}
	if opts.Height > 0 {
		root.SetProperty(layout.PropHeight, opts.Height)
	}
	return root, nil
}
