package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/layoutkit/pkg/pipeline"
	"github.com/matzehuels/layoutkit/pkg/render"
	"github.com/matzehuels/layoutkit/pkg/render/tree"
)

type diagramOpts struct {
	output   string
	format   string
	frame    int
	detailed bool
	noCache  bool
	pipeline pipeline.Options
}

// diagramCommand creates the diagram command, which draws the item tree of a
// laid-out scene with Graphviz.
func (c *CLI) diagramCommand() *cobra.Command {
	opts := diagramOpts{format: render.FormatSVG}

	cmd := &cobra.Command{
		Use:   "diagram [scene]",
		Short: "Render the item tree of a scene",
		Long: `Render the item tree of a laid-out scene as a Graphviz diagram.

With --detailed every node shows its kind, position and size. DOT output
goes to stdout unless --output is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.format = strings.ToLower(opts.format)
			switch opts.format {
			case render.FormatSVG, render.FormatDOT, render.FormatPDF, render.FormatPNG:
			default:
				return fmt.Errorf("invalid format: %s (must be svg, dot, pdf or png)", opts.format)
			}
			return c.runDiagram(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <scene>.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), dot, pdf, png")
	cmd.Flags().IntVar(&opts.frame, "frame", 0, "frame to draw: 0 initial, k for the k-th resize step")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show geometry in each node")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	addPipelineFlags(cmd, &opts.pipeline)

	return cmd
}

func (c *CLI) runDiagram(ctx context.Context, stdout io.Writer, path string, opts diagramOpts) error {
	logger := loggerFromContext(ctx)

	docs, err := readScenes([]string{path})
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := runner.Execute(ctx, docs[0], opts.pipeline)
	if err != nil {
		return err
	}
	root, err := frameRoot(res, opts.frame)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	data, err := tree.Render(ctx, root, opts.format, tree.Options{Detailed: opts.detailed})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %s diagram", opts.format))

	if opts.output == "" && opts.format == render.FormatDOT {
		_, err := stdout.Write(data)
		return err
	}
	out := opts.output
	if out == "" {
		out = outputPath(path, res.Name, applyOpts{format: opts.format}, false)
	}
	if err := writeOutput(out, data); err != nil {
		return err
	}
	printSuccess("%s diagram", res.Name)
	printFile(out)
	return nil
}
