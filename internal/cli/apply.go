package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/layoutkit/pkg/pipeline"
	"github.com/matzehuels/layoutkit/pkg/render"
	"github.com/matzehuels/layoutkit/pkg/render/wireframe"
	"github.com/matzehuels/layoutkit/pkg/scene"
)

// Output formats of the apply command besides the render formats.
const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// validFormats is the set of formats apply can write.
var validFormats = map[string]bool{
	formatJSON:       true,
	formatYAML:       true,
	render.FormatSVG: true,
	render.FormatPDF: true,
	render.FormatPNG: true,
}

// applyOpts holds the command-line flags for the apply command.
type applyOpts struct {
	output  string  // output file (single input) or directory (several inputs)
	format  string  // json, yaml, svg, pdf or png
	frame   int     // 0 for the initial geometry, k for the k-th resize step
	labels  bool    // label wireframe boxes
	scale   float64 // PNG scale factor
	table   bool    // print the geometry table
	noCache bool

	pipeline pipeline.Options
}

// applyCommand creates the apply command.
func (c *CLI) applyCommand() *cobra.Command {
	opts := applyOpts{format: formatJSON, scale: 2}

	cmd := &cobra.Command{
		Use:   "apply [scene...]",
		Short: "Lay out scene documents and write their geometry",
		Long: `Lay out one or more scene documents (TOML, YAML or JSON).

Each scene is built, its directives (auto_size, equal_size, align) are applied
and its resize steps replayed. The geometry is written as JSON or YAML, or
drawn as a wireframe (svg, pdf, png).

With a single scene and no --output, JSON and YAML go to stdout. Otherwise
each scene is written next to its input (or into --output) as <name>.<format>.

Results are cached; --refresh recomputes and --no-cache skips the cache.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.format = strings.ToLower(opts.format)
			if !validFormats[opts.format] {
				return fmt.Errorf("invalid format: %s (must be json, yaml, svg, pdf or png)", opts.format)
			}
			if opts.frame < 0 {
				return fmt.Errorf("invalid frame: %d", opts.frame)
			}
			return c.runApply(cmd.Context(), cmd.OutOrStdout(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, or directory for several scenes")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: json (default), yaml, svg, pdf, png")
	cmd.Flags().IntVar(&opts.frame, "frame", 0, "frame to draw: 0 initial, k for the k-th resize step")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "label wireframe boxes")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.table, "table", false, "print a geometry table")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	addPipelineFlags(cmd, &opts.pipeline)

	return cmd
}

// addPipelineFlags registers the flags shared by commands that run the
// pipeline.
func addPipelineFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "root width override")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "root height override")
	cmd.Flags().StringVar(&opts.Font, "font", "", "TrueType/OpenType font for text items")
	cmd.Flags().Float64Var(&opts.FontSize, "font-size", 0, "font size in points")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")
	cmd.Flags().IntVarP(&opts.Concurrency, "concurrency", "j", pipeline.DefaultConcurrency, "scenes laid out in parallel")
}

// readScenes decodes every path.
func readScenes(paths []string) ([]*scene.Document, error) {
	docs := make([]*scene.Document, len(paths))
	for i, p := range paths {
		doc, err := scene.ReadFile(p)
		if err != nil {
			return nil, err
		}
		docs[i] = doc
	}
	return docs, nil
}

func (c *CLI) runApply(ctx context.Context, stdout io.Writer, paths []string, opts applyOpts) error {
	prog := newProgress(loggerFromContext(ctx))

	docs, err := readScenes(paths)
	if err != nil {
		return err
	}
	prog.step("read scenes", "count", len(docs))

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()
	prog.step("opened cache", "backend", c.Config.Cache.Backend, "disabled", opts.noCache)

	spinner := newSpinner(ctx, fmt.Sprintf("Laying out %d scene(s)", len(docs)))
	spinner.Start()
	results, err := runner.ExecuteAll(ctx, docs, opts.pipeline)
	spinner.Stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Laid out %d scene(s)", len(results)))

	toStdout := len(paths) == 1 && opts.output == "" && (opts.format == formatJSON || opts.format == formatYAML)
	for i, res := range results {
		data, err := encodeResult(res, opts)
		if err != nil {
			return fmt.Errorf("%s: %w", paths[i], err)
		}

		if toStdout {
			if _, err := stdout.Write(data); err != nil {
				return err
			}
			continue
		}

		path := outputPath(paths[i], res.Name, opts, len(paths) > 1)
		if err := writeOutput(path, data); err != nil {
			return err
		}
		printSuccess("%s", res.Name)
		printFile(path)
		fmt.Println(statsLine(res.Stats, len(res.Frames), res.CacheInfo.LayoutHit))
		if opts.table {
			fmt.Println(geometryTable(res.Root))
		}
	}

	if !toStdout && len(paths) == 1 {
		printNextStep("Resize it interactively", fmt.Sprintf("%s preview %s", appName, paths[0]))
	}
	return nil
}

// encodeResult serializes res in the requested format.
func encodeResult(res *pipeline.Result, opts applyOpts) ([]byte, error) {
	switch opts.format {
	case formatJSON:
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case formatYAML:
		return yaml.Marshal(res)
	}

	root, err := frameRoot(res, opts.frame)
	if err != nil {
		return nil, err
	}
	var wopts []wireframe.Option
	if opts.labels {
		wopts = append(wopts, wireframe.WithLabels())
	}
	return render.Convert(wireframe.RenderSVG(root, wopts...), opts.format, opts.scale)
}

// frameRoot selects the snapshot to draw.
func frameRoot(res *pipeline.Result, frame int) (scene.Node, error) {
	if frame == 0 {
		return res.Root, nil
	}
	if frame > len(res.Frames) {
		return scene.Node{}, fmt.Errorf("frame %d out of range (scene has %d resize steps)", frame, len(res.Frames))
	}
	return res.Frames[frame-1].Root, nil
}

// outputPath derives where a result is written. With several inputs
// --output names a directory.
func outputPath(input, name string, opts applyOpts, multiple bool) string {
	file := name + "." + opts.format
	switch {
	case opts.output == "":
		return filepath.Join(filepath.Dir(input), file)
	case multiple:
		return filepath.Join(opts.output, file)
	default:
		return opts.output
	}
}

func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
