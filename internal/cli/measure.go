package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/layoutkit/pkg/layout"
)

type measureOpts struct {
	file       string
	charWidth  float64
	lineHeight float64
	cells      bool
	json       bool
}

type measurement struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Lines  int     `json:"lines"`
}

// measureCommand creates the measure command, the CLI form of the
// text-block size estimate.
func (c *CLI) measureCommand() *cobra.Command {
	var opts measureOpts

	cmd := &cobra.Command{
		Use:   "measure [line...]",
		Short: "Estimate the box needed for lines of text",
		Long: `Estimate the box needed for a block of text: the longest line in
characters times the character width, and one line more than the line count
times the line height. With --cells, wide (East Asian) characters count as two.

Lines come from the arguments, from --file, or from stdin when neither is
given. Metrics default to the [text] section of the config file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := c.Config.Text.metrics()
			if cmd.Flags().Changed("char-width") {
				m.CharWidth = opts.charWidth
			}
			if cmd.Flags().Changed("line-height") {
				m.LineHeight = opts.lineHeight
			}
			if cmd.Flags().Changed("cells") {
				m.Cells = opts.cells
			}
			if m.CharWidth < 0 || m.LineHeight < 0 {
				return fmt.Errorf("text metrics cannot be negative")
			}

			lines, err := measureInput(cmd.InOrStdin(), args, opts.file)
			if err != nil {
				return err
			}
			w, h := layout.TextBlockSize(lines, m)
			res := measurement{Width: w, Height: h, Lines: len(lines)}

			if opts.json {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			printKeyValue("width", formatNum(res.Width))
			printKeyValue("height", formatNum(res.Height))
			printKeyValue("lines", fmt.Sprint(res.Lines))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.file, "file", "", "read lines from a file")
	cmd.Flags().Float64Var(&opts.charWidth, "char-width", 0, "width of one character cell")
	cmd.Flags().Float64Var(&opts.lineHeight, "line-height", 0, "height of one line")
	cmd.Flags().BoolVar(&opts.cells, "cells", false, "measure in terminal display cells")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the result as JSON")

	return cmd
}

// measureInput collects the lines to measure.
func measureInput(stdin io.Reader, args []string, file string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	var (
		data []byte
		err  error
	)
	if file != "" {
		data, err = os.ReadFile(file)
	} else {
		data, err = io.ReadAll(stdin)
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	return layout.SplitLines(string(data)), nil
}
