package cli

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphic/pkg/config"
	"github.com/matzehuels/graphic/pkg/errors"
	"github.com/matzehuels/graphic/pkg/graph"
	graphio "github.com/matzehuels/graphic/pkg/io"
	"github.com/matzehuels/graphic/pkg/render"
	"github.com/matzehuels/graphic/pkg/style"
)

type renderOpts struct {
	formats string
	output  string
	style   styleFlags
}

// renderCommand creates the render command, which converts a saved graph.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <file.grphc|file.json>",
		Short: "Convert a saved graph to another format",
		Long: `Render loads a .grphc or JSON graph, optionally restyles it and writes it
in the requested formats. Style flags apply only the changes they name, so
--fill red recolours the nodes and leaves the layout alone.

Examples:
  graphic render drawing.grphc -o drawing.tex
  graphic render drawing.grphc --rotation 90 -f svg,pdf -o rotated`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "comma-separated formats (default from --output extension, else tikz)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file or base path")
	opts.style.register(cmd)

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts renderOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	formats, err := resolveFormats(opts.formats, opts.output)
	if err != nil {
		return err
	}
	paths, err := c.convert(cmd, input, formats, opts, cfg)
	if err != nil {
		return err
	}
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// convert loads input, applies the style flags and writes every format. It
// returns the files written, which is empty when output went to stdout.
func (c *CLI) convert(cmd *cobra.Command, input string, formats []render.Format, opts renderOpts, cfg config.Config) ([]string, error) {
	g, err := loadGraph(input, cfg)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded graph", "path", input, "nodes", g.NodeCount(), "edges", g.EdgeCount())

	if err := restyle(cmd, &opts.style, g, cfg.StyleParams()); err != nil {
		return nil, err
	}
	artifacts, err := c.renderAll(cmd.Context(), g, formats, cfg.ExportConfig())
	if err != nil {
		return nil, err
	}
	return writeArtifacts(c.out, artifacts, formats, opts.output)
}

// loadGraph reads a .grphc or JSON file, chosen by extension.
func loadGraph(path string, cfg config.Config) (*graph.Graph, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".grphc":
		return graphio.LoadGrphc(path, graphio.Resolution{X: cfg.Display.XDPI, Y: cfg.Display.YDPI})
	case ".json":
		return graphio.ImportJSON(path)
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "cannot read %s: want .grphc or .json", path)
}

// restyle applies the change behind every style flag the user set.
func restyle(cmd *cobra.Command, flags *styleFlags, g *graph.Graph, base style.Params) error {
	changes := flags.changes(cmd)
	if len(changes) == 0 {
		return nil
	}
	p, err := flags.params(cmd, base)
	if err != nil {
		return err
	}
	for _, ch := range changes {
		style.Apply(g, ch, p)
	}
	return nil
}

// renderAll encodes g in every format, showing a spinner for the formats
// that shell out or rasterise.
func (c *CLI) renderAll(ctx context.Context, g *graph.Graph, formats []render.Format, cfg config.ExportConfig) (map[render.Format][]byte, error) {
	out := make(map[render.Format][]byte, len(formats))
	for _, f := range formats {
		var spin *Spinner
		if slow(f) {
			spin = newSpinner(ctx, "Rendering "+string(f)+"...")
			spin.Start()
		}
		data, err := render.Bytes(ctx, g.Clone(), f, cfg)
		if spin != nil {
			if err != nil {
				spin.StopWithError("Rendering " + string(f) + " failed")
			} else {
				spin.Stop()
			}
		}
		if err != nil {
			return nil, err
		}
		out[f] = data
	}
	return out, nil
}

func slow(f render.Format) bool {
	switch f {
	case render.FormatPDF, render.FormatNeato, render.FormatPNG, render.FormatJPG:
		return true
	}
	return false
}
