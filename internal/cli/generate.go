package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphic/pkg/generate"
	"github.com/matzehuels/graphic/pkg/pipeline"
	"github.com/matzehuels/graphic/pkg/render"
)

type generateOpts struct {
	n, m    int
	noEdges bool
	formats string
	output  string
	noCache bool
	refresh bool
	style   styleFlags
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate <family>",
		Short: "Generate, style and export a graph family",
		Long: `Generate builds a graph of the named family, styles it and writes it in
one or more formats. Without --output a single text format goes to stdout.

Examples:
  graphic generate petersen -n 5 -m 2 --prefix v -o petersen.tex
  graphic generate wheel -n 7 -f svg,png -o out/wheel
  graphic generate bipartite -n 3 -m 4 --prefix u --bottom-prefix v`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeFamilies,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd, args[0], opts)
		},
	}

	cmd.Flags().IntVarP(&opts.n, "n", "n", 0, "first family parameter (default: the family's default)")
	cmd.Flags().IntVarP(&opts.m, "m", "m", 0, "second family parameter, for two-parameter families")
	cmd.Flags().BoolVar(&opts.noEdges, "no-edges", false, "place the nodes only")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "comma-separated formats (default from --output extension, else tikz)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file or base path")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "rebuild even if cached")
	opts.style.register(cmd)

	return cmd
}

func (c *CLI) runGenerate(cmd *cobra.Command, family string, opts generateOpts) error {
	f, ok := generate.Lookup(family)
	if !ok {
		_, err := generate.Generate(family, generate.Params{})
		return err
	}
	params := f.Defaults()
	if cmd.Flags().Changed("n") {
		params.N = opts.n
	}
	if cmd.Flags().Changed("m") {
		params.M = opts.m
	}
	params.DrawEdges = !opts.noEdges
	return c.exportFamily(cmd, f, params, opts)
}

// exportFamily runs the pipeline for one family and writes the artifacts.
func (c *CLI) exportFamily(cmd *cobra.Command, f generate.Family, params generate.Params, opts generateOpts) error {
	ctx := cmd.Context()
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	st, err := opts.style.params(cmd, cfg.StyleParams())
	if err != nil {
		return err
	}
	formats, err := resolveFormats(opts.formats, opts.output)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	names := make([]string, len(formats))
	for i, fm := range formats {
		names[i] = string(fm)
	}
	res, err := runner.Execute(ctx, pipeline.Options{
		Family:  f.Name,
		Params:  params,
		Style:   st,
		Formats: names,
		Refresh: opts.refresh,
		Export:  cfg.ExportConfig(),
	})
	if err != nil {
		return err
	}

	paths, err := writeArtifacts(c.out, res.Artifacts, formats, opts.output)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return nil
	}
	prog.done("Generated " + f.Title)
	printSuccess("%s (%s)", f.Title, describe(formats))
	printStats(res.Stats.NodeCount, res.Stats.EdgeCount, res.CacheInfo.GraphHit && res.CacheInfo.RenderHit)
	for _, p := range paths {
		printFile(p)
	}
	if len(formats) == 1 && formats[0] == render.FormatTikZ {
		printNextStep("Include it with", `\input{`+paths[0]+`}`)
	}
	return nil
}

// completeFamilies offers family names for shell completion.
func completeFamilies(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return generate.Names(), cobra.ShellCompDirectiveNoFileComp
}
