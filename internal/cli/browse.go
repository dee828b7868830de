package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphic/pkg/generate"
)

// browseCommand opens the interactive family browser and exports the chosen
// graph like generate does.
func (c *CLI) browseCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the families interactively and export one",
		RunE: func(cmd *cobra.Command, args []string) error {
			final, err := tea.NewProgram(NewBrowseModel(), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			sel := final.(BrowseModel).Selected
			if sel == nil {
				printInfo("Nothing selected")
				return nil
			}
			if opts.output == "" {
				opts.output = sel.Family + ".tex"
			}
			f, _ := generate.Lookup(sel.Family)
			return c.exportFamily(cmd, f, sel.Params, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "comma-separated formats (default from --output extension)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file or base path (default <family>.tex)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the cache")
	opts.style.register(cmd)

	return cmd
}
