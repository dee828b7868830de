package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphic/pkg/colour"
)

// colourCommand resolves colours and lists the named ones.
func (c *CLI) colourCommand() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:     "colour [name|#rrggbb]",
		Aliases: []string{"color"},
		Short:   "Resolve a colour or list the named colours",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if list || len(args) == 0 {
				for _, name := range colour.Names() {
					fmt.Fprintln(c.out, swatch(colour.MustParse(name))+" "+name)
				}
				return nil
			}
			col, err := colour.Parse(args[0])
			if err != nil {
				return err
			}
			r, g, b := col.Fractions()
			printKeyValue("colour", swatch(col)+" "+col.Hex())
			if name, ok := col.Name(); ok {
				printKeyValue("tikz", name)
			} else {
				printKeyValue("tikz", "defined locally")
			}
			printKeyValue("rgb", fmt.Sprintf("%d, %d, %d", col.R, col.G, col.B))
			printKeyValue("fraction", fmt.Sprintf("%.3f, %.3f, %.3f", r, g, b))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&list, "list", "l", false, "list the colours TikZ knows by name")
	return cmd
}

func swatch(c colour.RGB) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render("  ")
}
