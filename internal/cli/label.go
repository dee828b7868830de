package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphic/pkg/errors"
	"github.com/matzehuels/graphic/pkg/label"
)

// labelCommand previews how label markup is parsed.
func (c *CLI) labelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "label <markup>",
		Short: "Check label markup such as v_{i+1}^2",
		Long: `Label parses TeX-style markup the way the exporters do and prints the
plain reading, the HTML preview and each run with its font and script level.
Invalid markup is reported along with the typewriter fallback it gets.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := args[0]
			if err := label.Valid(src); err != nil {
				printWarning("%s", errors.UserMessage(err))
				printKeyValue("fallback", label.Fallback(src))
				return nil
			}
			printKeyValue("plain", label.Plain(src))
			printKeyValue("html", label.ToHTML(src))
			for _, s := range label.SpansOf(src) {
				printDetail("%-8s %-10q shift %+d  depth %d", s.Font, s.Text, s.Shift, s.Depth)
			}
			fmt.Fprintln(c.out)
			return nil
		},
	}
}
