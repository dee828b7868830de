package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphic/pkg/generate"
)

// familiesCommand lists the graph families.
func (c *CLI) familiesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "families",
		Short: "List the graph families and their parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(c.out, familiesTable(generate.Families()))
			return nil
		},
	}
}

func familiesTable(fams []generate.Family) string {
	rows := make([][]string, 0, len(fams))
	for _, f := range fams {
		params := make([]string, len(f.Params))
		for i, p := range f.Params {
			params[i] = fmt.Sprintf("%s ≥ %d (default %d)", p.Name, p.Min, p.Default)
		}
		rows = append(rows, []string{f.Name, f.Title, strings.Join(params, ", ")})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Family", "Title", "Parameters").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return StyleHighlight
			case col == 2:
				return StyleDim
			}
			return StyleValue
		}).
		Render()
}
