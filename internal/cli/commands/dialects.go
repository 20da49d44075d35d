package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/fluentql/internal/cli/config"
	"github.com/leapstack-labs/fluentql/pkg/dialect"
)

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List registered SQL dialects",
		Long:  `List the SQL dialects available as compilation targets.`,
		Run: func(cmd *cobra.Command, _ []string) {
			cfg := config.GetCurrentConfig()

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Dialect", "Default"})

			for _, name := range dialect.List() {
				mark := ""
				if name == cfg.Dialect {
					mark = "*"
				}
				t.AppendRow(table.Row{name, mark})
			}

			t.Render()
		},
	}
}
