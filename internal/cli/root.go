// Package cli provides the command-line interface for fluentql.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/fluentql/internal/cli/commands"
	"github.com/leapstack-labs/fluentql/internal/cli/config"
	"github.com/leapstack-labs/fluentql/pkg/dialect"

	// Register the built-in dialects.
	_ "github.com/leapstack-labs/fluentql/pkg/dialects/ansi"
	_ "github.com/leapstack-labs/fluentql/pkg/dialects/mysql"
	_ "github.com/leapstack-labs/fluentql/pkg/dialects/postgres"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fluentql",
		Short: "fluentql - Fluent SQL Builder",
		Long: `fluentql builds SQL statements from fluent query expressions.

Queries are described in Starlark scripts against a typed expression
model and compiled to a target SQL dialect.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.LoadConfig(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			if cfg.Verbose {
				if configFile := config.GetConfigFileUsed(); configFile != "" {
					fmt.Fprintf(os.Stderr, "Using config file: %s\n", configFile)
				}
			}

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./fluentql.yaml)")
	rootCmd.PersistentFlags().StringP("dialect", "d", "", "SQL dialect to compile to")
	rootCmd.PersistentFlags().Bool("all-caps", false, "Render keywords, operators and functions in upper case")
	rootCmd.PersistentFlags().Bool("keywords-caps", false, "Render keywords in upper case")
	rootCmd.PersistentFlags().Bool("break-lines", false, "Break statements across lines at each section")
	rootCmd.PersistentFlags().Bool("indent", false, "Indent broken lines")
	rootCmd.PersistentFlags().Bool("absolute-names", false, "Qualify column names with their table name")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	// Register completion for the dialect flag
	_ = rootCmd.RegisterFlagCompletionFunc("dialect", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return dialect.List(), cobra.ShellCompDirectiveNoFileComp
	})

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewRenderCommand())
	rootCmd.AddCommand(commands.NewDialectsCommand())
	rootCmd.AddCommand(commands.NewReplCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
