// Package cli implements the querykit command line.
package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Driver     string
	Verbose    bool
}

// NewRootCommand creates the root command for the querykit CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "querykit",
		Short: "Build, inspect and run SQL queries",
		Long: `querykit compiles builder queries to dialect-specific SQL with named bindings.

explain prints the compiled statement without touching a database; count and
page connect with the configured driver and run the query.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default ./querykit.yaml)")
	cmd.PersistentFlags().StringVar(&opts.Driver, "driver", "", "provider name, overrides the config file")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log executed queries")

	cmd.AddCommand(NewExplainCommand(opts))
	cmd.AddCommand(NewCountCommand(opts))
	cmd.AddCommand(NewPageCommand(opts))

	return cmd
}
