package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Konsultn-Engineering/querykit/dialect"
	"github.com/Konsultn-Engineering/querykit/query"
)

// NewExplainCommand creates the explain command.
func NewExplainCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &QueryFlags{}
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "explain <table>",
		Short: "Print the compiled SQL and bindings for a query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dialect.ByName(flags.Dialect)
			if err != nil {
				return err
			}
			b := query.New(query.WithDialect(d))
			if err := flags.apply(b, args[0]); err != nil {
				return err
			}
			if cmd.Flags().Changed("limit") {
				b.Limit(limit)
			}
			if cmd.Flags().Changed("offset") {
				b.Offset(offset)
			}
			return runExplain(cmd, b)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&flags.Dialect, "dialect", "mysql", "dialect: mysql, tidb, postgres, pq or sqlite")
	cmd.Flags().IntVar(&limit, "limit", 0, "row limit")
	cmd.Flags().IntVar(&offset, "offset", 0, "row offset")

	return cmd
}

func runExplain(cmd *cobra.Command, b *query.Builder) error {
	compiled, err := b.Compile()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	heading := color.New(color.FgCyan, color.Bold)
	heading.Fprintln(out, "SQL")
	fmt.Fprintln(out, "  "+compiled.SQL)

	heading.Fprintf(out, "Bindings (%s)\n", plural("binding", len(compiled.Bindings)))
	for _, bnd := range compiled.Bindings {
		fmt.Fprintf(out, "  %s = %s\n", color.YellowString(string(bnd.Name)), b.Dialect().RenderValue(bnd.Value))
	}

	heading.Fprintln(out, "Debug")
	fmt.Fprintln(out, "  "+compiled.Debug())
	return nil
}
