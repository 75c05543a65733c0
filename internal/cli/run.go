package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Konsultn-Engineering/querykit/config"
	"github.com/Konsultn-Engineering/querykit/connector"
	"github.com/Konsultn-Engineering/querykit/query"

	_ "github.com/Konsultn-Engineering/querykit/providers/mysql"
	_ "github.com/Konsultn-Engineering/querykit/providers/postgres"
	_ "github.com/Konsultn-Engineering/querykit/providers/pq"
	_ "github.com/Konsultn-Engineering/querykit/providers/sqlite"
)

// NewCountCommand creates the count command.
func NewCountCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &QueryFlags{}

	cmd := &cobra.Command{
		Use:   "count <table>",
		Short: "Count the rows a query matches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBuilder(cmd, rootOpts, func(ctx context.Context, b *query.Builder) error {
				if err := flags.apply(b, args[0]); err != nil {
					return err
				}
				n, err := b.Count(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), plural("row", int(n)))
				return nil
			})
		},
	}
	flags.register(cmd)
	return cmd
}

// NewPageCommand creates the page command.
func NewPageCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &QueryFlags{}
	var size, number int

	cmd := &cobra.Command{
		Use:   "page <table>",
		Short: "Fetch one page of rows with the total count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBuilder(cmd, rootOpts, func(ctx context.Context, b *query.Builder) error {
				if err := flags.apply(b, args[0]); err != nil {
					return err
				}
				page, err := b.Paginate(ctx, size, number)
				if err != nil {
					return err
				}
				printPage(cmd.OutOrStdout(), page, flags.Columns)
				return nil
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVar(&size, "size", 15, "rows per page")
	cmd.Flags().IntVar(&number, "page", 1, "page number, starting at 1")
	return cmd
}

// withBuilder loads config, connects with the configured provider and hands
// fn a builder bound to the connection.
func withBuilder(cmd *cobra.Command, opts *RootOptions, fn func(context.Context, *query.Builder) error) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.Driver != "" {
		cfg.Driver = opts.Driver
	}

	logger := slog.New(slog.DiscardHandler)
	if opts.Verbose {
		logCfg := cfg.Log
		logCfg.Level = "debug"
		if logger, err = config.NewLogger(cmd.ErrOrStderr(), logCfg); err != nil {
			return err
		}
	}

	c, err := connector.New(cfg.Driver, cfg.Connection, connector.WithLogger(logger))
	if err != nil {
		return err
	}
	defer c.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	conn, err := c.ConnectWithRetry(ctx, cfg.Connection.Retry.Options())
	if err != nil {
		return err
	}
	defer conn.Close()

	if cfg.Connection.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Connection.QueryTimeout)
		defer cancel()
	}
	return fn(ctx, query.New(query.WithConnection(conn), query.WithLogger(logger)))
}

func printPage(w io.Writer, page *query.Page, columns []string) {
	color.New(color.FgCyan, color.Bold).Fprintf(w, "page %d of %d (%s, %s)\n",
		page.PageNumber, page.LastPage, plural("row", int(page.Total)), plural("page", page.LastPage))
	for _, row := range page.Rows {
		cols := columns
		if len(cols) == 0 {
			cols = sortedKeys(row)
		}
		for i, col := range cols {
			if i > 0 {
				fmt.Fprint(w, "  ")
			}
			fmt.Fprintf(w, "%s=%v", color.GreenString(col), row[col])
		}
		fmt.Fprintln(w)
	}
}
