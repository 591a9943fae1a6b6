package cli

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"txdash/internal/config"
	"txdash/internal/core"
	"txdash/internal/export"
	applog "txdash/internal/log"
	"txdash/internal/source"
)

// rootFlags are the persistent flags overriding the environment configuration.
type rootFlags struct {
	Source   string
	URL      string
	File     string
	Timeout  time.Duration
	LogLevel string
}

// queryApp carries state resolved in PersistentPreRunE to the subcommands.
type queryApp struct {
	flags  rootFlags
	cfg    *config.Config
	logger *applog.Logger
	src    source.Source
}

// NewQueryCmd returns the txquery command tree.
func NewQueryCmd() *cobra.Command {
	app := &queryApp{}

	cmd := &cobra.Command{
		Use:   "txquery",
		Short: "Query a transaction dataset from the terminal.",
		Long: `txquery evaluates the dashboard queries (paged listing, statistics,
price ranges, categories) against the configured transaction source and
prints the result as indented JSON. Configuration is read from the
environment and .env, and can be overridden with flags.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init(cmd)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&app.flags.Source, "source", "", "data source: http, file or sheets (default from DATA_SOURCE)")
	pf.StringVar(&app.flags.URL, "url", "", "dataset URL for the http source")
	pf.StringVar(&app.flags.File, "file", "", "dataset path for the file source")
	pf.DurationVar(&app.flags.Timeout, "timeout", 0, "per-fetch timeout")
	pf.StringVar(&app.flags.LogLevel, "log-level", "", "debug, info, warn or error")

	cmd.AddCommand(
		app.transactionsCmd(),
		app.monthCmd("statistics", "Sales total and sold/unsold counts for a month", func(txs []core.Transaction, month string) any {
			return core.ComputeStatistics(core.FilterByMonth(txs, month))
		}),
		app.monthCmd("price-ranges", "Item counts per price bucket for a month", func(txs []core.Transaction, month string) any {
			return core.PriceRanges(core.FilterByMonth(txs, month))
		}),
		app.monthCmd("categories", "Item counts per category for a month", func(txs []core.Transaction, month string) any {
			return core.Categories(core.FilterByMonth(txs, month))
		}),
		app.dashboardCmd(),
		app.exportCmd(),
	)
	return cmd
}

func (a *queryApp) init(cmd *cobra.Command) error {
	LoadEnvFile()
	cfg := config.Load()

	flags := cmd.Flags()
	if flags.Changed("source") {
		cfg.DataSource = a.flags.Source
	}
	if flags.Changed("url") {
		cfg.SourceURL = a.flags.URL
	}
	if flags.Changed("file") {
		cfg.SourceFile = a.flags.File
	}
	if flags.Changed("timeout") {
		cfg.FetchTimeout = a.flags.Timeout
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.flags.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// stdout carries results only
	a.logger = cfg.Logger(cmd.ErrOrStderr()).WithComponent(applog.ComponentCLI)
	src, err := NewSource(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.src = src
	return nil
}

func (a *queryApp) fetch(cmd *cobra.Command) ([]core.Transaction, error) {
	start := time.Now()
	txs, err := a.src.Fetch(cmd.Context())
	if err != nil {
		errorType := applog.ErrorTypeUpstream
		if errors.Is(err, context.DeadlineExceeded) {
			errorType = applog.ErrorTypeTimeout
		}
		a.logger.ErrorContext(cmd.Context(), "Transaction fetch failed",
			applog.FieldError, err.Error(),
			applog.FieldErrorType, errorType,
			applog.FieldSource, a.cfg.DataSource)
		return nil, err
	}
	a.logger.DebugContext(cmd.Context(), "Transactions fetched",
		applog.FieldSource, a.cfg.DataSource,
		applog.FieldCount, len(txs),
		applog.FieldDuration, time.Since(start).Milliseconds())
	return txs, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *queryApp) transactionsCmd() *cobra.Command {
	var q core.Query
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "One page of transactions for a month, optionally searched",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			txs, err := a.fetch(cmd)
			if err != nil {
				return err
			}
			return printJSON(cmd, core.List(txs, q))
		},
	}
	cmd.Flags().StringVar(&q.Month, "month", "March", "month name or number")
	cmd.Flags().StringVar(&q.Search, "search", "", "match title, description or price")
	cmd.Flags().IntVar(&q.Page, "page", core.DefaultPage, "page number, starting at 1")
	cmd.Flags().IntVar(&q.PerPage, "per-page", core.DefaultPerPage, "rows per page")
	return cmd
}

// monthCmd builds a command whose only input is the month.
func (a *queryApp) monthCmd(use, short string, view func([]core.Transaction, string) any) *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			txs, err := a.fetch(cmd)
			if err != nil {
				return err
			}
			return printJSON(cmd, view(txs, month))
		},
	}
	cmd.Flags().StringVar(&month, "month", "March", "month name or number")
	return cmd
}

func (a *queryApp) dashboardCmd() *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Statistics, price ranges and categories for a month in one document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			txs, err := a.fetch(cmd)
			if err != nil {
				return err
			}
			d, err := core.Summarize(cmd.Context(), txs, month)
			if err != nil {
				return err
			}
			return printJSON(cmd, d)
		},
	}
	cmd.Flags().StringVar(&month, "month", "March", "month name or number")
	return cmd
}

func (a *queryApp) exportCmd() *cobra.Command {
	var month, search string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every matching transaction of a month as CSV to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			txs, err := a.fetch(cmd)
			if err != nil {
				return err
			}
			matched := core.Search(core.FilterByMonth(txs, month), search)
			return export.WriteCSV(cmd.OutOrStdout(), matched)
		},
	}
	cmd.Flags().StringVar(&month, "month", "March", "month name or number")
	cmd.Flags().StringVar(&search, "search", "", "match title, description or price")
	return cmd
}
