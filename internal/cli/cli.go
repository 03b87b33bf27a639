package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/qualcanal/qualcanal/internal/api"
	"github.com/qualcanal/qualcanal/internal/export"
	"github.com/qualcanal/qualcanal/internal/filter"
	"github.com/qualcanal/qualcanal/internal/match"
	"github.com/qualcanal/qualcanal/internal/scraper"
	"github.com/qualcanal/qualcanal/internal/storage"
)

const (
	ExitSuccess   = 0
	ExitError     = 1
	ExitNoMatches = 2
)

// exitError carries a process exit code out of a command.
type exitError struct{ code int }

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "qualcanal",
		Short: "Football schedule and TV channels from ondebola.com",
		Long: `qualcanal scrapes the ondebola.com schedule and serves it as JSON.
Each match carries its date, time, teams, competition and broadcast channels.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to YAML config file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "Log format: json or console")

	cmd.AddCommand(newServeCmd(opts), newFetchCmd(opts), newDiffCmd(opts), newExportCmd(opts))
	return cmd
}

func newServeCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(root.configPath, root.logLevel, root.logFormat)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a := newApp(cfg)
			defer a.Close()
			if err := a.openCache(ctx); err != nil {
				return err
			}
			if err := a.openSink(ctx); err != nil {
				return err
			}

			srv := api.New(api.Config{
				Listen:      cfg.API.Listen,
				AllowOrigin: cfg.API.AllowOrigin,
				RateLimit:   cfg.API.RateLimit.Requests,
				RateWindow:  cfg.API.RateLimit.Window,
			}, a.feed())
			return srv.Run(ctx)
		},
	}
}

type fetchOptions struct {
	format      string
	sortOrder   string
	persist     bool
	verbose     bool
	team        string
	competition string
	channel     string
	day         string
}

func newFetchCmd(root *rootOptions) *cobra.Command {
	opts := &fetchOptions{}

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch the schedule once and print it",
		Long: `Fetch the schedule once and print it.
Exits with status 2 when the page yielded no matches.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format := OutputFormat(strings.ToLower(opts.format))
			if format != FormatText && format != FormatJSON && format != FormatICS {
				return fmt.Errorf("invalid format: %s (must be 'text', 'json' or 'ics')", opts.format)
			}
			order := SortOrder(strings.ToLower(opts.sortOrder))
			if !order.valid() {
				return fmt.Errorf("invalid sort: %s (must be 'source', 'time', 'home' or 'competition')", opts.sortOrder)
			}
			f, err := filter.Parse(opts.team, opts.competition, opts.channel, opts.day)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(root.configPath, root.logLevel, root.logFormat)
			if err != nil {
				return err
			}

			a := newApp(cfg)
			defer a.Close()

			ctx := cmd.Context()
			if opts.persist {
				if err := a.openSink(ctx); err != nil {
					return err
				}
			}

			payload, err := a.feed().Refresh(ctx)
			if err != nil {
				return fmt.Errorf("fetching matches: %w", err)
			}
			matches := payload.Matches

			total := len(matches)
			matches = f.Apply(matches)
			sortMatches(matches, order)

			result := &OutputResult{
				FetchedAt: payload.FetchedAt,
				Stale:     payload.Stale,
				Source:    a.scraper.URL(),
				Count:     len(matches),
				Total:     total,
				Matches:   matches,
				Filter:    f.String(),
			}
			if err := WriteOutput(cmd.OutOrStdout(), result, format, opts.verbose); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}

			if total == 0 {
				return &exitError{code: ExitNoMatches}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "text", "Output format: text, json or ics")
	cmd.Flags().StringVar(&opts.sortOrder, "sort", string(SortBySource), "Sort order: source, time, home or competition")
	cmd.Flags().BoolVar(&opts.persist, "persist", false, "Save the batch as a snapshot in the configured database")
	cmd.Flags().BoolVar(&opts.verbose, "verbose", false, "Show the raw source line for each match")
	addFilterFlags(cmd, &opts.team, &opts.competition, &opts.channel, &opts.day)

	return cmd
}

type exportOptions struct {
	dir          string
	fromSnapshot bool
}

func newExportCmd(root *rootOptions) *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write matches to timestamped JSON and CSV files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(root.configPath, root.logLevel, root.logFormat)
			if err != nil {
				return err
			}

			a := newApp(cfg)
			defer a.Close()

			ctx := cmd.Context()
			var matches []*match.Match
			if opts.fromSnapshot {
				if err := a.openSink(ctx); err != nil {
					return err
				}
				snap, err := a.sink.LatestSnapshot(ctx, scraper.Source)
				if errors.Is(err, storage.ErrNoSnapshot) {
					return fmt.Errorf("no stored snapshot for %s; run fetch --persist first", scraper.Source)
				}
				if err != nil {
					return fmt.Errorf("loading snapshot: %w", err)
				}
				matches = snap.Matches
			} else {
				matches, err = a.scraper.FetchMatches(ctx, nil)
				if err != nil {
					return fmt.Errorf("fetching matches: %w", err)
				}
			}

			files, err := export.ToDir(opts.dir, matches, time.Now())
			if err != nil {
				return fmt.Errorf("exporting: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Exported %d matches\n", len(matches))
			fmt.Fprintln(out, files.JSON)
			fmt.Fprintln(out, files.CSV)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.dir, "dir", ".", "Directory to write the export files to")
	cmd.Flags().BoolVar(&opts.fromSnapshot, "from-snapshot", false, "Export the latest stored snapshot instead of fetching")

	return cmd
}

func addFilterFlags(cmd *cobra.Command, team, competition, channel, day *string) {
	cmd.Flags().StringVar(team, "team", "", "Only matches involving these teams (comma-separated)")
	cmd.Flags().StringVar(competition, "competition", "", "Only matches in these competitions (comma-separated)")
	cmd.Flags().StringVar(channel, "channel", "", "Only matches on these channels (comma-separated)")
	cmd.Flags().StringVar(day, "day", "", "Only matches on these weekdays, e.g. sab,dom or fds")
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
