package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/qualcanal/qualcanal/internal/diff"
	"github.com/qualcanal/qualcanal/internal/filter"
	"github.com/qualcanal/qualcanal/internal/match"
	"github.com/qualcanal/qualcanal/internal/scraper"
	"github.com/qualcanal/qualcanal/internal/storage"
)

type diffOptions struct {
	format      string
	save        bool
	team        string
	competition string
	channel     string
	day         string
}

func newDiffCmd(root *rootOptions) *cobra.Command {
	opts := &diffOptions{}

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Compare a fresh fetch with the latest stored snapshot",
		Long: `Compare a fresh fetch with the latest stored snapshot and list new,
rescheduled and dropped matches. Without a stored snapshot every match is new.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format := OutputFormat(strings.ToLower(opts.format))
			if format != FormatText && format != FormatJSON {
				return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", opts.format)
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
			if err := a.openSink(ctx); err != nil {
				return err
			}

			var previous []*match.Match
			snap, err := a.sink.LatestSnapshot(ctx, scraper.Source)
			switch {
			case errors.Is(err, storage.ErrNoSnapshot):
			case err != nil:
				return fmt.Errorf("loading snapshot: %w", err)
			default:
				previous = snap.Matches
			}

			current, err := a.scraper.FetchMatches(ctx, nil)
			if err != nil {
				return fmt.Errorf("fetching matches: %w", err)
			}

			result := diff.Compare(previous, current, f)

			if opts.save {
				next := &storage.Snapshot{Source: scraper.Source, FetchedAt: time.Now().UTC(), Matches: current}
				if err := a.sink.SaveSnapshot(ctx, next); err != nil {
					return fmt.Errorf("saving snapshot: %w", err)
				}
			}

			out := cmd.OutOrStdout()
			if format == FormatJSON {
				enc := json.NewEncoder(out)
				enc.SetEscapeHTML(false)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			writeDiffText(out, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&opts.save, "save", false, "Store the fresh batch as the new snapshot")
	addFilterFlags(cmd, &opts.team, &opts.competition, &opts.channel, &opts.day)

	return cmd
}

func writeDiffText(w io.Writer, result *diff.Result) {
	if result.Empty() {
		fmt.Fprintln(w, "No changes since the last snapshot.")
		return
	}

	if len(result.New) > 0 {
		fmt.Fprintf(w, "New (%d):\n", len(result.New))
		for _, m := range result.New {
			fmt.Fprintf(w, "  + %s\n", formatMatch(m))
		}
	}
	if len(result.Changed) > 0 {
		fmt.Fprintf(w, "Changed (%d):\n", len(result.Changed))
		for _, c := range result.Changed {
			fmt.Fprintf(w, "  ~ %s: %s %q -> %q\n", formatMatch(c.Match), c.Kind, c.OldValue, c.NewValue)
		}
	}
	if len(result.Removed) > 0 {
		fmt.Fprintf(w, "Removed (%d):\n", len(result.Removed))
		for _, m := range result.Removed {
			fmt.Fprintf(w, "  - %s\n", formatMatch(m))
		}
	}
}
