package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"findex/internal/api"
	"findex/internal/journal"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent API requests from the journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openJournal()
			if err != nil {
				return err
			}
			defer store.Close()

			resp, err := api.NewHistoryService(store).Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, resp)
			}
			out := cmd.OutOrStdout()
			if len(resp.Requests) == 0 {
				fmt.Fprintln(out, "No requests recorded")
				return nil
			}
			fmt.Fprintln(out, renderHistory(resp.Requests, time.Now()))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", journal.DefaultRecentLimit, "Maximum number of entries to show")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print entries as JSON")

	cmd.AddCommand(newHistoryPruneCommand(ctx))
	return cmd
}

func newHistoryPruneCommand(ctx *commandContext) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove journal entries older than the retention window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("days") {
				days = cfg.Journal.RetentionDays
			}
			if days <= 0 {
				return fmt.Errorf("retention must be at least one day (got %d)", days)
			}
			store, err := ctx.openJournal()
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.Prune(cmd.Context(), time.Now().UTC().AddDate(0, 0, -days))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d %s older than %d days\n", removed, pluralize(removed, "entry", "entries"), days)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Retention window in days (defaults to journal.retention_days)")
	return cmd
}

func renderHistory(entries []journal.Entry, now time.Time) string {
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		target := entry.VideoID
		if target == "" {
			target = entry.URL
		}
		rows = append(rows, []string{
			humanize.RelTime(entry.CreatedAt, now, "ago", "from now"),
			entry.Route,
			truncateCell(target, 40),
			entry.Outcome,
			strconv.Itoa(entry.StatusCode),
			humanize.Bytes(uint64(entry.CleanBytes)),
			fmt.Sprintf("%dms", entry.DurationMS),
		})
	}
	return renderTable(
		[]string{"When", "Route", "Video", "Outcome", "Status", "Clean", "Duration"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight},
	)
}

func truncateCell(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit-1]) + "…"
}

func pluralize(n int64, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
