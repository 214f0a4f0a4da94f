package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"findex/internal/config"
	"findex/internal/deps"
	"findex/internal/language"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show configuration, dependency and journal status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			writeSection(out, "Configuration", configLines(cfg, ctx.configPath, ctx.configSeen), colorize)
			writeSection(out, "Server", serverLines(cfg), colorize)

			statuses := deps.WithVersions(cmd.Context(), deps.CheckBinaries(deps.Requirements(cfg)))
			writeSection(out, "Dependencies", dependencyLines(statuses), colorize)

			writeSection(out, "Journal", ctx.journalLines(cmd.Context(), cfg), colorize)
			return nil
		},
	}
}

func configLines(cfg *config.Config, path string, exists bool) []statusLine {
	source := statusLine{Label: "File", Kind: statusOK, Message: path}
	if !exists {
		source = statusLine{Label: "File", Kind: statusWarn, Message: "not found, using defaults (run `findex config init`)"}
	}
	return []statusLine{
		source,
		{Label: "Environment", Kind: statusInfo, Message: cfg.Environment},
		{Label: "State dir", Kind: statusInfo, Message: cfg.Paths.StateDir},
		{Label: "Log dir", Kind: statusInfo, Message: cfg.Paths.LogDir},
		{Label: "Language", Kind: statusInfo, Message: fmt.Sprintf("%s (%s)", cfg.Fetch.DefaultLanguage, language.DisplayName(cfg.Fetch.DefaultLanguage))},
		{Label: "Fetch timeout", Kind: statusInfo, Message: cfg.FetchTimeout().String()},
	}
}

func serverLines(cfg *config.Config) []statusLine {
	auth := statusLine{Label: "Auth", Kind: statusWarn, Message: "disabled (no api_token)"}
	if strings.TrimSpace(cfg.Server.APIToken) != "" {
		auth = statusLine{Label: "Auth", Kind: statusOK, Message: "bearer token required"}
	}
	return []statusLine{
		{Label: "Bind", Kind: statusInfo, Message: cfg.Server.Bind},
		serverRunningLine(cfg.LockPath()),
		auth,
		{Label: "CORS", Kind: statusInfo, Message: joinOrDash(cfg.Server.CORSOrigins)},
	}
}

// serverRunningLine probes the single-instance lock without holding it.
func serverRunningLine(lockPath string) statusLine {
	lock := flock.New(lockPath)
	acquired, err := lock.TryLock()
	if err != nil {
		return statusLine{Label: "Running", Kind: statusWarn, Message: fmt.Sprintf("lock probe failed: %v", err)}
	}
	if !acquired {
		return statusLine{Label: "Running", Kind: statusOK, Message: "yes (lock held)"}
	}
	_ = lock.Unlock()
	return statusLine{Label: "Running", Kind: statusInfo, Message: "no"}
}

func (c *commandContext) journalLines(ctx context.Context, cfg *config.Config) []statusLine {
	if !cfg.Journal.Enabled {
		return []statusLine{{Label: "Enabled", Kind: statusWarn, Message: "no"}}
	}
	lines := []statusLine{
		{Label: "Enabled", Kind: statusOK, Message: "yes"},
		{Label: "Path", Kind: statusInfo, Message: cfg.Journal.Path},
		{Label: "Retention", Kind: statusInfo, Message: fmt.Sprintf("%d days", cfg.Journal.RetentionDays)},
	}
	store, err := c.openJournal()
	if err != nil {
		return append(lines, statusLine{Label: "Store", Kind: statusError, Message: err.Error()})
	}
	defer store.Close()

	stats, err := store.Stats(ctx)
	if err != nil {
		return append(lines, statusLine{Label: "Store", Kind: statusError, Message: err.Error()})
	}
	total := 0
	outcomes := make([]string, 0, len(stats))
	for outcome, count := range stats {
		total += count
		outcomes = append(outcomes, outcome)
	}
	sort.Strings(outcomes)
	lines = append(lines, statusLine{Label: "Requests", Kind: statusInfo, Message: humanize.Comma(int64(total))})
	for _, outcome := range outcomes {
		lines = append(lines, statusLine{Label: "  " + outcome, Kind: statusInfo, Message: humanize.Comma(int64(stats[outcome]))})
	}
	return lines
}
