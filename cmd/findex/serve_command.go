package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"findex/internal/deps"
	"findex/internal/journal"
	"findex/internal/logging"
	"findex/internal/server"
	"findex/internal/services/ytdlp"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server in the foreground",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, ctx, bind)
		},
	}
	cmd.Flags().StringVar(&bind, "bind", "", "Override the configured bind address (host:port)")
	return cmd
}

func runServe(cmd *cobra.Command, ctx *commandContext, bind string) error {
	cmdCtx := cmd.Context()
	if cmdCtx == nil {
		cmdCtx = context.Background()
	}
	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if bind != "" {
		cfg.Server.Bind = bind
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	for _, missing := range deps.MissingRequired(deps.CheckBinaries(deps.Requirements(cfg))) {
		logging.WarnWithContext(logger, "required dependency missing", "dependency_missing",
			logging.String("dependency", missing.Name),
			logging.String("command", missing.Command),
			logging.String(logging.FieldErrorHint, "install yt-dlp or set fetch.ytdlp_binary"),
		)
	}

	var store *journal.Store
	if cfg.Journal.Enabled {
		store, err = journal.Open(cfg)
		if err != nil {
			logging.ErrorWithContext(logger, "open request journal", "journal_open_failed",
				logging.Error(err),
				logging.String("path", cfg.Journal.Path),
			)
			return err
		}
		defer store.Close()
		pruneJournal(signalCtx, store, cfg.Journal.RetentionDays, logger)
	}

	srv, err := server.New(cfg, server.Options{
		Fetcher: ytdlp.New(cfg, logger),
		Journal: store,
		Version: version,
	}, logger)
	if err != nil {
		return err
	}

	if err := srv.Start(signalCtx); err != nil {
		if errors.Is(err, server.ErrAlreadyRunning) {
			return fmt.Errorf("%w; stop the running instance or point paths.state_dir elsewhere", err)
		}
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "findex listening on http://%s\n", srv.Addr())

	<-signalCtx.Done()
	logger.Info("shutdown requested")
	srv.Stop()
	return nil
}

// pruneJournal drops entries older than the retention window. Failures are
// logged and never block startup.
func pruneJournal(ctx context.Context, store *journal.Store, retentionDays int, logger *slog.Logger) {
	if store == nil || retentionDays <= 0 {
		return
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)
	removed, err := store.Prune(ctx, cutoff)
	if err != nil {
		logging.WarnWithContext(logger, "journal prune failed", "journal_prune_failed",
			logging.String(logging.FieldErrorHint, "check journal.path permissions"),
			logging.Error(err),
		)
		return
	}
	if removed > 0 {
		logger.Info("journal pruned",
			logging.Int64("removed", removed),
			logging.Int("retention_days", retentionDays),
		)
	}
}
