package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"findex/internal/config"
)

// ConfigOption adjusts a config produced by NewConfig.
type ConfigOption func(t testing.TB, cfg *config.Config)

// NewConfig returns defaults rooted in a fresh temp directory: state, logs and
// the journal all live under it, the server binds an ephemeral port, and
// fetches time out after five seconds.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	root := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StateDir = filepath.Join(root, "state")
	cfg.Paths.LogDir = filepath.Join(root, "logs")
	cfg.Journal.Path = filepath.Join(cfg.Paths.StateDir, "journal.db")
	cfg.Server.Bind = "127.0.0.1:0"
	cfg.Server.WriteTimeoutSeconds = 10
	cfg.Fetch.TimeoutSeconds = 5

	for _, opt := range opts {
		opt(t, &cfg)
	}
	return &cfg
}

// BaseDir is the temp directory NewConfig rooted cfg in.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}

func WithAPIToken(token string) ConfigOption {
	return func(_ testing.TB, cfg *config.Config) { cfg.Server.APIToken = token }
}

func WithJournalDisabled() ConfigOption {
	return func(_ testing.TB, cfg *config.Config) { cfg.Journal.Enabled = false }
}

// WithYtDlp sets fetch.ytdlp_binary, usually to a WriteYtDlpStub path.
func WithYtDlp(path string) ConfigOption {
	return func(_ testing.TB, cfg *config.Config) { cfg.Fetch.YtDlpBinary = path }
}

// WithStubbedBinaries puts do-nothing executables named names (yt-dlp when
// empty) at the front of PATH for the rest of the test.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(t testing.TB, _ *config.Config) {
		t.Helper()
		if len(names) == 0 {
			names = []string{"yt-dlp"}
		}
		binDir := t.TempDir()
		for _, name := range names {
			if err := os.WriteFile(filepath.Join(binDir, name), []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
				t.Fatalf("write stub %s: %v", name, err)
			}
		}
		t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	}
}
