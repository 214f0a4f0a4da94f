package testsupport

import (
	"testing"

	"findex/internal/config"
	"findex/internal/journal"
)

// MustOpenJournal opens the journal configured in cfg, failing the test on
// error, and closes it during cleanup.
func MustOpenJournal(t testing.TB, cfg *config.Config) *journal.Store {
	t.Helper()
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("prepare journal directories: %v", err)
	}
	store, err := journal.Open(cfg)
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}
