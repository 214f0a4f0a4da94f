package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Server contains HTTP API settings.
type Server struct {
	Bind                   string   `toml:"bind"`
	APIToken               string   `toml:"api_token"`
	CORSOrigins            []string `toml:"cors_origins"`
	ReadTimeoutSeconds     int      `toml:"read_timeout_seconds"`
	WriteTimeoutSeconds    int      `toml:"write_timeout_seconds"`
	ShutdownTimeoutSeconds int      `toml:"shutdown_timeout_seconds"`
}

// Paths contains directory configuration.
type Paths struct {
	StateDir string `toml:"state_dir"`
	LogDir   string `toml:"log_dir"`
}

// Fetch contains settings for the yt-dlp subtitle and metadata collaborator.
type Fetch struct {
	YtDlpBinary     string `toml:"ytdlp_binary"`
	TimeoutSeconds  int    `toml:"timeout_seconds"`
	DefaultLanguage string `toml:"default_language"`
	CookiesFile     string `toml:"cookies_file"`
}

// Journal contains configuration for the request outcome journal.
type Journal struct {
	Enabled       bool   `toml:"enabled"`
	Path          string `toml:"path"`
	RetentionDays int    `toml:"retention_days"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for findex.
//
// Configuration sections by subsystem:
//   - Server: API bind address, auth token, CORS and timeouts
//   - Paths: state and log directories
//   - Fetch: yt-dlp binary, timeout and default subtitle language
//   - Journal: SQLite request journal
//   - Logging: log format and level
type Config struct {
	Environment string  `toml:"environment"`
	Server      Server  `toml:"server"`
	Paths       Paths   `toml:"paths"`
	Fetch       Fetch   `toml:"fetch"`
	Journal     Journal `toml:"journal"`
	Logging     Logging `toml:"logging"`
}

// EnsureDirectories creates the state, log and journal directories.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.StateDir, c.Paths.LogDir}
	if c.Journal.Enabled && c.Journal.Path != "" {
		dirs = append(dirs, filepath.Dir(c.Journal.Path))
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// Development reports whether the service runs in development mode.
func (c *Config) Development() bool {
	return c.Environment == environmentDevelopment
}

// FetchTimeout returns the per-request yt-dlp timeout.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}

// LockPath returns the single-instance lock file used by the API server.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.StateDir, "findex.lock")
}

// LogPath returns the service log file, or "" when no log directory is set.
func (c *Config) LogPath() string {
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return ""
	}
	return filepath.Join(c.Paths.LogDir, "findex.log")
}
