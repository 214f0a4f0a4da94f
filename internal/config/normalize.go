package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeEnvironment()
	if err := c.normalizeServer(); err != nil {
		return err
	}
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeFetch(); err != nil {
		return err
	}
	if err := c.normalizeJournal(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeEnvironment() {
	if value, ok := os.LookupEnv("DEV_ENV"); ok && strings.TrimSpace(value) != "" {
		c.Environment = value
	}
	c.Environment = strings.ToLower(strings.TrimSpace(c.Environment))
	if c.Environment == "" {
		c.Environment = environmentProduction
	}
}

// normalizeServer applies BACKEND_HOST and BACKEND_PORT on top of the
// configured bind address.
func (c *Config) normalizeServer() error {
	c.Server.Bind = strings.TrimSpace(c.Server.Bind)
	if c.Server.Bind == "" {
		c.Server.Bind = defaultBindHost + ":" + defaultBindPort
	}
	host, port, err := net.SplitHostPort(c.Server.Bind)
	if err != nil {
		return fmt.Errorf("server.bind: %w", err)
	}
	if value, ok := os.LookupEnv("BACKEND_HOST"); ok && strings.TrimSpace(value) != "" {
		host = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv("BACKEND_PORT"); ok && strings.TrimSpace(value) != "" {
		port = strings.TrimSpace(value)
	}
	c.Server.Bind = net.JoinHostPort(host, port)

	c.Server.APIToken = strings.TrimSpace(c.Server.APIToken)
	if c.Server.APIToken == "" {
		if value, ok := os.LookupEnv("FINDEX_API_TOKEN"); ok {
			c.Server.APIToken = strings.TrimSpace(value)
		}
	}

	origins := make([]string, 0, len(c.Server.CORSOrigins))
	for _, origin := range c.Server.CORSOrigins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	c.Server.CORSOrigins = origins

	if c.Server.ReadTimeoutSeconds <= 0 {
		c.Server.ReadTimeoutSeconds = defaultReadTimeoutSeconds
	}
	if c.Server.WriteTimeoutSeconds <= 0 {
		c.Server.WriteTimeoutSeconds = defaultWriteTimeoutSeconds
	}
	if c.Server.ShutdownTimeoutSeconds <= 0 {
		c.Server.ShutdownTimeoutSeconds = defaultShutdownTimeoutSeconds
	}
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = ExpandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = filepath.Join(c.Paths.StateDir, "logs")
	}
	if c.Paths.LogDir, err = ExpandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeFetch() error {
	if value, ok := os.LookupEnv("YTDLP_BINARY"); ok && strings.TrimSpace(value) != "" {
		c.Fetch.YtDlpBinary = value
	}
	c.Fetch.YtDlpBinary = strings.TrimSpace(c.Fetch.YtDlpBinary)
	if c.Fetch.YtDlpBinary == "" {
		c.Fetch.YtDlpBinary = defaultYtDlpBinary
	}
	if c.Fetch.TimeoutSeconds <= 0 {
		c.Fetch.TimeoutSeconds = defaultFetchTimeoutSeconds
	}
	c.Fetch.DefaultLanguage = strings.ToLower(strings.TrimSpace(c.Fetch.DefaultLanguage))
	if c.Fetch.DefaultLanguage == "" {
		c.Fetch.DefaultLanguage = defaultLanguage
	}
	if strings.TrimSpace(c.Fetch.CookiesFile) != "" {
		var err error
		if c.Fetch.CookiesFile, err = ExpandPath(strings.TrimSpace(c.Fetch.CookiesFile)); err != nil {
			return fmt.Errorf("fetch.cookies_file: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeJournal() error {
	if strings.TrimSpace(c.Journal.Path) == "" {
		c.Journal.Path = filepath.Join(c.Paths.StateDir, "journal.db")
	}
	var err error
	if c.Journal.Path, err = ExpandPath(strings.TrimSpace(c.Journal.Path)); err != nil {
		return fmt.Errorf("journal.path: %w", err)
	}
	if c.Journal.RetentionDays < 0 {
		c.Journal.RetentionDays = 0
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
		if c.Development() {
			c.Logging.Level = "debug"
		}
	}
}
