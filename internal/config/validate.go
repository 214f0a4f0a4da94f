package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateFetch(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateServer() error {
	_, port, err := net.SplitHostPort(c.Server.Bind)
	if err != nil {
		return fmt.Errorf("server.bind must be host:port: %w", err)
	}
	if n, err := strconv.Atoi(port); err != nil || n < 0 || n > 65535 {
		return fmt.Errorf("server.bind port %q is invalid", port)
	}
	return ensurePositiveMap(map[string]int{
		"server.read_timeout_seconds":     c.Server.ReadTimeoutSeconds,
		"server.write_timeout_seconds":    c.Server.WriteTimeoutSeconds,
		"server.shutdown_timeout_seconds": c.Server.ShutdownTimeoutSeconds,
	})
}

func (c *Config) validateFetch() error {
	if strings.TrimSpace(c.Fetch.YtDlpBinary) == "" {
		return errors.New("fetch.ytdlp_binary must be set")
	}
	if c.Fetch.TimeoutSeconds <= 0 {
		return errors.New("fetch.timeout_seconds must be positive")
	}
	if c.Server.WriteTimeoutSeconds <= c.Fetch.TimeoutSeconds {
		return errors.New("server.write_timeout_seconds must be greater than fetch.timeout_seconds")
	}
	if strings.TrimSpace(c.Fetch.DefaultLanguage) == "" {
		return errors.New("fetch.default_language must be set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
