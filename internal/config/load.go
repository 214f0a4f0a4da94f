package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig []byte

const defaultConfigLocation = "~/.config/findex/config.toml"

// DefaultConfigPath is ~/.config/findex/config.toml, expanded.
func DefaultConfigPath() (string, error) {
	return ExpandPath(defaultConfigLocation)
}

// Load reads, normalizes and validates the configuration. With an empty
// path the default location is tried, then findex.toml in the working
// directory. A missing file is not an error: defaults are used and the
// returned exists flag is false. A .env file in the working directory is
// loaded first so its variables act as environment fallbacks.
func Load(path string) (cfg *Config, resolved string, exists bool, err error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, "", false, err
	}
	resolved, exists, err = locate(path)
	if err != nil {
		return nil, "", false, err
	}

	loaded := Default()
	if exists {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			return nil, "", false, fmt.Errorf("read config %s: %w", resolved, readErr)
		}
		if decodeErr := toml.Unmarshal(data, &loaded); decodeErr != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolved, decodeErr)
		}
	}
	if err := loaded.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := loaded.Validate(); err != nil {
		return nil, "", false, err
	}
	return &loaded, resolved, exists, nil
}

func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load %s: %w", path, err)
}

// locate resolves the config file to read and whether it exists.
func locate(explicit string) (string, bool, error) {
	if strings.TrimSpace(explicit) != "" {
		target, err := ExpandPath(explicit)
		if err != nil {
			return "", false, err
		}
		found, err := isFile(target)
		return target, found, err
	}

	fallback, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	local, err := filepath.Abs("findex.toml")
	if err != nil {
		return "", false, err
	}
	for _, candidate := range []string{fallback, local} {
		if found, _ := isFile(candidate); found {
			return candidate, true, nil
		}
	}
	return fallback, false, nil
}

func isFile(path string) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("stat config %s: %w", path, err)
	case info.IsDir():
		return false, fmt.Errorf("config path %s is a directory", path)
	}
	return true, nil
}

// ExpandPath resolves a leading "~" to the home directory and returns the
// cleaned absolute path. Empty input stays empty.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("absolute path for %q: %w", path, err)
	}
	return abs, nil
}

// CreateSample writes the commented sample configuration to path.
func CreateSample(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, sampleConfig, 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
