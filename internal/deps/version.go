package deps

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const versionProbeTimeout = 5 * time.Second

// ProbeVersion runs "<command> --version" and returns the first output line.
func ProbeVersion(ctx context.Context, command string) (string, error) {
	command = strings.TrimSpace(command)
	if command == "" {
		return "", fmt.Errorf("command not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, versionProbeTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, command, "--version").Output() //nolint:gosec
	if err != nil {
		return "", fmt.Errorf("%s --version: %w", command, err)
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return strings.TrimSpace(line), nil
}

// WithVersions returns a copy of statuses with Version set on every available
// binary. A failed probe lands in Detail instead.
func WithVersions(ctx context.Context, statuses []Status) []Status {
	out := make([]Status, len(statuses))
	copy(out, statuses)
	for i := range out {
		if !out[i].Available || out[i].Command == "" {
			continue
		}
		version, err := ProbeVersion(ctx, out[i].Command)
		if err != nil {
			out[i].Detail = err.Error()
			continue
		}
		out[i].Version = version
	}
	return out
}
