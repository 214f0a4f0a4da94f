package deps

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"findex/internal/config"
)

// Requirement is an external binary, or with File set a local file, that
// findex needs at runtime.
type Requirement struct {
	Name        string
	Command     string
	File        string
	Description string
	Optional    bool
}

// Status is the outcome of checking one Requirement.
type Status struct {
	Name        string `json:"name"`
	Command     string `json:"command,omitempty"`
	File        string `json:"file,omitempty"`
	Description string `json:"description,omitempty"`
	Optional    bool   `json:"optional"`
	Available   bool   `json:"available"`
	Version     string `json:"version,omitempty"`
	Detail      string `json:"detail,omitempty"`
}

// Requirements lists what the configured service depends on: the yt-dlp
// binary, plus the cookies file when one is configured.
func Requirements(cfg *config.Config) []Requirement {
	reqs := []Requirement{{
		Name:        "yt-dlp",
		Command:     "yt-dlp",
		Description: "Fetches subtitles and video metadata",
	}}
	if cfg == nil {
		return reqs
	}
	if binary := strings.TrimSpace(cfg.Fetch.YtDlpBinary); binary != "" {
		reqs[0].Command = binary
	}
	if cookies := strings.TrimSpace(cfg.Fetch.CookiesFile); cookies != "" {
		reqs = append(reqs, Requirement{
			Name:        "cookies",
			File:        cookies,
			Description: "Browser cookies passed to yt-dlp",
			Optional:    true,
		})
	}
	return reqs
}

// CheckBinaries resolves every requirement, in order.
func CheckBinaries(requirements []Requirement) []Status {
	statuses := make([]Status, len(requirements))
	for i, req := range requirements {
		statuses[i] = check(req)
	}
	return statuses
}

func check(req Requirement) Status {
	st := Status{
		Name:        req.Name,
		Command:     strings.TrimSpace(req.Command),
		File:        strings.TrimSpace(req.File),
		Description: strings.TrimSpace(req.Description),
		Optional:    req.Optional,
	}
	switch {
	case st.File != "":
		info, err := os.Stat(st.File)
		switch {
		case err != nil:
			st.Detail = fmt.Sprintf("file %q not readable", st.File)
		case info.IsDir():
			st.Detail = fmt.Sprintf("%q is a directory", st.File)
		default:
			st.Available = true
		}
	case st.Command == "":
		st.Detail = "command not configured"
	default:
		if _, err := exec.LookPath(st.Command); err != nil {
			st.Detail = fmt.Sprintf("binary %q not found", st.Command)
		} else {
			st.Available = true
		}
	}
	return st
}

// MissingRequired filters statuses down to unavailable, non-optional entries.
func MissingRequired(statuses []Status) []Status {
	var missing []Status
	for _, st := range statuses {
		if st.Optional || st.Available {
			continue
		}
		missing = append(missing, st)
	}
	return missing
}
