package ytdlp

import (
	"fmt"
	"strings"

	"findex/internal/services"
)

var (
	// ErrVideoUnavailable reports a removed, private or unknown video.
	ErrVideoUnavailable = fmt.Errorf("%w: video unavailable", services.ErrNotFound)
	// ErrSubtitlesUnavailable reports that no subtitle track exists for the language.
	ErrSubtitlesUnavailable = fmt.Errorf("%w: subtitles unavailable", services.ErrNotFound)
	// ErrRetrievalFailed reports a fetch failure that is not a missing resource.
	ErrRetrievalFailed = fmt.Errorf("%w: subtitle retrieval failed", services.ErrExternalTool)
	// ErrInvalidURL reports a URL yt-dlp refuses to handle.
	ErrInvalidURL = fmt.Errorf("%w: unsupported url", services.ErrValidation)
)

// Legacy sentinel payloads returned by older fetchers in place of subtitle text.
const (
	SentinelVideoUnavailable     = "Video unavailable."
	SentinelNoSubtitles          = "Subtitles not available for the specified language."
	SentinelUnreadableFile       = "Subtitles were requested but could not be retrieved from file."
	SentinelNoSubtitlesOrFailure = "Subtitles not available for the specified language or download failed."
	SentinelDownloadErrorPrefix  = "Error downloading subtitles:"
	SentinelUnexpectedPrefix     = "An unexpected error occurred while fetching subtitles:"
)

// PayloadError carries a human-readable failure message together with the
// typed error it maps to.
type PayloadError struct {
	Message string
	Kind    error
}

func (e *PayloadError) Error() string { return e.Message }

func (e *PayloadError) Unwrap() error { return e.Kind }

// ClassifyPayload reports whether raw is one of the legacy sentinel strings
// and, if so, returns the matching typed error. Ordinary subtitle text,
// including the empty string, yields nil.
func ClassifyPayload(raw string) error {
	switch raw {
	case SentinelVideoUnavailable:
		return &PayloadError{Message: raw, Kind: ErrVideoUnavailable}
	case SentinelNoSubtitles, SentinelNoSubtitlesOrFailure:
		return &PayloadError{Message: raw, Kind: ErrSubtitlesUnavailable}
	case SentinelUnreadableFile:
		return &PayloadError{Message: raw, Kind: ErrRetrievalFailed}
	}
	if strings.HasPrefix(raw, SentinelDownloadErrorPrefix) || strings.HasPrefix(raw, SentinelUnexpectedPrefix) {
		return &PayloadError{Message: raw, Kind: kindForMessage(raw)}
	}
	return nil
}

// kindForMessage maps free-form failure text to a typed error: anything that
// mentions a missing resource is a not-found, the rest is a retrieval failure.
func kindForMessage(message string) error {
	lower := strings.ToLower(message)
	if strings.Contains(lower, "unavailable") || strings.Contains(lower, "not found") || strings.Contains(lower, "not available") {
		return ErrSubtitlesUnavailable
	}
	return ErrRetrievalFailed
}

// classifyStderr maps yt-dlp diagnostics to a typed error.
func classifyStderr(stderr string) error {
	lower := strings.ToLower(stderr)
	switch {
	case strings.Contains(lower, "unsupported url"), strings.Contains(lower, "is not a valid url"):
		return ErrInvalidURL
	case strings.Contains(lower, "video unavailable"),
		strings.Contains(lower, "private video"),
		strings.Contains(lower, "has been removed"),
		strings.Contains(lower, "does not exist"),
		strings.Contains(lower, "http error 404"):
		return ErrVideoUnavailable
	case strings.Contains(lower, "no subtitles"), strings.Contains(lower, "there are no subtitles"):
		return ErrSubtitlesUnavailable
	default:
		return ErrRetrievalFailed
	}
}

// lastLine returns the final non-empty line of tool output, which is where
// yt-dlp prints its ERROR summary.
func lastLine(output string) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
