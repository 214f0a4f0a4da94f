package api

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"findex/internal/journal"
	"findex/internal/logging"
	"findex/internal/services"
	"findex/internal/services/ytdlp"
)

// Routes served by the HTTP API, also used as journal route labels.
const (
	RouteSubs      = "/youtube/subs"
	RouteVideoInfo = "/youtube/video-info"
	RouteAsk       = "/ask"
	RouteHealth    = "/health"
	RouteRequests  = "/api/requests"
)

const maxJournalDetail = 500

// SubtitleFetcher downloads raw subtitle payloads.
type SubtitleFetcher interface {
	FetchSubtitles(ctx context.Context, url, lang string) (string, error)
}

// InfoFetcher downloads video metadata.
type InfoFetcher interface {
	FetchInfo(ctx context.Context, url string) (ytdlp.VideoInfo, error)
}

// Recorder persists request outcomes.
type Recorder interface {
	Record(ctx context.Context, entry journal.Entry) (journal.Entry, error)
}

var (
	// ErrEmptySubtitles reports an empty payload from the fetcher.
	ErrEmptySubtitles = services.WithMessage(services.ErrNotFound,
		"Failed to retrieve subtitles or subtitles are empty.")
	// ErrEmptyTranscript reports a payload that contained only markup.
	ErrEmptyTranscript = services.WithMessage(services.ErrNotFound,
		"Subtitles became empty after cleaning. Original may have only contained timestamps/metadata.")
	// ErrInvalidVideoURL reports a URL without a recognizable YouTube video ID.
	ErrInvalidVideoURL = services.WithMessage(services.ErrValidation, "Invalid YouTube URL")
)

// outcomeRecorder writes one journal entry per request when a Recorder is set.
type outcomeRecorder struct {
	recorder Recorder
	logger   *slog.Logger
}

func (r outcomeRecorder) record(ctx context.Context, entry journal.Entry, started time.Time, err error) {
	if r.recorder == nil {
		return
	}
	if route, ok := services.RouteFromContext(ctx); ok && entry.Route == "" {
		entry.Route = route
	}
	entry.Outcome = services.Outcome(err)
	entry.StatusCode = services.HTTPStatus(err)
	entry.DurationMS = time.Since(started).Milliseconds()
	if err != nil {
		entry.Detail = truncateRunes(err.Error(), maxJournalDetail)
	}
	if _, recErr := r.recorder.Record(context.WithoutCancel(ctx), entry); recErr != nil {
		logging.WarnWithContext(logging.WithContext(ctx, r.logger), "journal write failed", "journal_write_failed",
			logging.String(logging.FieldErrorHint, "check journal.path permissions or disable the journal"),
			logging.Error(recErr),
		)
	}
}

func loggerOrNop(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = logging.NewNop()
	}
	return logging.NewComponentLogger(logger, component)
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}
