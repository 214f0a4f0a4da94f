package api

import (
	"context"
	"log/slog"
	"time"

	"findex/internal/journal"
	"findex/internal/language"
	"findex/internal/logging"
	"findex/internal/services"
	"findex/internal/services/ytdlp"
	"findex/internal/transcript"
	"findex/internal/youtube"
)

// SubtitleService fetches subtitles and runs them through the cleaning pipeline.
type SubtitleService struct {
	fetcher     SubtitleFetcher
	journal     outcomeRecorder
	logger      *slog.Logger
	defaultLang string
}

// NewSubtitleService constructs a SubtitleService. recorder may be nil.
func NewSubtitleService(fetcher SubtitleFetcher, recorder Recorder, logger *slog.Logger, defaultLang string) *SubtitleService {
	logger = loggerOrNop(logger, "subtitles")
	if defaultLang == "" {
		defaultLang = "en"
	}
	return &SubtitleService{
		fetcher:     fetcher,
		journal:     outcomeRecorder{recorder: recorder, logger: logger},
		logger:      logger,
		defaultLang: defaultLang,
	}
}

// Subtitles returns the cleaned transcript for req. On failure the returned
// response carries the error message with Success=false alongside the error.
func (s *SubtitleService) Subtitles(ctx context.Context, req SubsRequest) (SubsResponse, error) {
	started := time.Now()
	trimFields(&req.URL, &req.Lang)
	if req.Lang == "" {
		req.Lang = s.defaultLang
	}
	entry := journal.Entry{Route: RouteSubs, URL: req.URL, Language: req.Lang}

	fail := func(err error) (SubsResponse, error) {
		s.journal.record(ctx, entry, started, err)
		return SubsResponse{Success: false, Error: err.Error()}, err
	}

	if err := Validate(req); err != nil {
		return fail(err)
	}
	lang, err := language.Canonicalize(req.Lang)
	if err != nil {
		return fail(services.WithMessage(services.ErrValidation, "lang is not a recognized language"))
	}
	entry.Language = lang
	if id, ok := youtube.ExtractVideoID(req.URL); ok {
		entry.VideoID = id
		ctx = services.WithVideoID(ctx, id)
	}
	logger := logging.WithContext(ctx, s.logger)
	logger.Info("subtitle request received",
		logging.String("url", req.URL),
		logging.String("language", lang),
	)

	raw, err := s.fetcher.FetchSubtitles(ctx, req.URL, lang)
	if err == nil {
		err = checkRawPayload(raw)
	}
	if err != nil {
		logging.WarnWithContext(logger, "subtitle fetch failed", "subtitle_fetch_failed",
			logging.String(logging.FieldErrorHint, "verify the video has captions in the requested language"),
			logging.String("outcome", services.Outcome(err)),
			logging.Error(err),
		)
		return fail(err)
	}

	cleaned, report := transcript.CleanWithReport(raw)
	entry.RawBytes = report.RawBytes
	entry.CleanBytes = report.CleanBytes
	if cleaned == "" {
		return fail(ErrEmptyTranscript)
	}

	logger.Info("subtitles cleaned",
		logging.Int("raw_bytes", report.RawBytes),
		logging.Int("clean_bytes", report.CleanBytes),
		logging.Int("lines", report.Lines),
	)
	s.journal.record(ctx, entry, started, nil)
	return SubsResponse{Success: true, Subtitles: cleaned}, nil
}

// checkRawPayload rejects empty payloads and legacy sentinel strings before
// they reach the pipeline.
func checkRawPayload(raw string) error {
	if raw == "" {
		return ErrEmptySubtitles
	}
	return ytdlp.ClassifyPayload(raw)
}
