package api

import (
	"context"
	"log/slog"
	"time"

	"findex/internal/journal"
	"findex/internal/logging"
	"findex/internal/services"
	"findex/internal/services/ytdlp"
	"findex/internal/transcript"
	"findex/internal/youtube"
)

// transcriptLanguage is the subtitle track attached to video info responses.
const transcriptLanguage = "en"

// InfoService returns video metadata with a best-effort transcript.
type InfoService struct {
	info    InfoFetcher
	subs    SubtitleFetcher
	journal outcomeRecorder
	logger  *slog.Logger
	budget  time.Duration
}

// NewInfoService constructs an InfoService. recorder may be nil.
func NewInfoService(info InfoFetcher, subs SubtitleFetcher, recorder Recorder, logger *slog.Logger) *InfoService {
	logger = loggerOrNop(logger, "video-info")
	return &InfoService{
		info:    info,
		subs:    subs,
		journal: outcomeRecorder{recorder: recorder, logger: logger},
		logger:  logger,
	}
}

// WithBudget bounds the metadata and transcript fetches of one lookup by a
// single shared deadline. Zero leaves each fetch to its own timeout.
func (s *InfoService) WithBudget(budget time.Duration) *InfoService {
	s.budget = budget
	return s
}

// VideoInfo returns metadata for req.URL. Transcript fetch failures are logged
// and leave Transcript nil.
func (s *InfoService) VideoInfo(ctx context.Context, req VideoInfoRequest) (VideoInfo, error) {
	started := time.Now()
	trimFields(&req.URL)
	entry := journal.Entry{Route: RouteVideoInfo, URL: req.URL, Language: transcriptLanguage}
	if id, ok := youtube.ExtractVideoID(req.URL); ok {
		entry.VideoID = id
		ctx = services.WithVideoID(ctx, id)
	}

	if err := Validate(req); err != nil {
		s.journal.record(ctx, entry, started, err)
		return VideoInfo{}, err
	}
	info, err := s.lookup(ctx, req.URL)
	if info.Transcript != nil {
		entry.CleanBytes = len(*info.Transcript)
	}
	s.journal.record(ctx, entry, started, err)
	return info, err
}

func (s *InfoService) lookup(ctx context.Context, url string) (VideoInfo, error) {
	if s.budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.budget)
		defer cancel()
	}
	logger := logging.WithContext(ctx, s.logger)
	meta, err := s.info.FetchInfo(ctx, url)
	if err != nil {
		logging.WarnWithContext(logger, "video info fetch failed", "video_info_failed",
			logging.String(logging.FieldErrorHint, "check the URL and yt-dlp availability"),
			logging.Error(err),
		)
		return VideoInfo{}, err
	}
	info := fromMetadata(meta)

	raw, err := s.subs.FetchSubtitles(ctx, url, transcriptLanguage)
	if err == nil {
		err = checkRawPayload(raw)
	}
	if err != nil {
		logger.Info("no transcript available",
			logging.String("url", url),
			logging.String("reason", err.Error()),
		)
		return info, nil
	}
	if cleaned := transcript.Clean(raw); cleaned != "" {
		info.Transcript = &cleaned
	}
	return info, nil
}

func fromMetadata(meta ytdlp.VideoInfo) VideoInfo {
	info := VideoInfo{
		Title:       meta.Title,
		Description: meta.Description,
		Duration:    meta.Duration,
		Uploader:    meta.Uploader,
		UploadDate:  meta.UploadDate,
		ViewCount:   meta.ViewCount,
		LikeCount:   meta.LikeCount,
		Tags:        meta.Tags,
		Categories:  meta.Categories,
	}
	if info.Tags == nil {
		info.Tags = []string{}
	}
	if info.Categories == nil {
		info.Categories = []string{}
	}
	return info
}
