package api

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"findex/internal/journal"
	"findex/internal/logging"
	"findex/internal/services"
	"findex/internal/youtube"
)

const (
	askDescriptionLimit = 500
	askTranscriptLimit  = 200
	askTagLimit         = 10
)

// AskService answers questions about a video from its metadata.
type AskService struct {
	info    *InfoService
	journal outcomeRecorder
	logger  *slog.Logger
}

// NewAskService constructs an AskService on top of info. recorder may be nil.
func NewAskService(info *InfoService, recorder Recorder, logger *slog.Logger) *AskService {
	logger = loggerOrNop(logger, "ask")
	return &AskService{
		info:    info,
		journal: outcomeRecorder{recorder: recorder, logger: logger},
		logger:  logger,
	}
}

// Ask validates req, fetches video info and returns the templated answer.
func (s *AskService) Ask(ctx context.Context, req AskRequest) (AskResponse, error) {
	started := time.Now()
	trimFields(&req.URL, &req.Question)
	entry := journal.Entry{Route: RouteAsk, URL: req.URL}

	if err := Validate(req); err != nil {
		s.journal.record(ctx, entry, started, err)
		return AskResponse{}, err
	}
	videoID, ok := youtube.ExtractVideoID(req.URL)
	if !ok {
		s.journal.record(ctx, entry, started, ErrInvalidVideoURL)
		return AskResponse{}, ErrInvalidVideoURL
	}
	entry.VideoID = videoID
	ctx = services.WithVideoID(ctx, videoID)

	logging.WithContext(ctx, s.logger).Info("processing question",
		logging.String("question", req.Question),
		logging.String("url", req.URL),
	)

	info, err := s.info.lookup(ctx, req.URL)
	if err != nil {
		s.journal.record(ctx, entry, started, err)
		return AskResponse{}, err
	}
	if info.Transcript != nil {
		entry.CleanBytes = len(*info.Transcript)
	}

	resp := AskResponse{
		Answer:       BuildAnswer(info, req.Question),
		VideoTitle:   info.Title,
		VideoChannel: info.Uploader,
	}
	s.journal.record(ctx, entry, started, nil)
	return resp, nil
}

// BuildAnswer renders the templated answer for info. The question is not
// interpreted.
func BuildAnswer(info VideoInfo, _ string) string {
	detail := "No transcript is available for this video."
	if info.Transcript != nil && *info.Transcript != "" {
		detail = fmt.Sprintf("The transcript is available with %d characters.",
			utf8.RuneCountInString(*info.Transcript))
	}
	uploadDate := info.UploadDate
	if uploadDate == "" {
		uploadDate = "Unknown"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "I can help you with questions about this video: \"%s\" by %s.\n", info.Title, info.Uploader)
	b.WriteString(detail + "\n")
	b.WriteString("Some information I can provide:\n")
	fmt.Fprintf(&b, "  - Video duration: %d minutes\n", info.Duration/60)
	fmt.Fprintf(&b, "  - Views: %s\n", humanize.Comma(info.ViewCount))
	fmt.Fprintf(&b, "  - Upload date: %s\n", uploadDate)
	b.WriteString("\n")
	b.WriteString("For more specific answers, try asking about the video's title, channel, duration, views, or topic.\n")
	b.WriteString("Context used:\n")
	b.WriteString(answerContext(info))
	b.WriteString("\n")
	return b.String()
}

func answerContext(info VideoInfo) string {
	description := info.Description
	if description == "" {
		description = "No description available"
	}
	tags := "None"
	if len(info.Tags) > 0 {
		limit := min(len(info.Tags), askTagLimit)
		tags = strings.Join(info.Tags[:limit], ", ")
	}
	categories := "None"
	if len(info.Categories) > 0 {
		categories = strings.Join(info.Categories, ", ")
	}
	transcriptPreview := "Not available"
	if info.Transcript != nil && *info.Transcript != "" {
		transcriptPreview = truncateRunes(*info.Transcript, askTranscriptLimit)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "  Title: %s\n", info.Title)
	fmt.Fprintf(&b, "  Channel: %s\n", info.Uploader)
	fmt.Fprintf(&b, "  Description: %s...\n", truncateRunes(description, askDescriptionLimit))
	fmt.Fprintf(&b, "  Duration: %d seconds\n", info.Duration)
	fmt.Fprintf(&b, "  Tags: %s\n", tags)
	fmt.Fprintf(&b, "  Categories: %s\n", categories)
	fmt.Fprintf(&b, "  Transcript: %s...\n", transcriptPreview)
	return b.String()
}
