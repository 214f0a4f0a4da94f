package ytdlp_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"findex/internal/services"
	"findex/internal/services/ytdlp"
	"findex/internal/testsupport"
)

const sampleURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

func newClient(t *testing.T, stub testsupport.YtDlpStub) *ytdlp.Client {
	t.Helper()
	binary := testsupport.WriteYtDlpStub(t, stub)
	cfg := testsupport.NewConfig(t, testsupport.WithYtDlp(binary))
	client := ytdlp.New(cfg, nil)
	client.WorkDir = t.TempDir()
	return client
}

func TestFetchSubtitlesReadsDownloadedFile(t *testing.T) {
	client := newClient(t, testsupport.YtDlpStub{Subtitles: testsupport.SampleVTT})

	raw, err := client.FetchSubtitles(context.Background(), sampleURL, "en")
	if err != nil {
		t.Fatalf("FetchSubtitles returned error: %v", err)
	}
	if raw != testsupport.SampleVTT {
		t.Fatalf("unexpected payload: %q", raw)
	}
	entries, err := os.ReadDir(client.WorkDir)
	if err != nil {
		t.Fatalf("read work dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected temp directory to be removed, found %d entries", len(entries))
	}
}

func TestFetchSubtitlesAcceptsSRT(t *testing.T) {
	srt := "1\n00:00:01,000 --> 00:00:02,000\nHello\n"
	client := newClient(t, testsupport.YtDlpStub{Subtitles: srt, SubtitleExt: "srt"})

	raw, err := client.FetchSubtitles(context.Background(), sampleURL, "de")
	if err != nil {
		t.Fatalf("FetchSubtitles returned error: %v", err)
	}
	if raw != srt {
		t.Fatalf("unexpected payload: %q", raw)
	}
}

func TestFetchSubtitlesMissingTrack(t *testing.T) {
	client := newClient(t, testsupport.YtDlpStub{})

	_, err := client.FetchSubtitles(context.Background(), sampleURL, "en")
	if !errors.Is(err, ytdlp.ErrSubtitlesUnavailable) {
		t.Fatalf("expected ErrSubtitlesUnavailable, got %v", err)
	}
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found marker, got %v", err)
	}
	if err.Error() != ytdlp.SentinelNoSubtitles {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestFetchSubtitlesVideoUnavailable(t *testing.T) {
	client := newClient(t, testsupport.YtDlpStub{
		Stderr:   "ERROR: [youtube] dQw4w9WgXcQ: Video unavailable\n",
		ExitCode: 1,
	})

	_, err := client.FetchSubtitles(context.Background(), sampleURL, "en")
	if !errors.Is(err, ytdlp.ErrVideoUnavailable) {
		t.Fatalf("expected ErrVideoUnavailable, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), ytdlp.SentinelVideoUnavailable) {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestFetchSubtitlesGenericFailure(t *testing.T) {
	client := newClient(t, testsupport.YtDlpStub{
		Stderr:   "ERROR: unable to download webpage: connection refused\n",
		ExitCode: 1,
	})

	_, err := client.FetchSubtitles(context.Background(), sampleURL, "en")
	if !errors.Is(err, ytdlp.ErrRetrievalFailed) {
		t.Fatalf("expected ErrRetrievalFailed, got %v", err)
	}
	if services.HTTPStatus(err) != 500 {
		t.Fatalf("expected status 500, got %d", services.HTTPStatus(err))
	}
}

func TestFetchSubtitlesTimeout(t *testing.T) {
	client := newClient(t, testsupport.YtDlpStub{Subtitles: testsupport.SampleVTT, SleepSeconds: 5})
	client.Timeout = 200 * time.Millisecond

	started := time.Now()
	_, err := client.FetchSubtitles(context.Background(), sampleURL, "en")
	if !errors.Is(err, services.ErrTimeout) {
		t.Fatalf("expected timeout, got %v", err)
	}
	if elapsed := time.Since(started); elapsed > 4*time.Second {
		t.Fatalf("timeout took too long: %v", elapsed)
	}
}

func TestFetchSubtitlesRequiresURL(t *testing.T) {
	client := newClient(t, testsupport.YtDlpStub{})
	if _, err := client.FetchSubtitles(context.Background(), "  ", "en"); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestFetchSubtitlesMissingBinary(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithYtDlp(filepath.Join(t.TempDir(), "absent-yt-dlp")))
	client := ytdlp.New(cfg, nil)

	_, err := client.FetchSubtitles(context.Background(), sampleURL, "en")
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestFetchInfoDecodesMetadata(t *testing.T) {
	client := newClient(t, testsupport.YtDlpStub{InfoJSON: `{
		"id": "dQw4w9WgXcQ",
		"title": "Never Gonna Give You Up",
		"description": "Official video",
		"duration": 212.4,
		"uploader": "Rick Astley",
		"upload_date": "20091025",
		"view_count": 1234567890,
		"like_count": 17000000,
		"tags": ["rick", "astley"],
		"categories": ["Music"],
		"formats": []
	}`})

	info, err := client.FetchInfo(context.Background(), sampleURL)
	if err != nil {
		t.Fatalf("FetchInfo returned error: %v", err)
	}
	if info.Title != "Never Gonna Give You Up" || info.Uploader != "Rick Astley" {
		t.Fatalf("unexpected info: %#v", info)
	}
	if info.Duration != 212 {
		t.Fatalf("expected rounded duration 212, got %d", info.Duration)
	}
	if info.ViewCount != 1234567890 || info.LikeCount != 17000000 {
		t.Fatalf("unexpected counts: %#v", info)
	}
	if len(info.Tags) != 2 || len(info.Categories) != 1 {
		t.Fatalf("unexpected tags/categories: %#v", info)
	}
}

func TestFetchInfoDefaultsMissingFields(t *testing.T) {
	client := newClient(t, testsupport.YtDlpStub{InfoJSON: `{"id": "x", "view_count": null, "channel": "Chan"}`})

	info, err := client.FetchInfo(context.Background(), sampleURL)
	if err != nil {
		t.Fatalf("FetchInfo returned error: %v", err)
	}
	if info.Title != "Unknown" {
		t.Fatalf("expected Unknown title, got %q", info.Title)
	}
	if info.Uploader != "Chan" {
		t.Fatalf("expected channel fallback, got %q", info.Uploader)
	}
	if info.Tags == nil || info.Categories == nil {
		t.Fatal("expected empty slices rather than nil")
	}
}

func TestFetchInfoRejectsGarbage(t *testing.T) {
	client := newClient(t, testsupport.YtDlpStub{InfoJSON: "not json"})
	if _, err := client.FetchInfo(context.Background(), sampleURL); !errors.Is(err, ytdlp.ErrRetrievalFailed) {
		t.Fatalf("expected retrieval failure, got %v", err)
	}
}
