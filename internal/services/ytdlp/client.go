package ytdlp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"findex/internal/config"
	"findex/internal/logging"
	"findex/internal/services"
)

var commandContext = exec.CommandContext

const (
	component        = "ytdlp"
	defaultBinary    = "yt-dlp"
	defaultTimeout   = 60 * time.Second
	processWaitDelay = 500 * time.Millisecond
)

// subtitleExtensions lists the payload formats requested from yt-dlp, in
// preference order.
var subtitleExtensions = []string{".vtt", ".srt"}

// Client runs yt-dlp for subtitle and metadata requests.
type Client struct {
	Binary      string
	Timeout     time.Duration
	CookiesFile string
	WorkDir     string
	Logger      *slog.Logger
}

// New constructs a Client from the fetch configuration.
func New(cfg *config.Config, logger *slog.Logger) *Client {
	client := &Client{
		Binary:  defaultBinary,
		Timeout: defaultTimeout,
		Logger:  logger,
	}
	if cfg != nil {
		if strings.TrimSpace(cfg.Fetch.YtDlpBinary) != "" {
			client.Binary = cfg.Fetch.YtDlpBinary
		}
		if timeout := cfg.FetchTimeout(); timeout > 0 {
			client.Timeout = timeout
		}
		client.CookiesFile = cfg.Fetch.CookiesFile
	}
	if client.Logger == nil {
		client.Logger = logging.NewNop()
	}
	client.Logger = logging.NewComponentLogger(client.Logger, component)
	return client
}

// FetchSubtitles downloads the subtitle track for lang and returns its raw
// contents. Manual subtitles are preferred over automatic captions by yt-dlp
// itself when both exist.
func (c *Client) FetchSubtitles(ctx context.Context, url, lang string) (string, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return "", services.Wrap(services.ErrValidation, component, "fetch subtitles", "url is required", nil)
	}
	lang = strings.TrimSpace(lang)
	if lang == "" {
		lang = "en"
	}

	workDir, err := os.MkdirTemp(c.WorkDir, "findex-subs-*")
	if err != nil {
		return "", services.Wrap(services.ErrConfiguration, component, "fetch subtitles", "create work directory", err)
	}
	defer os.RemoveAll(workDir)

	args := []string{
		"--skip-download",
		"--write-subs",
		"--write-auto-subs",
		"--sub-langs", lang,
		"--sub-format", "vtt/srt/best",
		"--no-playlist",
		"--no-warnings",
	}
	args = append(args, c.cookieArgs()...)
	args = append(args, "-o", filepath.Join(workDir, "%(id)s.%(ext)s"), "--", url)

	if _, err := c.run(ctx, "fetch subtitles", args); err != nil {
		return "", err
	}

	path, err := findSubtitleFile(workDir, lang)
	if err != nil {
		return "", services.Wrap(ErrRetrievalFailed, component, "fetch subtitles", SentinelUnreadableFile, err)
	}
	if path == "" {
		return "", &PayloadError{Message: SentinelNoSubtitles, Kind: ErrSubtitlesUnavailable}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &PayloadError{Message: SentinelUnreadableFile, Kind: ErrRetrievalFailed}
	}
	c.Logger.Debug("subtitles downloaded",
		logging.String("url", url),
		logging.String("language", lang),
		logging.String("file", filepath.Base(path)),
		logging.Int("bytes", len(data)),
	)
	return string(data), nil
}

// FetchInfo returns video metadata from yt-dlp's JSON dump.
func (c *Client) FetchInfo(ctx context.Context, url string) (VideoInfo, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return VideoInfo{}, services.Wrap(services.ErrValidation, component, "fetch info", "url is required", nil)
	}
	args := []string{"-J", "--skip-download", "--no-playlist", "--no-warnings"}
	args = append(args, c.cookieArgs()...)
	args = append(args, "--", url)

	stdout, err := c.run(ctx, "fetch info", args)
	if err != nil {
		return VideoInfo{}, err
	}
	info, err := decodeInfo(stdout)
	if err != nil {
		return VideoInfo{}, services.Wrap(ErrRetrievalFailed, component, "fetch info", "invalid metadata", err)
	}
	return info, nil
}

func (c *Client) cookieArgs() []string {
	if strings.TrimSpace(c.CookiesFile) == "" {
		return nil
	}
	return []string{"--cookies", c.CookiesFile}
}

func (c *Client) run(ctx context.Context, operation string, args []string) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	binary := strings.TrimSpace(c.Binary)
	if binary == "" {
		binary = defaultBinary
	}

	var stdout, stderr bytes.Buffer
	cmd := commandContext(ctx, binary, args...) //nolint:gosec
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = processWaitDelay

	started := time.Now()
	err := cmd.Run()
	elapsed := time.Since(started)

	if err == nil {
		c.Logger.Debug("yt-dlp completed",
			logging.String("operation", operation),
			logging.Duration("duration", elapsed),
		)
		return stdout.Bytes(), nil
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, services.Wrap(services.ErrTimeout, component, operation,
			fmt.Sprintf("yt-dlp exceeded %s", timeout), ctx.Err())
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		return nil, services.Wrap(services.ErrTransient, component, operation, "request canceled", ctx.Err())
	}

	var execErr *exec.Error
	if errors.As(err, &execErr) || errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return nil, services.Wrap(services.ErrConfiguration, component, operation,
			fmt.Sprintf("yt-dlp binary %q not runnable", binary), err)
	}

	diagnostic := lastLine(stderr.String())
	c.Logger.Debug("yt-dlp failed",
		logging.String("operation", operation),
		logging.Duration("duration", elapsed),
		logging.String("stderr", diagnostic),
		logging.Error(err),
	)
	kind := classifyStderr(stderr.String())
	message := diagnostic
	if message == "" {
		message = err.Error()
	}
	if kind == ErrVideoUnavailable {
		message = SentinelVideoUnavailable + " " + message
	}
	return nil, &PayloadError{Message: message, Kind: kind}
}

// findSubtitleFile picks the downloaded subtitle file, preferring one tagged
// with lang and then the format order of subtitleExtensions. An empty path
// means nothing was written.
func findSubtitleFile(dir, lang string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	type candidate struct {
		path  string
		score int
	}
	var candidates []candidate
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		rank := -1
		for i, known := range subtitleExtensions {
			if ext == known {
				rank = i
				break
			}
		}
		if rank < 0 {
			continue
		}
		score := rank
		if !strings.Contains(strings.ToLower(name), "."+strings.ToLower(lang)+".") {
			score += len(subtitleExtensions)
		}
		candidates = append(candidates, candidate{path: filepath.Join(dir, name), score: score})
	}
	if len(candidates) == 0 {
		return "", nil
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score < candidates[j].score
		}
		return candidates[i].path < candidates[j].path
	})
	return candidates[0].path, nil
}
