package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// SampleVTT is a small auto-caption payload with the usual rolling repeats,
// inline word timings and positioning directives.
const SampleVTT = "WEBVTT\nKind: captions\nLanguage: en\n\n" +
	"00:00:00.000 --> 00:00:02.000 align:start position:0%\n" +
	"so<00:00:00.500><c> today</c><00:00:01.000><c> we</c>\n\n" +
	"00:00:02.000 --> 00:00:04.000 align:start position:0%\n" +
	"so today we\nare<00:00:02.500><c> going</c>\n"

// YtDlpStub describes the behaviour of a fake yt-dlp executable.
type YtDlpStub struct {
	// Subtitles is copied next to the -o template when non-empty.
	Subtitles string
	// SubtitleExt is the extension of the written subtitle file. Defaults to vtt.
	SubtitleExt string
	// InfoJSON is printed to stdout when -J is requested.
	InfoJSON string
	// Stderr is printed to stderr before exiting.
	Stderr string
	// ExitCode is returned by the stub.
	ExitCode int
	// SleepSeconds delays the stub, used to exercise timeouts.
	SleepSeconds int
}

// WriteYtDlpStub writes a shell script that mimics yt-dlp according to stub
// and returns its path. Tests calling it are skipped on Windows.
func WriteYtDlpStub(t testing.TB, stub YtDlpStub) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs are not supported on windows")
	}

	dir := t.TempDir()
	subsPath := filepath.Join(dir, "subs.fixture")
	infoPath := filepath.Join(dir, "info.fixture")
	errPath := filepath.Join(dir, "stderr.fixture")
	writeFixture(t, subsPath, stub.Subtitles)
	writeFixture(t, infoPath, stub.InfoJSON)
	writeFixture(t, errPath, stub.Stderr)

	ext := strings.TrimPrefix(stub.SubtitleExt, ".")
	if ext == "" {
		ext = "vtt"
	}

	var script strings.Builder
	script.WriteString("#!/bin/sh\n")
	script.WriteString("out=\"\"\ninfo=0\nlang=\"en\"\n")
	script.WriteString("while [ $# -gt 0 ]; do\n")
	script.WriteString("  case \"$1\" in\n")
	script.WriteString("    -o) shift; out=\"$1\" ;;\n")
	script.WriteString("    --sub-langs) shift; lang=\"$1\" ;;\n")
	script.WriteString("    -J) info=1 ;;\n")
	script.WriteString("  esac\n  shift\ndone\n")
	if stub.SleepSeconds > 0 {
		fmt.Fprintf(&script, "sleep %d\n", stub.SleepSeconds)
	}
	fmt.Fprintf(&script, "cat '%s' >&2\n", errPath)
	fmt.Fprintf(&script, "if [ \"$info\" = \"1\" ]; then cat '%s'; exit %d; fi\n", infoPath, stub.ExitCode)
	if stub.Subtitles != "" {
		fmt.Fprintf(&script, "if [ -n \"$out\" ]; then cp '%s' \"$(dirname \"$out\")/stub.$lang.%s\"; fi\n", subsPath, ext)
	}
	fmt.Fprintf(&script, "exit %d\n", stub.ExitCode)

	path := filepath.Join(dir, "yt-dlp")
	if err := os.WriteFile(path, []byte(script.String()), 0o755); err != nil {
		t.Fatalf("write yt-dlp stub: %v", err)
	}
	return path
}

func writeFixture(t testing.TB, path, contents string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
