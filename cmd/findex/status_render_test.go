package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"findex/internal/deps"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("Running", statusError, "no", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "Running:", "[ERROR] no")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("Auth", statusOK, "bearer token required", true)
	if !strings.HasPrefix(got, ansiGreen) {
		t.Fatalf("expected green prefix, got %q", got)
	}
	if !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected reset suffix, got %q", got)
	}
}

func TestRenderStatusLineWithoutMessage(t *testing.T) {
	got := renderStatusLine("Journal", statusWarn, "", false)
	if !strings.HasSuffix(got, "[WARN]") {
		t.Fatalf("expected bare badge, got %q", got)
	}
}

func TestDependencyLines(t *testing.T) {
	statuses := []deps.Status{
		{Name: "yt-dlp", Available: false, Command: "yt-dlp", Detail: `binary "yt-dlp" not found`},
		{Name: "ffprobe", Available: true, Command: "ffprobe", Version: "6.1"},
		{Name: "cookies", Available: false, Optional: true},
	}
	lines := dependencyLines(statuses)
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	if lines[0].Kind != statusError || lines[0].Message != "Missing: yt-dlp" {
		t.Fatalf("expected failing summary first, got %+v", lines[0])
	}
	if lines[1].Kind != statusError || !strings.Contains(lines[1].Message, "not found") {
		t.Fatalf("expected error detail for yt-dlp, got %+v", lines[1])
	}
	if lines[2].Message != "Ready (ffprobe 6.1)" {
		t.Fatalf("expected version in ready message, got %+v", lines[2])
	}
	if lines[3].Kind != statusWarn || lines[3].Message != "not available" {
		t.Fatalf("expected optional dependency warning, got %+v", lines[3])
	}
}

func TestDependencyLinesAllAvailable(t *testing.T) {
	lines := dependencyLines([]deps.Status{{Name: "yt-dlp", Available: true, Command: "/usr/bin/yt-dlp"}})
	if lines[0].Kind != statusOK {
		t.Fatalf("expected OK summary, got %+v", lines[0])
	}
	if lines[1].Message != "Ready (command: /usr/bin/yt-dlp)" {
		t.Fatalf("unexpected ready message %q", lines[1].Message)
	}
}

func TestWriteSection(t *testing.T) {
	var buf bytes.Buffer
	writeSection(&buf, "Journal", []statusLine{{Label: "Enabled", Kind: statusOK, Message: "yes"}}, false)
	got := buf.String()
	if !strings.HasPrefix(got, "== Journal ==\n-------------\n") {
		t.Fatalf("unexpected header %q", got)
	}
	requireContains(t, got, "Enabled:")
	if !strings.HasSuffix(got, "\n\n") {
		t.Fatalf("expected trailing blank line, got %q", got)
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatalf("expected non-file writer to disable color")
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable([]string{"Stage", "In"}, [][]string{{"structural"}}, []columnAlignment{alignLeft, alignRight})
	requireContains(t, out, "structural")
	requireContains(t, out, emptyCell)
}

func TestFormatHelpers(t *testing.T) {
	if got := formatDuration(65); got != "1:05" {
		t.Fatalf("formatDuration(65) = %q", got)
	}
	if got := formatDuration(0); got != "-" {
		t.Fatalf("formatDuration(0) = %q", got)
	}
	if got := formatUploadDate("20240131"); got != "2024-01-31" {
		t.Fatalf("formatUploadDate = %q", got)
	}
	if got := formatUploadDate("Unknown"); got != "Unknown" {
		t.Fatalf("formatUploadDate passthrough = %q", got)
	}
	if got := truncateCell("abcdef", 4); got != "abc…" {
		t.Fatalf("truncateCell = %q", got)
	}
	if got := shrinkPercent(200, 50); got != "75.0%" {
		t.Fatalf("shrinkPercent = %q", got)
	}
}
