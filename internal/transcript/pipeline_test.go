package transcript

import (
	"reflect"
	"strings"
	"sync"
	"testing"
)

func TestCleanScenarios(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "duplicate cues",
			in:   "00:00:01.000 --> 00:00:02.000\nHello\n\n00:00:02.000 --> 00:00:03.000\nHello\n\n",
			want: "Hello",
		},
		{name: "speaker tag", in: "<v Alice>Hi there</v>", want: "Hi there"},
		{name: "text after timing", in: "00:00:01.000 --> 00:00:02.000 Hello world\n", want: "Hello world"},
		{name: "srt cues", in: "1\n00:00:01,000 --> 00:00:02,000\nHello\n\n2\n00:00:02,000 --> 00:00:03,000\nthere\n", want: "Hello\nthere"},
		{name: "escaped newlines", in: `Line one\n\nLine two`, want: "Line one\nLine two"},
		{name: "only structure", in: "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\n", want: ""},
		{name: "rolling paragraphs", in: "I\n\nI think\n\nI think so", want: "I think so"},
		{name: "empty", in: "", want: ""},
		{name: "whitespace", in: " \n\t\n ", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.in); got != tt.want {
				t.Fatalf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanYouTubeAutoCaptions(t *testing.T) {
	raw := strings.Join([]string{
		"WEBVTT",
		"Kind: captions",
		"Language: en",
		"",
		"00:00:00.000 --> 00:00:02.000 align:start position:0%",
		"so<00:00:00.500><c> today</c><00:00:01.000><c> we</c>",
		"",
		"00:00:02.000 --> 00:00:02.010 align:start position:0%",
		"so today we",
		" ",
		"00:00:02.010 --> 00:00:04.000 align:start position:0%",
		"so today we",
		"are<00:00:02.500><c> going</c>",
		"",
	}, "\n")

	if got := Clean(raw); got != "so today we\nare going" {
		t.Fatalf("Clean() = %q", got)
	}
}

func TestCleanIdentityOnCleanInput(t *testing.T) {
	for _, in := range []string{
		"Hello world",
		"  padded text  ",
		"Plain sentence, with punctuation!",
	} {
		if got := Clean(in); got != strings.TrimSpace(in) {
			t.Fatalf("Clean(%q) = %q, want trimmed input", in, got)
		}
	}
}

func TestStagesOrder(t *testing.T) {
	want := []string{StageStructural, StageInline, StageDedupe, StageRolling}
	if got := StageNames(); !reflect.DeepEqual(got, want) {
		t.Fatalf("StageNames() = %v, want %v", got, want)
	}
}

func TestStageByName(t *testing.T) {
	stage, err := StageByName(" Dedupe ")
	if err != nil {
		t.Fatalf("StageByName: %v", err)
	}
	if stage.Name != StageDedupe {
		t.Fatalf("unexpected stage %q", stage.Name)
	}
	if got := stage.Apply("a\na"); got != "a" {
		t.Fatalf("stage apply = %q", got)
	}
	if _, err := StageByName("bogus"); err == nil {
		t.Fatal("expected error for unknown stage")
	}
}

func TestCleanWithReportMatchesClean(t *testing.T) {
	raw := "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nHello\n\n00:00:02.000 --> 00:00:03.000\nworld\n"
	cleaned, report := CleanWithReport(raw)
	if cleaned != Clean(raw) {
		t.Fatalf("CleanWithReport output %q differs from Clean", cleaned)
	}
	if report.RawBytes != len(raw) {
		t.Fatalf("raw bytes = %d, want %d", report.RawBytes, len(raw))
	}
	if report.CleanBytes != len(cleaned) {
		t.Fatalf("clean bytes = %d, want %d", report.CleanBytes, len(cleaned))
	}
	if report.Lines != 2 {
		t.Fatalf("lines = %d, want 2", report.Lines)
	}
	if len(report.Stages) != len(Stages) {
		t.Fatalf("expected %d stage traces, got %d", len(Stages), len(report.Stages))
	}
	if report.Stages[0].InputBytes != len(raw) {
		t.Fatalf("first stage input = %d", report.Stages[0].InputBytes)
	}
	if report.Empty() {
		t.Fatal("report should not be empty")
	}
}

func TestCleanWithReportEmpty(t *testing.T) {
	cleaned, report := CleanWithReport("WEBVTT\n")
	if cleaned != "" || !report.Empty() || report.Lines != 0 {
		t.Fatalf("expected empty report, got %q %+v", cleaned, report)
	}
}

func TestCleanConcurrentCalls(t *testing.T) {
	raw := "00:00:01.000 --> 00:00:02.000\nHello\n\n00:00:02.000 --> 00:00:03.000\nHello\n\nI\n\nI think"
	want := Clean(raw)

	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := Clean(raw); got != want {
				errs <- got
			}
		}()
	}
	wg.Wait()
	close(errs)
	for got := range errs {
		t.Fatalf("concurrent Clean() = %q, want %q", got, want)
	}
}
