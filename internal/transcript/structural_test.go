package transcript

import "testing"

func TestStructuralCleanDropsTimingAndHeaders(t *testing.T) {
	raw := "WEBVTT\nKind: captions\nLanguage: en\n\n" +
		"00:00:01.000 --> 00:00:02.000 align:start position:0%\nHello world\n\n" +
		"00:00:02.000 --> 00:00:03.500\nHow are you\n"

	got := StructuralClean(raw)
	want := "Hello world\n\nHow are you"
	if got != want {
		t.Fatalf("StructuralClean() = %q, want %q", got, want)
	}
}

func TestStructuralCleanInlineMarkup(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "speaker span", in: "<v Alice>Hi there</v>", want: "Hi there"},
		{name: "speaker with class", in: "<v.loud Bob>Stop</v> now", want: "Stop now"},
		{name: "unclosed speaker", in: "<v Narrator>Once upon a time", want: "Once upon a time"},
		{name: "inline timestamps and styling", in: "Hello<00:00:01.200><c> world</c>", want: "Hello world"},
		{name: "styled class tag", in: "<c.colorE5E5E5>quiet</c> please", want: "quiet please"},
		{name: "short inline timestamp", in: "so<01:02.500> what", want: "so what"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StructuralClean(tt.in); got != tt.want {
				t.Fatalf("StructuralClean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStructuralCleanAssemblesParagraphs(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "consecutive lines join", in: "first line\nsecond line", want: "first line second line"},
		{name: "blank line splits", in: "one\n\ntwo", want: "one\n\ntwo"},
		{name: "flush without trailing blank", in: "x\ny", want: "x y"},
		{name: "crlf input", in: "Hello\r\n\r\nWorld\r\n", want: "Hello\n\nWorld"},
		{name: "adjacent duplicate dropped", in: "a\na\nb", want: "a b"},
		{name: "duplicate across blank line dropped", in: "a\n\na\n\nb", want: "a\n\nb"},
		{name: "positioning leftover ignored", in: "one\nalign:start position:0%\ntwo", want: "one two"},
		{name: "whitespace only line splits", in: "one\n   \ntwo", want: "one\n\ntwo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StructuralClean(tt.in); got != tt.want {
				t.Fatalf("StructuralClean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStructuralCleanHeadersCaseInsensitive(t *testing.T) {
	raw := "webvtt\nnote generated by a robot\nSTYLE\n::cue(.yellow) { color: yellow }\nREGION id:fred\nHello"
	if got := StructuralClean(raw); got != "Hello" {
		t.Fatalf("expected only dialogue to remain, got %q", got)
	}
}

func TestStructuralCleanTimingVariants(t *testing.T) {
	raw := "01:02.000 --> 01:04.000\nshort clock\n\n" +
		"00:00:05,000 --> 00:00:06,000\nsrt clock\n\n" +
		"00:00:07.000-->00:00:08.000 line:90%\ntight arrow"
	want := "short clock\n\nsrt clock\n\ntight arrow"
	if got := StructuralClean(raw); got != want {
		t.Fatalf("StructuralClean() = %q, want %q", got, want)
	}
}

func TestStructuralCleanEmpty(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\n\n"} {
		if got := StructuralClean(in); got != "" {
			t.Fatalf("StructuralClean(%q) = %q, want empty", in, got)
		}
	}
}

func TestStructuralCleanNoOpOnCleanText(t *testing.T) {
	clean := "Already clean paragraph.\n\nAnother one."
	if got := StructuralClean(clean); got != clean {
		t.Fatalf("expected clean text untouched, got %q", got)
	}
}

func TestStructuralCleanDropsSRTSequenceNumbers(t *testing.T) {
	raw := "1\n00:00:01,000 --> 00:00:02,000\nHello\n\n2\n00:00:02,000 --> 00:00:03,000\nWorld\n\n42\n\nis the answer"
	want := "Hello\n\nWorld\n\n42\n\nis the answer"
	if got := StructuralClean(raw); got != want {
		t.Fatalf("StructuralClean() = %q, want %q", got, want)
	}
}

func TestStructuralCleanKeepsTextAfterTiming(t *testing.T) {
	raw := "00:00:01.000 --> 00:00:02.000 Hello world\n\n00:00:03.000 --> 00:00:04.000 align:middle line:84%\nsecond cue"
	want := "00:00:01.000 --> 00:00:02.000 Hello world\n\nsecond cue"
	if got := StructuralClean(raw); got != want {
		t.Fatalf("StructuralClean() = %q, want %q", got, want)
	}
}
