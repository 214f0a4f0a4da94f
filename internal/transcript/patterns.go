package transcript

import "regexp"

// Line-level patterns used by StructuralClean.
var (
	cueTimingLinePattern   = regexp.MustCompile(`^(?:\d{2}:)?\d{2}:\d{2}[.,]\d{3}\s*-->\s*(?:\d{2}:)?\d{2}:\d{2}[.,]\d{3}(?:\s+(?:align|position|line|size|vertical|region):\S+)*\s*$`)
	// cueTimingPrefixPattern matches any line that opens with a cue arrow,
	// including malformed cues that carry text after the timing.
	cueTimingPrefixPattern = regexp.MustCompile(`^(?:\d{2}:)?\d{2}:\d{2}[.,]\d{3}\s*-->`)
	cueIndexPattern        = regexp.MustCompile(`^\d+$`)
	headerLinePattern      = regexp.MustCompile(`(?i)^(?:WEBVTT|Kind:|Language:|NOTE|STYLE|REGION)`)
	cueSelectorPattern     = regexp.MustCompile(`(?i)::cue`)
	positioningPattern     = regexp.MustCompile(`^align:\w+(?:\s+position:\d+(?:\.\d+)?%)?$`)
)

// Inline markup patterns shared by several stages.
var (
	speakerSpanPattern     = regexp.MustCompile(`<v(?:\.[^\s>]*)?\s+[^>]*>(.*?)</v>`)
	speakerTagPattern      = regexp.MustCompile(`<v(?:\.[^\s>]*)?\s+[^>]*>|</v>`)
	inlineTimestampPattern = regexp.MustCompile(`<(?:\d{2}:)?\d{2}:\d{2}\.\d{3}>`)
	cueStylePattern        = regexp.MustCompile(`<c(?:[.\s][^>]*)?>|</c>`)
)

// Escaped-sequence patterns used by InlineClean. The payload carries the two
// characters `\` and `n` rather than a real line break.
var (
	escapedCueBlockPattern = regexp.MustCompile(`(?s)(?:\d{2}:)?\d{2}:\d{2}\.\d{3}\s*-->\s*(?:\d{2}:)?\d{2}:\d{2}\.\d{3}.*?\\n\\n`)
	escapedNewlinePattern  = regexp.MustCompile(`(?:\\n)+`)
)

// Patterns scrubbed anywhere in the text by TimestampDedupe.
var (
	cueArrowPattern       = regexp.MustCompile(`\d{2}:\d{2}:\d{2}\.\d{3}\s*-->\s*\d{2}:\d{2}:\d{2}\.\d{3}`)
	strictTimestampMarker = regexp.MustCompile(`<\d{2}:\d{2}:\d{2}\.\d{3}>`)
)

const defaultPositioningDirective = "align:start position:0%"
