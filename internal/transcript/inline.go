package transcript

import "strings"

// InlineClean handles payloads whose line breaks arrived as literal `\n`
// escape sequences. Cue blocks terminated by an escaped blank line are removed
// whole, stray inline timestamps and the default positioning directive are
// dropped, and every run of escaped newlines becomes one real line break.
func InlineClean(text string) string {
	if text == "" {
		return ""
	}
	text = escapedCueBlockPattern.ReplaceAllString(text, "")
	text = inlineTimestampPattern.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, defaultPositioningDirective, "")
	text = escapedNewlinePattern.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}
