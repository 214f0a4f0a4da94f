package transcript

import "strings"

// TimestampDedupe scrubs any cue arrows and inline timestamp markers that
// survived earlier stages, then keeps each distinct line only the first time
// it appears in the document. Blank lines are dropped.
func TimestampDedupe(text string) string {
	text = cueArrowPattern.ReplaceAllString(text, "")
	text = strictTimestampMarker.ReplaceAllString(text, "")

	lines := strings.Split(text, "\n")
	seen := make(map[string]struct{}, len(lines))
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if _, dup := seen[trimmed]; dup {
			continue
		}
		seen[trimmed] = struct{}{}
		kept = append(kept, trimmed)
	}
	return strings.Join(kept, "\n")
}
