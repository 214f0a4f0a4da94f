package transcript

import "strings"

// CollapseRollingRepeats removes rolling-caption artifacts: a line that is
// strictly shorter than the next line and a prefix of it has been supplanted
// by that line and is dropped. Lines of equal length are never collapsed.
func CollapseRollingRepeats(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for i, line := range lines {
		if i+1 < len(lines) && isRollingPrefix(line, lines[i+1]) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func isRollingPrefix(line, next string) bool {
	line = strings.TrimSpace(line)
	next = strings.TrimSpace(next)
	return len(line) < len(next) && strings.HasPrefix(next, line)
}
