package transcript

import "strings"

// StructuralClean removes whole-line caption structure (cue timings, SRT
// sequence numbers, VTT headers, leftover positioning directives), strips
// inline cue markup from the remaining lines and assembles paragraphs. Blank lines close a paragraph; a
// line equal to the previously accepted line is dropped.
func StructuralClean(raw string) string {
	normalized := strings.ReplaceAll(raw, "\r\n", "\n")
	lines := strings.Split(normalized, "\n")

	var (
		paragraphs   []string
		current      []string
		lastAccepted string
		accepted     bool
	)
	flush := func() {
		if len(current) == 0 {
			return
		}
		paragraphs = append(paragraphs, strings.Join(current, " "))
		current = current[:0]
	}

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if isStructuralLine(trimmed) || isCueIndex(trimmed, lines, i) {
			continue
		}
		text := stripInlineMarkup(trimmed)
		if positioningPattern.MatchString(text) {
			continue
		}
		if text == "" {
			flush()
			continue
		}
		if accepted && text == lastAccepted {
			continue
		}
		current = append(current, text)
		lastAccepted = text
		accepted = true
	}
	flush()

	return strings.TrimSpace(strings.Join(paragraphs, "\n\n"))
}

func isStructuralLine(line string) bool {
	if line == "" {
		return false
	}
	if cueTimingLinePattern.MatchString(line) {
		return true
	}
	return headerLinePattern.MatchString(line) || cueSelectorPattern.MatchString(line)
}

// isCueIndex reports an SRT sequence number: a bare integer on the line
// directly above a cue timing.
func isCueIndex(line string, lines []string, i int) bool {
	if i+1 >= len(lines) || !cueIndexPattern.MatchString(line) {
		return false
	}
	return cueTimingPrefixPattern.MatchString(strings.TrimSpace(lines[i+1]))
}

// stripInlineMarkup unwraps speaker spans and removes cue timestamps and
// styling tags from a single line.
func stripInlineMarkup(line string) string {
	if !strings.Contains(line, "<") {
		return line
	}
	line = speakerSpanPattern.ReplaceAllString(line, "$1")
	line = speakerTagPattern.ReplaceAllString(line, "")
	line = inlineTimestampPattern.ReplaceAllString(line, "")
	line = cueStylePattern.ReplaceAllString(line, "")
	return strings.TrimSpace(line)
}
