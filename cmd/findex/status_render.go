package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"findex/internal/deps"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

// kindStyles is indexed by statusKind.
var kindStyles = [...]struct{ badge, color string }{
	statusInfo:  {"INFO", ansiBlue},
	statusOK:    {"OK", ansiGreen},
	statusWarn:  {"WARN", ansiYellow},
	statusError: {"ERROR", ansiRed},
}

const (
	statusLabelWidth = 16
	statusIndent     = "  "
)

// statusLine is one labelled row of a status section.
type statusLine struct {
	Label   string
	Kind    statusKind
	Message string
}

func paint(text, color string, colorize bool) string {
	if !colorize || color == "" {
		return text
	}
	return color + text + ansiReset
}

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	style := kindStyles[statusInfo]
	if int(kind) >= 0 && int(kind) < len(kindStyles) {
		style = kindStyles[kind]
	}
	text := strings.TrimSpace("[" + style.badge + "] " + message)
	row := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", text)
	return paint(row, style.color, colorize)
}

// writeSection prints "== title ==", a dashed rule of the same width, the
// rows, and a blank separator line.
func writeSection(w io.Writer, title string, lines []statusLine, colorize bool) {
	heading := "== " + strings.TrimSpace(title) + " =="
	fmt.Fprintln(w, paint(heading, ansiBlue, colorize))
	fmt.Fprintln(w, paint(strings.Repeat("-", len(heading)), ansiBlue, colorize))
	for _, line := range lines {
		fmt.Fprintln(w, renderStatusLine(line.Label, line.Kind, line.Message, colorize))
	}
	fmt.Fprintln(w)
}

// dependencyLines opens with a verdict row, then one row per dependency.
func dependencyLines(statuses []deps.Status) []statusLine {
	var missingNames []string
	for _, st := range deps.MissingRequired(statuses) {
		missingNames = append(missingNames, st.Name)
	}
	verdict := statusLine{Label: "Summary", Kind: statusOK, Message: "All required tools available"}
	if len(missingNames) > 0 {
		verdict = statusLine{Label: "Summary", Kind: statusError, Message: "Missing: " + strings.Join(missingNames, ", ")}
	}

	lines := []statusLine{verdict}
	for _, st := range statuses {
		lines = append(lines, dependencyLine(st))
	}
	return lines
}

func dependencyLine(st deps.Status) statusLine {
	if !st.Available {
		kind := statusError
		if st.Optional {
			kind = statusWarn
		}
		detail := strings.TrimSpace(st.Detail)
		if detail == "" {
			detail = "not available"
		}
		return statusLine{Label: st.Name, Kind: kind, Message: detail}
	}
	message := "Ready"
	switch {
	case st.Version != "":
		message = fmt.Sprintf("Ready (%s %s)", st.Command, st.Version)
	case st.File != "":
		message = fmt.Sprintf("Ready (file: %s)", st.File)
	case st.Command != "":
		message = fmt.Sprintf("Ready (command: %s)", st.Command)
	}
	return statusLine{Label: st.Name, Kind: statusOK, Message: message}
}

func shouldColorize(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
