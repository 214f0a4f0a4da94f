// Package transcript turns raw caption payloads into clean, deduplicated text.
//
// Cleaning is an ordered pipeline of pure string stages:
//
//	structural -> inline -> dedupe -> rolling
//
// StructuralClean drops cue timing, header and markup lines and assembles
// paragraphs. InlineClean removes cue blocks hidden behind escaped newline
// sequences and turns those sequences into real line breaks. TimestampDedupe
// scrubs leftover timing markers and removes repeated lines anywhere in the
// document. CollapseRollingRepeats drops rolling-caption lines that are a
// strict prefix of the line that follows them.
//
// Every stage is total over arbitrary input and holds no state between calls,
// so a single Clean call is safe to run from any number of goroutines.
package transcript
