// Package logs reads the findex service log for the CLI: the last N lines of
// findex.log and follow mode that streams appended lines until the caller's
// context ends.
package logs
