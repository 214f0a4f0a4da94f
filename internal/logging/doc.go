// Package logging assembles structured slog loggers and formatting helpers used
// across findex services.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so API handlers can tag log lines
// with request IDs, routes, and video identifiers. The package also provides a
// no-op logger for tests and wiring code that cannot fail.
package logging
