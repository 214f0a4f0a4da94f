// Package journal records request outcomes in a SQLite database.
//
// Each API request that fetches or cleans subtitles appends one Entry: the
// route, source URL, video ID, language, outcome, HTTP status, raw and cleaned
// byte counts, and duration. Transcript text is never stored; the journal is
// an audit trail and debugging aid, not a cache.
//
// The schema is embedded from schema.sql and stamped into PRAGMA user_version.
// A journal at any other version is rejected with ErrSchemaMismatch.
package journal
