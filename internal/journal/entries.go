package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Entry is one recorded request outcome.
type Entry struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	Route      string    `json:"route"`
	URL        string    `json:"url,omitempty"`
	VideoID    string    `json:"video_id,omitempty"`
	Language   string    `json:"language,omitempty"`
	Outcome    string    `json:"outcome"`
	StatusCode int       `json:"status_code"`
	RawBytes   int       `json:"raw_bytes"`
	CleanBytes int       `json:"clean_bytes"`
	DurationMS int64     `json:"duration_ms"`
	Detail     string    `json:"detail,omitempty"`
}

// timestampLayout keeps created_at lexically sortable.
const timestampLayout = "2006-01-02T15:04:05.000000000Z"

const entryColumns = "id, created_at, route, url, video_id, language, outcome, status_code, raw_bytes, clean_bytes, duration_ms, detail"

// DefaultRecentLimit bounds Recent when the caller passes a non-positive limit.
const DefaultRecentLimit = 50

// Record inserts entry, assigning an ID and timestamp when they are unset.
func (s *Store) Record(ctx context.Context, entry Entry) (Entry, error) {
	if s == nil || s.db == nil {
		return entry, errors.New("journal: store is closed")
	}
	if strings.TrimSpace(entry.Route) == "" {
		return entry, errors.New("journal: route is required")
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	entry.CreatedAt = entry.CreatedAt.UTC()
	if entry.Outcome == "" {
		entry.Outcome = "ok"
	}

	_, err := s.exec(ctx,
		"INSERT INTO requests ("+entryColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		entry.ID,
		entry.CreatedAt.Format(timestampLayout),
		entry.Route,
		entry.URL,
		entry.VideoID,
		entry.Language,
		entry.Outcome,
		entry.StatusCode,
		entry.RawBytes,
		entry.CleanBytes,
		entry.DurationMS,
		entry.Detail,
	)
	if err != nil {
		return entry, fmt.Errorf("insert journal entry: %w", err)
	}
	return entry, nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	ctx = orBackground(ctx)
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+entryColumns+" FROM requests ORDER BY created_at DESC, rowid DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal: %w", err)
	}
	return entries, nil
}

// Prune deletes entries created before cutoff and reports how many were removed.
func (s *Store) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.exec(ctx,
		"DELETE FROM requests WHERE created_at < ?",
		cutoff.UTC().Format(timestampLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("prune journal: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune journal rows: %w", err)
	}
	return removed, nil
}

// Stats returns entry counts grouped by outcome.
func (s *Store) Stats(ctx context.Context) (map[string]int, error) {
	ctx = orBackground(ctx)
	rows, err := s.db.QueryContext(ctx, "SELECT outcome, COUNT(1) FROM requests GROUP BY outcome")
	if err != nil {
		return nil, fmt.Errorf("journal stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]int)
	for rows.Next() {
		var (
			outcome string
			count   int
		)
		if err := rows.Scan(&outcome, &count); err != nil {
			return nil, fmt.Errorf("scan journal stats: %w", err)
		}
		stats[outcome] = count
	}
	return stats, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var (
		entry     Entry
		createdAt string
	)
	if err := row.Scan(
		&entry.ID,
		&createdAt,
		&entry.Route,
		&entry.URL,
		&entry.VideoID,
		&entry.Language,
		&entry.Outcome,
		&entry.StatusCode,
		&entry.RawBytes,
		&entry.CleanBytes,
		&entry.DurationMS,
		&entry.Detail,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entry, err
		}
		return entry, fmt.Errorf("scan journal entry: %w", err)
	}
	parsed, err := time.Parse(timestampLayout, createdAt)
	if err != nil {
		return entry, fmt.Errorf("parse journal timestamp %q: %w", createdAt, err)
	}
	entry.CreatedAt = parsed.UTC()
	return entry, nil
}
