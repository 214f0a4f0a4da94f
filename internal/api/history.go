package api

import (
	"context"

	"findex/internal/journal"
)

// JournalReader lists recorded request outcomes.
type JournalReader interface {
	Recent(ctx context.Context, limit int) ([]journal.Entry, error)
}

// HistoryService exposes the request journal.
type HistoryService struct {
	reader JournalReader
}

// NewHistoryService constructs a HistoryService. A nil reader yields empty
// listings.
func NewHistoryService(reader JournalReader) *HistoryService {
	return &HistoryService{reader: reader}
}

// Recent returns up to limit entries, newest first.
func (s *HistoryService) Recent(ctx context.Context, limit int) (RequestsResponse, error) {
	if s == nil || s.reader == nil {
		return RequestsResponse{Requests: []journal.Entry{}}, nil
	}
	entries, err := s.reader.Recent(ctx, limit)
	if err != nil {
		return RequestsResponse{}, err
	}
	if entries == nil {
		entries = []journal.Entry{}
	}
	return RequestsResponse{Requests: entries}, nil
}
