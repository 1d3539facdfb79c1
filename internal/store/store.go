// Package store persists the append-only run log. Two backends are
// provided: an embedded SQLite file (default) and Postgres. Both write
// the same chat_logs table and serialize concurrent appends themselves;
// callers never read-then-write.
package store

import (
	"context"
	"time"
)

// Entry is one persisted run.
type Entry struct {
	ID            int64     `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	Persona       string    `json:"persona"`
	URL           string    `json:"url"`
	Utterance     string    `json:"utterance"`
	NextAction    string    `json:"next_action"`
	FrictionScore int       `json:"friction_score"`
}

// LogStore is the persistence boundary of the pipeline.
type LogStore interface {
	// Append writes one entry. The store assigns id and, when the
	// entry's Timestamp is zero, the write time.
	Append(ctx context.Context, e Entry) error

	// Recent returns up to limit entries, most recent first.
	Recent(ctx context.Context, limit int) ([]Entry, error)

	Close() error
}
