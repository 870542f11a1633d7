package domain

import (
	"context"
	"time"
)

// HistoryRecord is one persisted quiz. Records are append-only: never updated
// or deleted by this system.
type HistoryRecord struct {
	ID        int64
	URL       string
	Title     string
	QuizJSON  string
	Summary   string
	CreatedAt time.Time
}

// HistoryRepository is the persistence port for completed quizzes.
type HistoryRepository interface {
	// Save inserts a record and returns its auto-increment id.
	Save(ctx context.Context, record *HistoryRecord) (int64, error)
	// List returns all records, newest first.
	List(ctx context.Context) ([]*HistoryRecord, error)
	// GetByID returns nil, nil when no record exists with the given id.
	GetByID(ctx context.Context, id int64) (*HistoryRecord, error)
}
