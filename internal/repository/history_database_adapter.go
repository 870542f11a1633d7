package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"wikiquiz/internal/domain"
	"wikiquiz/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// HistoryDatabaseAdapter implements domain.HistoryRepository over sqlx.
// The table is append-only; rows are never updated or deleted.
type HistoryDatabaseAdapter struct {
	db *sqlx.DB
}

// NewHistoryDatabaseAdapter creates a new HistoryDatabaseAdapter
func NewHistoryDatabaseAdapter(db *sqlx.DB) *HistoryDatabaseAdapter {
	return &HistoryDatabaseAdapter{db: db}
}

// Save inserts a history record and returns its auto-increment id.
func (a *HistoryDatabaseAdapter) Save(ctx context.Context, record *domain.HistoryRecord) (int64, error) {
	result, err := a.db.ExecContext(ctx,
		`INSERT INTO quiz_history (url, title, quiz_json, summary, created_at) VALUES (?, ?, ?, ?, ?)`,
		record.URL, record.Title, record.QuizJSON, record.Summary, record.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert history record: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted id: %w", err)
	}
	record.ID = id
	return id, nil
}

// List returns all history records, newest first.
func (a *HistoryDatabaseAdapter) List(ctx context.Context) ([]*domain.HistoryRecord, error) {
	var rows []models.QuizHistory
	err := a.db.SelectContext(ctx, &rows,
		`SELECT id, url, title, quiz_json, summary, created_at FROM quiz_history ORDER BY id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list history records: %w", err)
	}

	records := make([]*domain.HistoryRecord, 0, len(rows))
	for i := range rows {
		records = append(records, toDomainHistoryRecord(&rows[i]))
	}
	return records, nil
}

// GetByID returns nil, nil when no record exists with the given id.
func (a *HistoryDatabaseAdapter) GetByID(ctx context.Context, id int64) (*domain.HistoryRecord, error) {
	var row models.QuizHistory
	err := a.db.GetContext(ctx, &row,
		`SELECT id, url, title, quiz_json, summary, created_at FROM quiz_history WHERE id = ?`,
		id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get history record %d: %w", id, err)
	}
	return toDomainHistoryRecord(&row), nil
}

func toDomainHistoryRecord(row *models.QuizHistory) *domain.HistoryRecord {
	return &domain.HistoryRecord{
		ID:        row.ID,
		URL:       row.URL,
		Title:     row.Title,
		QuizJSON:  row.QuizJSON,
		Summary:   row.Summary,
		CreatedAt: row.CreatedAt,
	}
}

var _ domain.HistoryRepository = (*HistoryDatabaseAdapter)(nil)
