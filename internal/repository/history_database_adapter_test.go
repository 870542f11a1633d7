package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"wikiquiz/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockAdapter(t *testing.T) (*HistoryDatabaseAdapter, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db := sqlx.NewDb(mockDB, "sqlite3")
	return NewHistoryDatabaseAdapter(db), mock
}

func historyColumns() []string {
	return []string{"id", "url", "title", "quiz_json", "summary", "created_at"}
}

func TestSave(t *testing.T) {
	adapter, mock := newMockAdapter(t)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta(
		`INSERT INTO quiz_history (url, title, quiz_json, summary, created_at) VALUES (?, ?, ?, ?, ?)`,
	)).WithArgs("https://a", "A", `{"questions":[]}`, "summary text", now).
		WillReturnResult(sqlmock.NewResult(42, 1))

	record := &domain.HistoryRecord{
		URL:       "https://a",
		Title:     "A",
		QuizJSON:  `{"questions":[]}`,
		Summary:   "summary text",
		CreatedAt: now,
	}
	id, err := adapter.Save(context.Background(), record)

	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, int64(42), record.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSave_InsertError(t *testing.T) {
	adapter, mock := newMockAdapter(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO quiz_history`)).
		WillReturnError(sql.ErrConnDone)

	_, err := adapter.Save(context.Background(), &domain.HistoryRecord{URL: "https://a"})
	assert.ErrorIs(t, err, sql.ErrConnDone)
}

func TestList(t *testing.T) {
	adapter, mock := newMockAdapter(t)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, url, title, quiz_json, summary, created_at FROM quiz_history ORDER BY id DESC`,
	)).WillReturnRows(sqlmock.NewRows(historyColumns()).
		AddRow(2, "https://b", "B", `{"questions":[]}`, "s2", now).
		AddRow(1, "https://a", "A", `{"questions":[]}`, "s1", now.Add(-time.Hour)))

	records, err := adapter.List(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int64(2), records[0].ID)
	assert.Equal(t, "B", records[0].Title)
	assert.Equal(t, int64(1), records[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_Empty(t *testing.T) {
	adapter, mock := newMockAdapter(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, url, title, quiz_json, summary, created_at FROM quiz_history`)).
		WillReturnRows(sqlmock.NewRows(historyColumns()))

	records, err := adapter.List(context.Background())

	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestGetByID(t *testing.T) {
	adapter, mock := newMockAdapter(t)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, url, title, quiz_json, summary, created_at FROM quiz_history WHERE id = ?`,
	)).WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(historyColumns()).
			AddRow(7, "https://a", "A", `{"questions":[]}`, "s", now))

	record, err := adapter.GetByID(context.Background(), 7)

	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, int64(7), record.ID)
	assert.Equal(t, "A", record.Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	adapter, mock := newMockAdapter(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, url, title, quiz_json, summary, created_at FROM quiz_history WHERE id = ?`)).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	record, err := adapter.GetByID(context.Background(), 99)

	// A missing row is not an error at this layer.
	require.NoError(t, err)
	assert.Nil(t, record)
}
