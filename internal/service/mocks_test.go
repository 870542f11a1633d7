package service

import (
	"context"

	"wikiquiz/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockArticleFetcher ---
type MockArticleFetcher struct {
	mock.Mock
}

func (m *MockArticleFetcher) Fetch(ctx context.Context, pageURL string, questionCount int) (*domain.SourceDocument, error) {
	args := m.Called(ctx, pageURL, questionCount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SourceDocument), args.Error(1)
}

// --- MockTextGenerator ---
type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) GenerateText(ctx context.Context, prompt string, params domain.GenerationParams) (string, error) {
	args := m.Called(ctx, prompt, params)
	return args.String(0), args.Error(1)
}

func (m *MockTextGenerator) Available() bool {
	args := m.Called()
	return args.Bool(0)
}

// --- MockHistoryRepository ---
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) Save(ctx context.Context, record *domain.HistoryRecord) (int64, error) {
	args := m.Called(ctx, record)
	return int64(args.Int(0)), args.Error(1)
}

func (m *MockHistoryRepository) List(ctx context.Context) ([]*domain.HistoryRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.HistoryRecord), args.Error(1)
}

func (m *MockHistoryRepository) GetByID(ctx context.Context, id int64) (*domain.HistoryRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HistoryRecord), args.Error(1)
}
