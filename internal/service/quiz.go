package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"wikiquiz/internal/domain"
	"wikiquiz/internal/dto"
	"wikiquiz/internal/logger"
	"wikiquiz/internal/quizgen"

	"go.uber.org/zap"
)

const (
	defaultDifficulty    = domain.DifficultyEasy
	defaultQuestionCount = 5
)

// ArticleFetcher is the port through which the pipeline retrieves source
// documents.
type ArticleFetcher interface {
	Fetch(ctx context.Context, pageURL string, questionCount int) (*domain.SourceDocument, error)
}

// QuizService defines the quiz pipeline operations
type QuizService interface {
	GenerateQuiz(ctx context.Context, req *dto.QuizRequest) (*dto.QuizResponse, error)
	GetHistory(ctx context.Context) ([]dto.HistoryItemResponse, error)
	GetQuizByID(ctx context.Context, id int64) (*dto.QuizDetailResponse, error)
	APIKeySet() bool
}

// quizService implements QuizService
type quizService struct {
	fetcher   ArticleFetcher
	generator domain.TextGenerator
	fallback  *quizgen.FallbackGenerator
	shuffler  *quizgen.Shuffler
	repo      domain.HistoryRepository
}

// NewQuizService creates a new instance of quizService
func NewQuizService(
	fetcher ArticleFetcher,
	generator domain.TextGenerator,
	fallback *quizgen.FallbackGenerator,
	shuffler *quizgen.Shuffler,
	repo domain.HistoryRepository,
) QuizService {
	return &quizService{
		fetcher:   fetcher,
		generator: generator,
		fallback:  fallback,
		shuffler:  shuffler,
		repo:      repo,
	}
}

// GenerateQuiz runs the pipeline: fetch, prompt, generate, parse, fall back
// when needed, shuffle, persist. Only fetch-side failures are returned to the
// caller; every generation-side failure silently degrades to the fallback
// generator.
func (s *quizService) GenerateQuiz(ctx context.Context, req *dto.QuizRequest) (*dto.QuizResponse, error) {
	quizReq := normalizeRequest(req)

	doc, err := s.fetcher.Fetch(ctx, quizReq.SourceURL, quizReq.QuestionCount)
	if err != nil {
		return nil, err
	}

	quiz := s.generateFromLLM(ctx, doc, quizReq)
	if quiz == nil {
		logger.Get().Info("Using fallback quiz generator",
			zap.String("url", quizReq.SourceURL),
			zap.Int("question_count", quizReq.QuestionCount),
		)
		quiz = s.fallback.Generate(doc, quizReq.Difficulty, quizReq.QuestionCount)
	}

	quiz.Title = doc.Title
	if len(quiz.RelatedTopics) == 0 {
		quiz.RelatedTopics = defaultRelatedTopics(doc)
	}

	s.shuffler.Shuffle(quiz.Questions)

	resp := toQuizResponse(quiz)
	s.persist(ctx, quizReq.SourceURL, doc, resp)
	return resp, nil
}

// generateFromLLM returns nil on any recoverable generation or parse failure.
func (s *quizService) generateFromLLM(ctx context.Context, doc *domain.SourceDocument, req *domain.QuizRequest) *domain.Quiz {
	if !s.generator.Available() {
		logger.Get().Info("No generation credential configured, skipping LLM call")
		return nil
	}

	prompt := quizgen.BuildPrompt(doc, req.Difficulty, req.QuestionCount)
	params := domain.ParamsForQuestionCount(req.QuestionCount)

	raw, err := s.generator.GenerateText(ctx, prompt, params)
	if err != nil {
		logger.Get().Warn("Generation call failed, falling back",
			zap.Error(err),
			zap.String("url", req.SourceURL),
		)
		return nil
	}

	quiz, err := quizgen.ParseQuizResponse(raw, req.Difficulty, req.QuestionCount)
	if err != nil {
		logger.Get().Warn("Generation output rejected, falling back",
			zap.Error(err),
			zap.String("raw_prefix", prefix(raw, 200)),
		)
		return nil
	}

	logger.Get().Info("Generated quiz from LLM",
		zap.Int("questions", len(quiz.Questions)),
		zap.Int("requested", req.QuestionCount),
	)
	return quiz
}

// persist writes the history record. A storage failure is logged, not
// surfaced: a successfully generated quiz is still returned to the caller.
func (s *quizService) persist(ctx context.Context, sourceURL string, doc *domain.SourceDocument, resp *dto.QuizResponse) {
	payload, err := json.Marshal(struct {
		Questions     []dto.QuestionResponse `json:"questions"`
		RelatedTopics []string               `json:"related_topics"`
	}{resp.Questions, resp.RelatedTopics})
	if err != nil {
		logger.Get().Error("Failed to serialize quiz payload", zap.Error(err))
		return
	}

	record := &domain.HistoryRecord{
		URL:       sourceURL,
		Title:     doc.Title,
		QuizJSON:  string(payload),
		Summary:   doc.Summary(),
		CreatedAt: time.Now(),
	}
	if _, err := s.repo.Save(ctx, record); err != nil {
		logger.Get().Error("Failed to save history record",
			zap.Error(err),
			zap.String("url", sourceURL),
		)
	}
}

// GetHistory implements QuizService
func (s *quizService) GetHistory(ctx context.Context) ([]dto.HistoryItemResponse, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list quiz history", err)
	}

	items := make([]dto.HistoryItemResponse, 0, len(records))
	for _, rec := range records {
		items = append(items, dto.HistoryItemResponse{
			URL:       rec.URL,
			Title:     rec.Title,
			CreatedAt: rec.CreatedAt.Format(time.RFC3339),
			QuizData:  json.RawMessage(rec.QuizJSON),
		})
	}
	return items, nil
}

// GetQuizByID implements QuizService
func (s *quizService) GetQuizByID(ctx context.Context, id int64) (*dto.QuizDetailResponse, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get quiz history record", err)
	}
	if record == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("Quiz not found with ID: %d", id))
	}

	return &dto.QuizDetailResponse{
		ID:       record.ID,
		URL:      record.URL,
		Title:    record.Title,
		QuizData: json.RawMessage(record.QuizJSON),
	}, nil
}

// APIKeySet implements QuizService
func (s *quizService) APIKeySet() bool {
	return s.generator.Available()
}

func normalizeRequest(req *dto.QuizRequest) *domain.QuizRequest {
	difficulty := domain.Difficulty(req.Difficulty)
	if req.Difficulty == "" {
		difficulty = defaultDifficulty
	}
	count := req.NumberOfQuestions
	if count <= 0 {
		count = defaultQuestionCount
	}
	return &domain.QuizRequest{
		SourceURL:     req.URL,
		Difficulty:    difficulty,
		QuestionCount: count,
	}
}

// defaultRelatedTopics enriches the stock topic list with up to three section
// headings from the article.
func defaultRelatedTopics(doc *domain.SourceDocument) []string {
	topics := []string{doc.Title}
	for i, section := range doc.Sections {
		if i == 3 {
			break
		}
		topics = append(topics, section)
	}
	return append(topics, "Wikipedia", "General Knowledge")
}

func toQuizResponse(quiz *domain.Quiz) *dto.QuizResponse {
	questions := make([]dto.QuestionResponse, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		options := make([]dto.OptionResponse, 0, len(q.Options))
		for _, opt := range q.Options {
			options = append(options, dto.OptionResponse{Text: opt.Text, IsCorrect: opt.IsCorrect})
		}
		questions = append(questions, dto.QuestionResponse{
			Question:    q.Text,
			Options:     options,
			Difficulty:  q.Difficulty,
			Explanation: q.Explanation,
		})
	}
	return &dto.QuizResponse{
		Title:         quiz.Title,
		Questions:     questions,
		RelatedTopics: quiz.RelatedTopics,
	}
}

func prefix(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
