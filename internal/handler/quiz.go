package handler

import (
	"wikiquiz/internal/domain"
	"wikiquiz/internal/dto"
	"wikiquiz/internal/logger"
	"wikiquiz/internal/service"
	"wikiquiz/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service   service.QuizService
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService, validator *validation.Validator) *QuizHandler {
	return &QuizHandler{
		service:   service,
		validator: validator,
	}
}

// Status godoc
// @Summary Liveness and config probe
// @Description Reports whether the backend is running and a generation API key is set
// @Tags status
// @Produce json
// @Success 200 {object} dto.StatusResponse
// @Router / [get]
func (h *QuizHandler) Status(c *fiber.Ctx) error {
	return c.JSON(dto.StatusResponse{
		Status:    "Backend running",
		APIKeySet: h.service.APIKeySet(),
	})
}

// GenerateQuiz godoc
// @Summary Generate a quiz from an article URL
// @Description Fetches the article, generates a multiple-choice quiz and stores it in history
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.QuizRequest true "Quiz request"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quiz [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.QuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if req.Difficulty == "" {
		req.Difficulty = string(domain.DifficultyEasy)
	}
	if req.NumberOfQuestions == 0 {
		req.NumberOfQuestions = 5
	}

	if errs := h.validator.ValidateQuizRequest(req.URL, req.Difficulty, req.NumberOfQuestions); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.GenerateQuiz(c.Context(), &req)
	if err != nil {
		logger.Get().Warn("Quiz generation failed",
			zap.Error(err),
			zap.String("url", req.URL),
		)
		return err
	}

	return c.JSON(resp)
}

// GetHistory godoc
// @Summary List quiz history
// @Description Returns all generated quizzes, newest first
// @Tags history
// @Produce json
// @Success 200 {array} dto.HistoryItemResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /history [get]
func (h *QuizHandler) GetHistory(c *fiber.Ctx) error {
	items, err := h.service.GetHistory(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(items)
}

// GetQuizByID godoc
// @Summary Get one stored quiz
// @Description Returns a stored quiz by its id
// @Tags history
// @Produce json
// @Param id path int true "Quiz ID"
// @Success 200 {object} dto.QuizDetailResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quiz/{id} [get]
func (h *QuizHandler) GetQuizByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return domain.NewInvalidInputError("quiz id must be a positive integer")
	}

	resp, err := h.service.GetQuizByID(c.Context(), int64(id))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
