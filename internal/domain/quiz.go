package domain

import (
	"fmt"
	"strings"
)

// NumOptions is the number of choices every question carries.
const NumOptions = 4

// summaryLength is how much of the article body is persisted per record.
const summaryLength = 500

// Difficulty levels accepted by the pipeline
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// IsValidDifficulty reports whether s names a known difficulty level.
func IsValidDifficulty(s string) bool {
	switch Difficulty(strings.ToLower(s)) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Option is a single multiple-choice answer
type Option struct {
	Text      string
	IsCorrect bool
}

// Question is one multiple-choice question with exactly NumOptions options,
// exactly one of which is correct.
type Question struct {
	Text        string
	Options     []Option
	Explanation string
	Difficulty  string
}

// Validate checks the question invariants
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return NewInvalidInputError("question text is required")
	}
	if len(q.Options) != NumOptions {
		return NewInvalidInputError(fmt.Sprintf("question must have exactly %d options, got %d", NumOptions, len(q.Options)))
	}
	correct := 0
	for _, opt := range q.Options {
		if opt.IsCorrect {
			correct++
		}
	}
	if correct != 1 {
		return NewInvalidInputError(fmt.Sprintf("question must have exactly one correct option, got %d", correct))
	}
	return nil
}

// CorrectOption returns the correct option, or nil if none is marked.
func (q *Question) CorrectOption() *Option {
	for i := range q.Options {
		if q.Options[i].IsCorrect {
			return &q.Options[i]
		}
	}
	return nil
}

// Quiz is a generated set of questions about one article
type Quiz struct {
	Title         string
	Questions     []Question
	RelatedTopics []string
}

// Validate checks all question invariants
func (q *Quiz) Validate() error {
	if len(q.Questions) == 0 {
		return NewInvalidInputError("quiz must have at least one question")
	}
	for i := range q.Questions {
		if err := q.Questions[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// SourceDocument is the fetched and cleaned article text, the sole factual
// basis for generated questions.
type SourceDocument struct {
	Title    string
	Body     string
	Sections []string
}

// Summary returns the leading slice of the body persisted with each record.
func (d *SourceDocument) Summary() string {
	runes := []rune(d.Body)
	if len(runes) <= summaryLength {
		return d.Body
	}
	return string(runes[:summaryLength])
}

// QuizRequest captures one accepted generation request. Immutable once built.
type QuizRequest struct {
	SourceURL     string
	Difficulty    Difficulty
	QuestionCount int
}
