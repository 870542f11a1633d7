package quizgen

import (
	"fmt"
	"strings"

	"wikiquiz/internal/domain"
)

const (
	// Sentence-like segments shorter than this are not usable as options.
	fallbackMinSegmentLen = 40
	// Correct options are truncated to this many characters.
	fallbackOptionMaxLen = 140
	// How many segments are pooled per requested question.
	segmentPoolFactor = 3
)

// questionTemplates phrase the per-segment questions, parameterized by the
// article title. Rotated by slot index.
var questionTemplates = []string{
	"According to the article about %s, which of the following statements is accurate?",
	"Which statement below is taken directly from the article about %s?",
	"What does the article about %s state?",
	"Which of these facts appears in the article about %s?",
	"Based on the article about %s, which option is correct?",
	"Which of the following is mentioned in the article about %s?",
	"The article about %s includes which of these statements?",
	"Which claim below is supported by the article about %s?",
}

// distractorSets are generic not-covered phrasings; rotated by slot index so
// consecutive questions do not repeat the same wrong answers.
var distractorSets = [][3]string{
	{"A topic not covered in the article", "An unrelated historical event", "A detail from a different subject"},
	{"Information not present in the text", "A claim about an unrelated field", "A fact from another article"},
	{"A statement none of the article's sections make", "An unrelated scientific concept", "A quote from another source"},
	{"A detail the article does not discuss", "An unrelated biographical fact", "A statistic from a different topic"},
}

var genericDistractors = [3]string{"Unrelated topic", "Different subject", "Another area"}

// FallbackGenerator deterministically synthesizes a schema-valid quiz from the
// fetched text whenever the generation client or response parser cannot. Given
// the same document, difficulty and count it yields the same question texts
// and correct answers; only the later shuffle step is randomized.
type FallbackGenerator struct{}

func NewFallbackGenerator() *FallbackGenerator {
	return &FallbackGenerator{}
}

// Generate always yields exactly questionCount questions; it has no failure
// mode.
func (g *FallbackGenerator) Generate(doc *domain.SourceDocument, difficulty domain.Difficulty, questionCount int) *domain.Quiz {
	segments := splitSegments(doc.Body, questionCount*segmentPoolFactor)

	questions := make([]domain.Question, 0, questionCount)
	for i := 0; i < questionCount; i++ {
		if i < len(segments) {
			questions = append(questions, g.segmentQuestion(doc.Title, segments[i], i, difficulty))
		} else {
			questions = append(questions, g.genericQuestion(doc.Title, difficulty))
		}
	}

	return &domain.Quiz{
		Title:     doc.Title,
		Questions: questions,
	}
}

// segmentQuestion builds a question whose correct option is a sentence from
// the article and whose distractors are generic not-covered phrasings.
func (g *FallbackGenerator) segmentQuestion(title, segment string, slot int, difficulty domain.Difficulty) domain.Question {
	correct := truncateOption(segment)
	distractors := distractorSets[slot%len(distractorSets)]

	return domain.Question{
		Text: fmt.Sprintf(questionTemplates[slot%len(questionTemplates)], title),
		Options: []domain.Option{
			{Text: correct, IsCorrect: true},
			{Text: distractors[0]},
			{Text: distractors[1]},
			{Text: distractors[2]},
		},
		Explanation: fmt.Sprintf("This statement appears in the article about %s.", title),
		Difficulty:  string(difficulty),
	}
}

// genericQuestion covers articles shorter than the requested question count:
// the correct option is the article title itself.
func (g *FallbackGenerator) genericQuestion(title string, difficulty domain.Difficulty) domain.Question {
	return domain.Question{
		Text: "What is this article about?",
		Options: []domain.Option{
			{Text: title, IsCorrect: true},
			{Text: genericDistractors[0]},
			{Text: genericDistractors[1]},
			{Text: genericDistractors[2]},
		},
		Explanation: fmt.Sprintf("The article is about %s.", title),
		Difficulty:  string(difficulty),
	}
}

// splitSegments breaks the body into sentence-like segments on the literal
// terminator and keeps the first limit segments exceeding the minimum length,
// in order of appearance.
func splitSegments(body string, limit int) []string {
	var segments []string
	for _, part := range strings.Split(body, ".") {
		part = strings.TrimSpace(part)
		if len(part) > fallbackMinSegmentLen {
			segments = append(segments, part)
		}
		if len(segments) >= limit {
			break
		}
	}
	return segments
}

func truncateOption(s string) string {
	runes := []rune(s)
	if len(runes) <= fallbackOptionMaxLen {
		return s
	}
	return string(runes[:fallbackOptionMaxLen]) + "..."
}
