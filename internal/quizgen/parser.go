package quizgen

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"

	"wikiquiz/internal/domain"
)

// partialAcceptRatio is the minimum share of the requested question count a
// generation result must clear to be accepted with fewer questions than asked.
const partialAcceptRatio = 0.6

// ParseFailureReason identifies why a raw generation reply was rejected
type ParseFailureReason string

const (
	ReasonNoJSONObject ParseFailureReason = "NO_JSON_OBJECT"
	ReasonMalformed    ParseFailureReason = "MALFORMED_JSON"
	ReasonNoQuestions  ParseFailureReason = "NO_QUESTIONS"
	ReasonTooFewValid  ParseFailureReason = "TOO_FEW_VALID_QUESTIONS"
)

// ParseError is a recoverable failure of the response parser; it always
// triggers the fallback generator.
type ParseError struct {
	Reason ParseFailureReason
	Detail string
}

func (e *ParseError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("response parse failed (%s): %s", e.Reason, e.Detail)
	}
	return fmt.Sprintf("response parse failed (%s)", e.Reason)
}

// parsedQuiz is the shape the LLM is instructed to return
type parsedQuiz struct {
	Questions     []parsedQuestion `json:"questions"`
	RelatedTopics []string         `json:"related_topics"`
}

type parsedQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
	Difficulty  string   `json:"difficulty"`
}

var (
	leadingFenceRe  = regexp.MustCompile("^```(?:json)?[ \t]*\r?\n?")
	trailingFenceRe = regexp.MustCompile("\r?\n?[ \t]*```$")
)

// StripCodeFences removes an enclosing markdown code fence, if present.
func StripCodeFences(raw string) string {
	s := strings.TrimSpace(raw)
	s = leadingFenceRe.ReplaceAllString(s, "")
	s = trailingFenceRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// ExtractObjectSpan returns the outermost {...} span of s, greedy from the
// first opening brace to the last closing brace.
func ExtractObjectSpan(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

// decodeQuiz runs the ordered extraction chain: direct parse of the cleaned
// text, then parse of the outermost brace span.
func decodeQuiz(cleaned string) (*parsedQuiz, *ParseError) {
	var quiz parsedQuiz
	if err := json.Unmarshal([]byte(cleaned), &quiz); err == nil {
		return &quiz, nil
	}

	span, ok := ExtractObjectSpan(cleaned)
	if !ok {
		return nil, &ParseError{Reason: ReasonNoJSONObject}
	}
	quiz = parsedQuiz{}
	if err := json.Unmarshal([]byte(span), &quiz); err != nil {
		return nil, &ParseError{Reason: ReasonMalformed, Detail: err.Error()}
	}
	return &quiz, nil
}

// validQuestion reports whether a parsed element satisfies the schema: exactly
// four options, a non-empty answer, and an answer that exactly matches one of
// the options. Elements whose answer matches no option are dropped rather than
// repaired, so every accepted question carries exactly one correct option.
func validQuestion(q parsedQuestion) bool {
	if len(q.Options) != domain.NumOptions {
		return false
	}
	if strings.TrimSpace(q.Answer) == "" {
		return false
	}
	for _, opt := range q.Options {
		if opt == q.Answer {
			return true
		}
	}
	return false
}

// ParseQuizResponse cleans the raw generation reply, extracts the quiz object
// and validates it against the required schema. Invalid question elements are
// dropped; the remainder is truncated to questionCount when oversized, accepted
// as-is when it clears partialAcceptRatio of the request, and rejected
// otherwise. All failures are recoverable.
func ParseQuizResponse(raw string, difficulty domain.Difficulty, questionCount int) (*domain.Quiz, error) {
	cleaned := StripCodeFences(raw)

	parsed, perr := decodeQuiz(cleaned)
	if perr != nil {
		return nil, perr
	}
	if len(parsed.Questions) == 0 {
		return nil, &ParseError{Reason: ReasonNoQuestions}
	}

	valid := make([]parsedQuestion, 0, len(parsed.Questions))
	for _, q := range parsed.Questions {
		if validQuestion(q) {
			valid = append(valid, q)
		}
	}

	minAccepted := int(math.Ceil(partialAcceptRatio * float64(questionCount)))
	switch {
	case len(valid) >= questionCount:
		valid = valid[:questionCount]
	case len(valid) >= minAccepted:
		// Partial accept: fewer questions than requested is tolerated here.
	default:
		return nil, &ParseError{
			Reason: ReasonTooFewValid,
			Detail: fmt.Sprintf("%d valid of %d requested, need %d", len(valid), questionCount, minAccepted),
		}
	}

	questions := make([]domain.Question, 0, len(valid))
	for _, q := range valid {
		diff := q.Difficulty
		if diff == "" {
			diff = string(difficulty)
		}
		options := make([]domain.Option, 0, domain.NumOptions)
		marked := false
		for _, opt := range q.Options {
			// Only the first match is marked in case the LLM duplicated
			// an option text.
			correct := !marked && opt == q.Answer
			if correct {
				marked = true
			}
			options = append(options, domain.Option{Text: opt, IsCorrect: correct})
		}
		questions = append(questions, domain.Question{
			Text:        q.Question,
			Options:     options,
			Explanation: q.Explanation,
			Difficulty:  diff,
		})
	}

	return &domain.Quiz{
		Questions:     questions,
		RelatedTopics: parsed.RelatedTopics,
	}, nil
}
