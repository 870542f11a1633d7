package quizgen

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"wikiquiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeQuizJSON(n int) string {
	questions := make([]string, 0, n)
	for i := 0; i < n; i++ {
		questions = append(questions, fmt.Sprintf(`{
			"question": "Question %d?",
			"options": ["Right %d", "Wrong A", "Wrong B", "Wrong C"],
			"answer": "Right %d",
			"difficulty": "easy",
			"explanation": "Explained in the article."
		}`, i+1, i+1, i+1))
	}
	return fmt.Sprintf(`{"questions": [%s], "related_topics": ["Go", "Wikipedia"]}`, strings.Join(questions, ","))
}

func TestParseQuizResponse_Direct(t *testing.T) {
	quiz, err := ParseQuizResponse(makeQuizJSON(5), domain.DifficultyEasy, 5)
	require.NoError(t, err)
	require.Len(t, quiz.Questions, 5)
	assert.Equal(t, []string{"Go", "Wikipedia"}, quiz.RelatedTopics)

	for i, q := range quiz.Questions {
		assert.Equal(t, fmt.Sprintf("Question %d?", i+1), q.Text)
		require.Len(t, q.Options, 4)
		correct := q.CorrectOption()
		require.NotNil(t, correct)
		assert.Equal(t, fmt.Sprintf("Right %d", i+1), correct.Text)
	}
}

func TestParseQuizResponse_FencedJSON(t *testing.T) {
	raw := "```json\n" + makeQuizJSON(5) + "\n```"
	quiz, err := ParseQuizResponse(raw, domain.DifficultyEasy, 5)
	require.NoError(t, err)
	assert.Len(t, quiz.Questions, 5)
}

func TestParseQuizResponse_BareFence(t *testing.T) {
	raw := "```\n" + makeQuizJSON(5) + "\n```"
	quiz, err := ParseQuizResponse(raw, domain.DifficultyEasy, 5)
	require.NoError(t, err)
	assert.Len(t, quiz.Questions, 5)
}

func TestParseQuizResponse_LeadingProse(t *testing.T) {
	raw := "Sure! Here is your quiz:\n\n" + makeQuizJSON(5) + "\n\nEnjoy!"
	quiz, err := ParseQuizResponse(raw, domain.DifficultyEasy, 5)
	require.NoError(t, err)
	assert.Len(t, quiz.Questions, 5)
}

func TestParseQuizResponse_NoJSONObject(t *testing.T) {
	_, err := ParseQuizResponse("I cannot generate a quiz for this article.", domain.DifficultyEasy, 5)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ReasonNoJSONObject, perr.Reason)
}

func TestParseQuizResponse_TruncatedJSON(t *testing.T) {
	raw := makeQuizJSON(5)
	raw = raw[:len(raw)-20] + "}"
	_, err := ParseQuizResponse(raw, domain.DifficultyEasy, 5)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ReasonMalformed, perr.Reason)
}

func TestParseQuizResponse_EmptyQuestions(t *testing.T) {
	_, err := ParseQuizResponse(`{"questions": []}`, domain.DifficultyEasy, 5)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ReasonNoQuestions, perr.Reason)
}

func TestParseQuizResponse_TruncatesOversizedResult(t *testing.T) {
	quiz, err := ParseQuizResponse(makeQuizJSON(7), domain.DifficultyEasy, 5)
	require.NoError(t, err)
	assert.Len(t, quiz.Questions, 5)
}

func TestParseQuizResponse_PartialAccept(t *testing.T) {
	// 3 valid of 5 requested clears ceil(0.6*5)=3: partial accept.
	raw := `{"questions": [
		{"question": "Q1?", "options": ["A", "B", "C", "D"], "answer": "A"},
		{"question": "Q2?", "options": ["A", "B", "C", "D"], "answer": "B"},
		{"question": "Q3?", "options": ["A", "B", "C", "D"], "answer": "C"},
		{"question": "Q4?", "options": ["A", "B", "C", "D"], "answer": ""},
		{"question": "Q5?", "options": ["A", "B"], "answer": "A"}
	]}`
	quiz, err := ParseQuizResponse(raw, domain.DifficultyMedium, 5)
	require.NoError(t, err)
	assert.Len(t, quiz.Questions, 3)
}

func TestParseQuizResponse_TooFewValid(t *testing.T) {
	raw := `{"questions": [
		{"question": "Q1?", "options": ["A", "B", "C", "D"], "answer": "A"},
		{"question": "Q2?", "options": ["A", "B", "C", "D"], "answer": "B"},
		{"question": "Q3?", "options": ["A", "B", "C"], "answer": "A"},
		{"question": "Q4?", "options": ["A", "B", "C", "D"], "answer": ""}
	]}`
	_, err := ParseQuizResponse(raw, domain.DifficultyEasy, 5)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ReasonTooFewValid, perr.Reason)
}

func TestParseQuizResponse_AnswerNotAmongOptionsIsDropped(t *testing.T) {
	raw := `{"questions": [
		{"question": "Q1?", "options": ["A", "B", "C", "D"], "answer": "E"},
		{"question": "Q2?", "options": ["A", "B", "C", "D"], "answer": "B"},
		{"question": "Q3?", "options": ["A", "B", "C", "D"], "answer": "C"}
	]}`
	quiz, err := ParseQuizResponse(raw, domain.DifficultyEasy, 3)
	require.NoError(t, err)
	require.Len(t, quiz.Questions, 2)
	for _, q := range quiz.Questions {
		assert.NotNil(t, q.CorrectOption())
	}
}

func TestParseQuizResponse_DifficultyDefaultsToRequest(t *testing.T) {
	raw := `{"questions": [
		{"question": "Q1?", "options": ["A", "B", "C", "D"], "answer": "A"}
	]}`
	quiz, err := ParseQuizResponse(raw, domain.DifficultyHard, 1)
	require.NoError(t, err)
	require.Len(t, quiz.Questions, 1)
	assert.Equal(t, "hard", quiz.Questions[0].Difficulty)
}

func TestParseQuizResponse_ExactlyOneCorrectWithDuplicateOptions(t *testing.T) {
	raw := `{"questions": [
		{"question": "Q1?", "options": ["A", "A", "B", "C"], "answer": "A"}
	]}`
	quiz, err := ParseQuizResponse(raw, domain.DifficultyEasy, 1)
	require.NoError(t, err)
	require.NoError(t, quiz.Questions[0].Validate())
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  \n```json\n{\"a\": 1}\n```\n  ", `{"a": 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCodeFences(tt.in))
		})
	}
}

func TestExtractObjectSpan(t *testing.T) {
	span, ok := ExtractObjectSpan(`prose {"a": {"b": 1}} trailing`)
	assert.True(t, ok)
	assert.Equal(t, `{"a": {"b": 1}}`, span)

	_, ok = ExtractObjectSpan("no braces here")
	assert.False(t, ok)

	_, ok = ExtractObjectSpan("} reversed {")
	assert.False(t, ok)
}

func TestParseQuizResponse_RoundTrip(t *testing.T) {
	quiz, err := ParseQuizResponse(makeQuizJSON(3), domain.DifficultyEasy, 3)
	require.NoError(t, err)

	// Serialize to the wire shape and parse back: title, question count and
	// correct-option texts must survive.
	type wireOption struct {
		Text      string `json:"text"`
		IsCorrect bool   `json:"is_correct"`
	}
	type wireQuestion struct {
		Question string       `json:"question"`
		Options  []wireOption `json:"options"`
	}
	wire := make([]wireQuestion, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		wq := wireQuestion{Question: q.Text}
		for _, opt := range q.Options {
			wq.Options = append(wq.Options, wireOption{Text: opt.Text, IsCorrect: opt.IsCorrect})
		}
		wire = append(wire, wq)
	}

	data, err := json.Marshal(wire)
	require.NoError(t, err)
	var back []wireQuestion
	require.NoError(t, json.Unmarshal(data, &back))

	require.Len(t, back, len(quiz.Questions))
	for i := range back {
		assert.Equal(t, quiz.Questions[i].Text, back[i].Question)
		var correct string
		for _, opt := range back[i].Options {
			if opt.IsCorrect {
				correct = opt.Text
			}
		}
		assert.Equal(t, quiz.Questions[i].CorrectOption().Text, correct)
	}
}
