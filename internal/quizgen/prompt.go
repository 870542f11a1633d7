package quizgen

import (
	"fmt"
	"strings"

	"wikiquiz/internal/domain"
)

var difficultyGuidance = map[domain.Difficulty]string{
	domain.DifficultyEasy:   "Ask about explicit facts stated directly in the article.",
	domain.DifficultyMedium: "Ask questions that require relating or inferring from facts in the article.",
	domain.DifficultyHard:   "Ask questions that require synthesizing multiple facts from different parts of the article.",
}

const promptExample = `{
  "questions": [
    {
      "question": "Question text here?",
      "options": ["Option A", "Option B", "Option C", "Option D"],
      "answer": "Option A",
      "difficulty": "%s",
      "explanation": "Brief explanation based on the article."
    }
  ],
  "related_topics": ["Topic1", "Topic2", "Topic3"]
}`

// BuildPrompt assembles the single text prompt sent to the generation
// endpoint. Pure data transformation; no side effects.
func BuildPrompt(doc *domain.SourceDocument, difficulty domain.Difficulty, questionCount int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are a quiz generator. Based on the following Wikipedia article about %q, generate exactly %d multiple-choice questions.\n\n", doc.Title, questionCount)
	b.WriteString("ONLY use the information from the article below. DO NOT use outside knowledge.\n\n")
	b.WriteString("Article Content:\n")
	b.WriteString(doc.Body)
	b.WriteString("\n\nIMPORTANT INSTRUCTIONS:\n")
	fmt.Fprintf(&b, "1. Create exactly %d unique questions, no more and no fewer, based ONLY on information from the article above\n", questionCount)
	b.WriteString("2. Each question must have exactly 4 options with exactly one correct answer\n")
	fmt.Fprintf(&b, "3. %s\n", difficultyGuidance[difficulty])
	b.WriteString("4. Vary the factual aspect covered by each question: dates, people, causes, locations, definitions, comparisons\n")
	b.WriteString("5. Provide a brief explanation for each answer, based on the article\n")
	b.WriteString("\nReturn ONLY a valid JSON object with no markdown formatting, no code blocks, no extra text. Use this exact format:\n\n")
	fmt.Fprintf(&b, promptExample, difficulty)
	b.WriteString("\n")

	return b.String()
}
