package dto

import "encoding/json"

// QuizRequest is the body of POST /quiz
// @Description Request body for generating a quiz from an article URL
type QuizRequest struct {
	URL               string `json:"url"`
	Difficulty        string `json:"difficulty"`
	NumberOfQuestions int    `json:"number_of_questions"`
}

// OptionResponse is a single answer choice in the API response
type OptionResponse struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// QuestionResponse is one question in the API response
type QuestionResponse struct {
	Question    string           `json:"question"`
	Options     []OptionResponse `json:"options"`
	Difficulty  string           `json:"difficulty,omitempty"`
	Explanation string           `json:"explanation,omitempty"`
}

// QuizResponse is the body returned by POST /quiz
// @Description Generated quiz
type QuizResponse struct {
	Title         string             `json:"title"`
	Questions     []QuestionResponse `json:"questions"`
	RelatedTopics []string           `json:"related_topics"`
}

// HistoryItemResponse is one entry of GET /history
type HistoryItemResponse struct {
	URL       string          `json:"url"`
	Title     string          `json:"title"`
	CreatedAt string          `json:"created_at"`
	QuizData  json.RawMessage `json:"quiz_data"`
}

// QuizDetailResponse is the body returned by GET /quiz/{id}
type QuizDetailResponse struct {
	ID       int64           `json:"id"`
	URL      string          `json:"url"`
	Title    string          `json:"title"`
	QuizData json.RawMessage `json:"quiz_data"`
}

// StatusResponse is the liveness/config probe returned by GET /
type StatusResponse struct {
	Status    string `json:"status"`
	APIKeySet bool   `json:"api_key_set"`
}
