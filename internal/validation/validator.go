package validation

import (
	"net/url"
	"strings"

	"wikiquiz/internal/domain"
)

const (
	minQuestionCount = 1
	maxQuestionCount = 20
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateQuizRequest validates the quiz generation request
func (v *Validator) ValidateQuizRequest(rawURL, difficulty string, count int) domain.ValidationErrors {
	var errs domain.ValidationErrors

	if strings.TrimSpace(rawURL) == "" {
		errs = append(errs, domain.NewMissingFieldError("url"))
	} else if !isValidHTTPURL(rawURL) {
		errs = append(errs, domain.NewInvalidFormatError("url", rawURL))
	}

	if !domain.IsValidDifficulty(difficulty) {
		errs = append(errs, domain.NewInvalidFormatError("difficulty", difficulty))
	}

	if count < minQuestionCount || count > maxQuestionCount {
		errs = append(errs, domain.NewOutOfRangeError("number_of_questions", count, minQuestionCount, maxQuestionCount))
	}

	return errs
}

// isValidHTTPURL checks that the string is an absolute http(s) URL
func isValidHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
