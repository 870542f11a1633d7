package domain

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoCredential is returned by a TextGenerator when no API key is
// configured. The pipeline treats it like any other recoverable generation
// failure and proceeds to the fallback generator without a network call.
var ErrNoCredential = errors.New("no generation API key configured")

// GenerationParams configures a single generation call. Token budget and
// temperature scale with the requested question count.
type GenerationParams struct {
	Temperature     float64
	MaxOutputTokens int
	TopP            float64
	TopK            int
}

// ParamsForQuestionCount derives generation parameters for a request.
// Larger requests get a higher token budget, capped.
func ParamsForQuestionCount(questionCount int) GenerationParams {
	temp := 0.6 + 0.03*float64(questionCount)
	if temp > 0.9 {
		temp = 0.9
	}
	maxTokens := 512 * questionCount
	if maxTokens < 2048 {
		maxTokens = 2048
	}
	if maxTokens > 8192 {
		maxTokens = 8192
	}
	return GenerationParams{
		Temperature:     temp,
		MaxOutputTokens: maxTokens,
		TopP:            0.95,
		TopK:            40,
	}
}

// TextGenerator sends a prompt to an external text-generation endpoint and
// returns the raw reply text. All errors it returns are recoverable: the
// caller degrades to the fallback generator instead of surfacing them.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, params GenerationParams) (string, error)
	// Available reports whether a credential is configured.
	Available() bool
}

// GenerationTimeoutError signals that the generation call exceeded its deadline
type GenerationTimeoutError struct {
	Err error
}

func (e *GenerationTimeoutError) Error() string {
	return fmt.Sprintf("generation request timed out: %v", e.Err)
}

func (e *GenerationTimeoutError) Unwrap() error { return e.Err }

// GenerationHTTPError signals a non-200 status from the generation endpoint
type GenerationHTTPError struct {
	Status int
	Body   string
}

func (e *GenerationHTTPError) Error() string {
	return fmt.Sprintf("generation endpoint returned status %d: %s", e.Status, e.Body)
}

// GenerationTransportError signals a network failure or a malformed response
// envelope from the generation endpoint
type GenerationTransportError struct {
	Err error
}

func (e *GenerationTransportError) Error() string {
	return fmt.Sprintf("generation transport failure: %v", e.Err)
}

func (e *GenerationTransportError) Unwrap() error { return e.Err }
