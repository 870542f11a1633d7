package generation

import (
	"context"

	"wikiquiz/internal/config"
	"wikiquiz/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// OpenAIGenerator implements domain.TextGenerator over an OpenAI chat model.
// It is the alternative backend selected with generation.source = "openai".
type OpenAIGenerator struct {
	llm    *openai.LLM
	logger *zap.Logger
}

// NewOpenAIGenerator creates an OpenAIGenerator. A missing API key is not an
// error: the generator reports unavailable and the pipeline runs
// fallback-only.
func NewOpenAIGenerator(cfg config.OpenAIConfig, logger *zap.Logger) (*OpenAIGenerator, error) {
	if cfg.APIKey == "" {
		logger.Warn("OpenAI API key not configured, generator will be unavailable")
		return &OpenAIGenerator{logger: logger}, nil
	}

	llm, err := openai.New(
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, err
	}

	return &OpenAIGenerator{llm: llm, logger: logger}, nil
}

// Available reports whether an API key was configured.
func (g *OpenAIGenerator) Available() bool {
	return g.llm != nil
}

// GenerateText sends the prompt as a single chat completion and returns the
// raw reply text.
func (g *OpenAIGenerator) GenerateText(ctx context.Context, prompt string, params domain.GenerationParams) (string, error) {
	if !g.Available() {
		return "", domain.ErrNoCredential
	}

	ctx, cancel := context.WithTimeout(ctx, generationTimeout)
	defer cancel()

	g.logger.Debug("Calling OpenAI completion",
		zap.Int("prompt_chars", len(prompt)),
		zap.Int("max_output_tokens", params.MaxOutputTokens),
	)

	reply, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt,
		llms.WithTemperature(params.Temperature),
		llms.WithMaxTokens(params.MaxOutputTokens),
		llms.WithTopP(params.TopP),
	)
	if err != nil {
		if isTimeout(err) {
			return "", &domain.GenerationTimeoutError{Err: err}
		}
		return "", &domain.GenerationTransportError{Err: err}
	}

	return reply, nil
}

var _ domain.TextGenerator = (*OpenAIGenerator)(nil)
