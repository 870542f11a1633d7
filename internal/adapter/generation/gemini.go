package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"wikiquiz/internal/config"
	"wikiquiz/internal/domain"

	"go.uber.org/zap"
)

const (
	generationTimeout = 60 * time.Second
	maxErrorBodyBytes = 4096
)

// geminiRequest is the fixed request envelope of the generateContent endpoint
type geminiRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig geminiGenConfig  `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
}

// geminiResponse covers the part of the response envelope the pipeline reads:
// the reply text at candidates[0].content.parts[0].text.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GeminiClient implements domain.TextGenerator against the Gemini REST API.
// The API key travels as a query parameter.
type GeminiClient struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewGeminiClient creates a GeminiClient. An empty API key is allowed; the
// client then reports unavailable and every call short-circuits without a
// network attempt.
func NewGeminiClient(cfg config.GeminiConfig, logger *zap.Logger) *GeminiClient {
	return &GeminiClient{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: generationTimeout},
		logger:     logger,
	}
}

// Available reports whether an API key is configured.
func (c *GeminiClient) Available() bool {
	return c.apiKey != ""
}

// GenerateText sends the prompt to the generateContent endpoint and returns
// the raw reply text. Every error it returns is recoverable by design.
func (c *GeminiClient) GenerateText(ctx context.Context, prompt string, params domain.GenerationParams) (string, error) {
	if !c.Available() {
		return "", domain.ErrNoCredential
	}

	payload := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: geminiGenConfig{
			Temperature:     params.Temperature,
			MaxOutputTokens: params.MaxOutputTokens,
			TopP:            params.TopP,
			TopK:            params.TopK,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", &domain.GenerationTransportError{Err: err}
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.baseURL, c.model, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &domain.GenerationTransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("Calling generation endpoint",
		zap.String("model", c.model),
		zap.Int("prompt_chars", len(prompt)),
		zap.Int("max_output_tokens", params.MaxOutputTokens),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return "", &domain.GenerationTimeoutError{Err: err}
		}
		return "", &domain.GenerationTransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return "", &domain.GenerationHTTPError{Status: resp.StatusCode, Body: string(errBody)}
	}

	var envelope geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return "", &domain.GenerationTransportError{Err: err}
	}
	if len(envelope.Candidates) == 0 || len(envelope.Candidates[0].Content.Parts) == 0 {
		return "", &domain.GenerationTransportError{Err: errors.New("response envelope has no candidate text")}
	}

	return envelope.Candidates[0].Content.Parts[0].Text, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

var _ domain.TextGenerator = (*GeminiClient)(nil)
