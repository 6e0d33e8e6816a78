// Package genai holds the text-generation model client. The model is a
// single-shot prompt-in/text-out dependency: no streaming and no
// conversation state is kept across calls.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "interviewprep-backend/pkg/errors"

	"go.uber.org/zap"
)

// GeminiClient calls the Gemini generateContent REST API.
type GeminiClient struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
	logger   *zap.Logger
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
	Error      *apiError   `json:"error,omitempty"`
}

type candidate struct {
	Content      content `json:"content"`
	FinishReason string  `json:"finishReason"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// NewGeminiClient creates a Gemini client for the given model.
func NewGeminiClient(apiKey, model, endpoint string, logger *zap.Logger) *GeminiClient {
	return &GeminiClient{
		apiKey:   apiKey,
		model:    model,
		endpoint: endpoint,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
		logger: logger,
	}
}

// Generate sends a single prompt and returns the model's raw text output.
// A failed call is terminal for the request; no retries are attempted.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("genai: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.endpoint, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("genai: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	started := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return "", apperrors.NewExternalError("gemini", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("genai: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", apperrors.NewExternalError("gemini",
			fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body)))
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", fmt.Errorf("genai: unmarshal response: %w", err)
	}

	if genResp.Error != nil {
		return "", apperrors.NewExternalError("gemini",
			fmt.Errorf("%s (%s)", genResp.Error.Message, genResp.Error.Status))
	}

	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("genai: no candidates returned")
	}

	c.logger.Debug("model call completed",
		zap.String("model", c.model),
		zap.String("finishReason", genResp.Candidates[0].FinishReason),
		zap.Duration("duration", time.Since(started)),
	)

	return genResp.Candidates[0].Content.Parts[0].Text, nil
}
