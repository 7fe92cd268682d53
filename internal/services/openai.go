package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	openAIBaseURL = "https://api.openai.com/v1"

	DefaultOpenAITemperature = 0.7
	DefaultOpenAIMaxTokens   = 500
)

// OpenAIService implements Oracle using the OpenAI chat completions API.
type OpenAIService struct {
	apiKey     string
	modelName  string
	httpClient *http.Client
	logger     *slog.Logger
}

type openAIChatRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
	Temperature float64         `json:"temperature,omitempty"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIChatResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error,omitempty"`
}

// NewOpenAIService creates an OpenAI-backed oracle.
func NewOpenAIService(apiKey string, modelName string, logger *slog.Logger) *OpenAIService {
	return &OpenAIService{
		apiKey:    apiKey,
		modelName: modelName,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger,
	}
}

// Complete sends the prompts to OpenAI and returns the raw reply text.
func (o *OpenAIService) Complete(ctx context.Context, systemPrompt string, userPrompt string) (string, error) {
	reqBody, err := json.Marshal(openAIChatRequest{
		Model: o.modelName,
		Messages: []openAIMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens:   DefaultOpenAIMaxTokens,
		Temperature: DefaultOpenAITemperature,
	})
	if err != nil {
		return "", &OracleError{Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, "POST", openAIBaseURL+"/chat/completions", bytes.NewBuffer(reqBody))
	if err != nil {
		return "", &OracleError{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Authorization", "Bearer "+o.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", &OracleError{Err: fmt.Errorf("failed to make request: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &OracleError{Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &OracleError{Err: fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))}
	}

	var openAIResp openAIChatResponse
	if err := json.Unmarshal(body, &openAIResp); err != nil {
		return "", &OracleError{Err: fmt.Errorf("failed to parse response: %w", err)}
	}

	if openAIResp.Error != nil {
		return "", &OracleError{Err: fmt.Errorf("API error: %s", openAIResp.Error.Message)}
	}

	if len(openAIResp.Choices) == 0 {
		return "", &OracleError{Err: fmt.Errorf("response contained no choices")}
	}

	return openAIResp.Choices[0].Message.Content, nil
}
