package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/okhramov/impact-matcher/internal/logger"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	openAITimeout        = 120 * time.Second
)

// OpenAI implements the chat-completions variant. The request constrains the
// response format to a JSON object and bounds the token budget; it exposes no
// temperature control.
type OpenAI struct {
	// BaseURL and HTTPClient are exported so tests can point the client at a
	// local server.
	BaseURL    string
	HTTPClient *http.Client

	model  string
	apiKey string
	logger *zap.Logger
}

// NewOpenAI builds a chat-completions client for the given model.
func NewOpenAI(model, apiKey string, log *zap.Logger) *OpenAI {
	return &OpenAI{
		BaseURL:    defaultOpenAIBaseURL,
		HTTPClient: &http.Client{Timeout: openAITimeout},
		model:      model,
		apiKey:     apiKey,
		logger:     log.With(logger.BackendFields(SelectorOpenAI, model)...),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	MaxTokens      int            `json:"max_tokens"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends one chat-completions request and returns the raw reply text.
// There are no internal retries: transport failures, non-success statuses,
// and provider error payloads all surface as a *CallError carrying the full
// diagnostic body.
func (c *OpenAI) Complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens:      maxTokens,
		ResponseFormat: responseFormat{Type: "json_object"},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", &CallError{Provider: SelectorOpenAI, Cause: fmt.Errorf("encoding request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", &CallError{Provider: SelectorOpenAI, Cause: err}
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("sending completion request",
		zap.String("url", req.URL.String()),
		zap.Int("max_tokens", maxTokens),
	)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", &CallError{Provider: SelectorOpenAI, Cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &CallError{Provider: SelectorOpenAI, Status: resp.StatusCode, Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &CallError{Provider: SelectorOpenAI, Status: resp.StatusCode, Body: string(data)}
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", &CallError{Provider: SelectorOpenAI, Status: resp.StatusCode, Body: string(data), Cause: err}
	}

	if parsed.Error.Message != "" {
		return "", &CallError{Provider: SelectorOpenAI, Status: resp.StatusCode, Body: parsed.Error.Message}
	}

	if len(parsed.Choices) == 0 {
		return "", &CallError{Provider: SelectorOpenAI, Status: resp.StatusCode, Body: "response contains no choices"}
	}

	reply := parsed.Choices[0].Message.Content

	c.logger.Debug("got completion response",
		zap.Int("response_length", utf8.RuneCountInString(reply)),
		zap.String("response_preview", logger.TruncateForLog(reply, previewLogLength)),
	)

	return reply, nil
}
