package backend

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"

	"github.com/okhramov/impact-matcher/internal/logger"
)

// anthropicTemperature keeps sampling low to favor deterministic scoring.
const anthropicTemperature = 0.2

// messageCreator is the slice of the SDK message service the client depends
// on, extracted so tests can stub the network.
type messageCreator interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// Anthropic implements the messages variant. The system prompt travels in the
// dedicated top-level field rather than as a message, and the temperature is
// fixed low.
type Anthropic struct {
	messages messageCreator
	model    string
	logger   *zap.Logger
}

// NewAnthropic builds a messages client for the given model.
func NewAnthropic(model, apiKey string, log *zap.Logger) *Anthropic {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	return &Anthropic{
		messages: &client.Messages,
		model:    model,
		logger:   log.With(logger.BackendFields(SelectorAnthropic, model)...),
	}
}

// Complete sends one messages request and returns the concatenated text
// blocks of the reply. No internal retries; SDK and transport failures
// surface as a *CallError.
func (c *Anthropic) Complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   int64(maxTokens),
		Temperature: anthropic.Float(anthropicTemperature),
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{{
			Role: anthropic.MessageParamRoleUser,
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: user},
			}},
		}},
	}

	c.logger.Debug("sending completion request", zap.Int("max_tokens", maxTokens))

	message, err := c.messages.New(ctx, params)
	if err != nil {
		return "", &CallError{Provider: SelectorAnthropic, Cause: err}
	}

	var builder strings.Builder
	for _, block := range message.Content {
		builder.WriteString(block.AsText().Text)
	}

	reply := builder.String()
	if reply == "" {
		return "", &CallError{Provider: SelectorAnthropic, Body: "response contains no text content"}
	}

	c.logger.Debug("got completion response",
		zap.Int("response_length", utf8.RuneCountInString(reply)),
		zap.String("response_preview", logger.TruncateForLog(reply, previewLogLength)),
	)

	return reply, nil
}
