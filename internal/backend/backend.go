// Package backend provides a uniform completion capability over the two
// supported evaluation providers. The set of variants is closed: a selector
// chooses one variant at construction time, and adding a provider means
// adding one variant here rather than branching logic elsewhere.
package backend

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/okhramov/impact-matcher/internal/secrets"
)

// Selector identifiers accepted from configuration.
const (
	SelectorOpenAI     = "openai"
	SelectorOpenAIFast = "openai-fast"
	SelectorAnthropic  = "anthropic"
)

// DefaultMaxTokens bounds a completion when no override is configured.
const DefaultMaxTokens = 1000

// Default model per selector; overridable through configuration.
const (
	defaultOpenAIModel     = "gpt-4o"
	defaultOpenAIFastModel = "gpt-4o-mini-2024-07-18"
	defaultAnthropicModel  = "claude-3-5-sonnet-20240620"
)

const previewLogLength = 200

// Selectors returns the accepted model selector identifiers.
func Selectors() []string {
	return []string{SelectorOpenAI, SelectorOpenAIFast, SelectorAnthropic}
}

// Variant names the wire protocol behind a selector.
type Variant string

const (
	// VariantOpenAI is the chat-completions protocol: JSON response-format
	// constraint, bounded tokens, no temperature control exposed.
	VariantOpenAI Variant = "openai"
	// VariantAnthropic is the messages protocol: system prompt split out at
	// the wire level and a fixed low temperature.
	VariantAnthropic Variant = "anthropic"
)

// Completer is the single capability every backend variant provides.
type Completer interface {
	Complete(ctx context.Context, system, user string, maxTokens int) (string, error)
}

// ProviderOptions carries the configurable inputs for one provider. APIKeyFile
// points at a mounted deployment secret and wins over the inline APIKey.
type ProviderOptions struct {
	APIKey     string
	APIKeyFile string
	Model      string
	// FastModel overrides the model behind the openai-fast selector. It is
	// meaningful for the openai provider only.
	FastModel string
}

// Options is the raw backend configuration assembled by the caller from
// flags, configuration files, and environment bindings.
type Options struct {
	Selector  string
	MaxTokens int
	OpenAI    ProviderOptions
	Anthropic ProviderOptions
}

// Settings is the resolved, immutable configuration of the selected variant.
type Settings struct {
	Variant   Variant
	Model     string
	APIKey    string
	MaxTokens int
}

// Resolve is the single configuration-resolution step: it validates the
// selector, picks the model, loads the credential, and applies the token
// default. It runs once, before any client is constructed, so that unknown
// selectors and missing credentials fail fast as a *ConfigError with no
// network I/O attempted. Components receive the resulting Settings and never
// consult ambient state themselves.
func Resolve(opts Options) (*Settings, error) {
	settings := &Settings{MaxTokens: opts.MaxTokens}
	if settings.MaxTokens <= 0 {
		settings.MaxTokens = DefaultMaxTokens
	}

	var credential secrets.Source

	switch opts.Selector {
	case SelectorOpenAI:
		settings.Variant = VariantOpenAI
		settings.Model = firstNonEmpty(opts.OpenAI.Model, defaultOpenAIModel)
		credential = secrets.Source{
			Name:  "openai api key",
			Value: opts.OpenAI.APIKey,
			File:  opts.OpenAI.APIKeyFile,
		}
	case SelectorOpenAIFast:
		settings.Variant = VariantOpenAI
		settings.Model = firstNonEmpty(opts.OpenAI.FastModel, defaultOpenAIFastModel)
		credential = secrets.Source{
			Name:  "openai api key",
			Value: opts.OpenAI.APIKey,
			File:  opts.OpenAI.APIKeyFile,
		}
	case SelectorAnthropic:
		settings.Variant = VariantAnthropic
		settings.Model = firstNonEmpty(opts.Anthropic.Model, defaultAnthropicModel)
		credential = secrets.Source{
			Name:  "anthropic api key",
			Value: opts.Anthropic.APIKey,
			File:  opts.Anthropic.APIKeyFile,
		}
	default:
		return nil, &ConfigError{Message: fmt.Sprintf(
			"unknown model %q, use %q, %q or %q",
			opts.Selector, SelectorOpenAI, SelectorOpenAIFast, SelectorAnthropic,
		)}
	}

	key, err := secrets.Load(credential)
	if err != nil {
		return nil, &ConfigError{Message: "resolving credential", Cause: err}
	}
	settings.APIKey = key

	return settings, nil
}

// New constructs the completer for the resolved settings.
func New(settings *Settings, log *zap.Logger) (Completer, error) {
	if log == nil {
		log = zap.NewNop()
	}

	switch settings.Variant {
	case VariantOpenAI:
		return NewOpenAI(settings.Model, settings.APIKey, log), nil
	case VariantAnthropic:
		return NewAnthropic(settings.Model, settings.APIKey, log), nil
	default:
		return nil, &ConfigError{Message: fmt.Sprintf("unknown backend variant %q", settings.Variant)}
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}

	return ""
}
