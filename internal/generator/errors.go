package generator

import (
	"context"
	"errors"
	"strings"

	"github.com/csheth/missiongen/internal/llm"
)

const (
	// ConfigurationMessage is shown when no generation client was ever configured.
	ConfigurationMessage = "API key not configured. Please add your Gemini API key to continue."
	// FallbackMessage is shown for failures that carry no description of their own.
	FallbackMessage = "An error occurred while generating the mission statement"
	// EmptyStatementMessage is shown when the model answers with no text.
	EmptyStatementMessage = "The model returned an empty response. Please try again."
)

var errEmptyStatement = errors.New(EmptyStatementMessage)

// Describe converts any workflow failure into the text shown to the user.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var cfgErr *llm.ConfigurationError
	if errors.As(err, &cfgErr) {
		return cfgErr.Error()
	}
	if errors.Is(err, llm.ErrNotConfigured) {
		return ConfigurationMessage
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return FallbackMessage
}

// Run sends prompt through client. A nil client behaves like an unconfigured one and
// never touches the network.
func Run(ctx context.Context, client llm.Client, prompt string) (string, error) {
	if client == nil {
		return "", &llm.ConfigurationError{Provider: llm.ProviderGemini}
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text, err := client.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", errEmptyStatement
	}
	return text, nil
}
