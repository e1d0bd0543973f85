package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultLLMHTTPTimeout = 3 * time.Minute

const defaultOllamaHost = "http://localhost:11434"

var (
	// ErrNotConfigured marks a provider whose credential was never supplied.
	ErrNotConfigured = errors.New("llm: provider not configured")
	// ErrUnknownProvider is returned by New for provider names it cannot build.
	ErrUnknownProvider = errors.New("llm: unknown provider")
	// ErrEmptyResponse is wrapped when the model answered with no text at all.
	ErrEmptyResponse = errors.New("llm: empty response")
)

const emptyResponseMessage = "The model returned an empty response. Please try again."

// Provider names one hosted or local language-model backend.
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
	ProviderOllama Provider = "ollama"
)

// ParseProvider normalizes a user supplied provider name. An empty name selects Gemini.
func ParseProvider(name string) (Provider, error) {
	switch Provider(strings.ToLower(strings.TrimSpace(name))) {
	case "", ProviderGemini:
		return ProviderGemini, nil
	case ProviderOpenAI:
		return ProviderOpenAI, nil
	case ProviderOllama:
		return ProviderOllama, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
}

// Label is the human readable provider name used in messages.
func (p Provider) Label() string {
	switch p {
	case ProviderOpenAI:
		return "OpenAI"
	case ProviderOllama:
		return "Ollama"
	default:
		return "Gemini"
	}
}

// DefaultModel reports the model used when none is configured.
func (p Provider) DefaultModel() string {
	switch p {
	case ProviderOpenAI:
		return "gpt-4o-mini"
	case ProviderOllama:
		return "llama3.2"
	default:
		return "gemini-1.5-flash"
	}
}

// RequiresKey reports whether the provider refuses to run without a credential.
func (p Provider) RequiresKey() bool {
	return p != ProviderOllama
}

// ConfigurationError reports that the generation capability was never set up.
type ConfigurationError struct {
	Provider Provider
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("API key not configured. Please add your %s API key to continue.", e.Provider.Label())
}

func (e *ConfigurationError) Unwrap() error { return ErrNotConfigured }

// GenerationError wraps an upstream rejection. Message holds the provider's own
// description when one was returned.
type GenerationError struct {
	Provider Provider
	Message  string
	Err      error
}

func (e *GenerationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return ""
}

func (e *GenerationError) Unwrap() error { return e.Err }

func emptyResponse(p Provider) error {
	return &GenerationError{Provider: p, Message: emptyResponseMessage, Err: ErrEmptyResponse}
}

// Config describes how to build an LLM client.
type Config struct {
	Provider   Provider
	APIKey     string
	Model      string
	Endpoint   string
	HTTPClient *http.Client

	// Logger and Observer are optional; when either is set the client is instrumented.
	Logger   *zap.Logger
	Observer Observer
}

// Client turns a prompt into generated text.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}

// New builds the client for cfg.Provider. Providers that need a credential return a
// *ConfigurationError (matching ErrNotConfigured) when cfg.APIKey is blank, without
// touching the network.
func New(ctx context.Context, cfg Config) (Client, error) {
	provider, err := ParseProvider(string(cfg.Provider))
	if err != nil {
		return nil, err
	}
	if provider.RequiresKey() && strings.TrimSpace(cfg.APIKey) == "" {
		return nil, &ConfigurationError{Provider: provider}
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = provider.DefaultModel()
	}
	httpClient := pickHTTPClient(cfg.HTTPClient)

	var client Client
	switch provider {
	case ProviderGemini:
		client, err = newGeminiClient(ctx, cfg.APIKey, model, cfg.Endpoint, httpClient)
	case ProviderOpenAI:
		client = newOpenAIClient(cfg.APIKey, model, cfg.Endpoint, httpClient)
	case ProviderOllama:
		host := strings.TrimRight(cfg.Endpoint, "/")
		if host == "" {
			host = defaultOllamaHost
		}
		client, err = newOllamaClient(host, model, httpClient)
	}
	if err != nil {
		return nil, err
	}
	if cfg.Logger != nil || cfg.Observer != nil {
		client = Instrument(client, provider, model, cfg.Logger, cfg.Observer)
	}
	return client, nil
}

// Unavailable returns a Client that fails every call with err. It stands in for a
// provider that could not be configured so callers never need a nil check.
func Unavailable(err error) Client {
	if err == nil {
		err = &ConfigurationError{Provider: ProviderGemini}
	}
	return unavailableClient{err: err}
}

// IsUnavailable reports whether c was produced by Unavailable.
func IsUnavailable(c Client) bool {
	_, ok := c.(unavailableClient)
	return c == nil || ok
}

type unavailableClient struct {
	err error
}

func (c unavailableClient) Generate(context.Context, string) (string, error) {
	return "", c.err
}

func (c unavailableClient) Name() string { return "not configured" }

func pickHTTPClient(custom *http.Client) *http.Client {
	if custom != nil {
		return custom
	}
	// Generations can be slow; cancellation comes from the caller's context.
	return &http.Client{Timeout: defaultLLMHTTPTimeout}
}
