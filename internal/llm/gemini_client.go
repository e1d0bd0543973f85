package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

type geminiClient struct {
	client *genai.Client
	model  string
}

func newGeminiClient(ctx context.Context, apiKey, model, endpoint string, httpClient *http.Client) (*geminiClient, error) {
	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if endpoint != "" {
		cfg.HTTPOptions.BaseURL = endpoint
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &geminiClient{client: client, model: model}, nil
}

func (c *geminiClient) Name() string {
	return fmt.Sprintf("Gemini (%s)", c.model)
}

func (c *geminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", geminiError(err)
	}
	text := resp.Text()
	if text == "" {
		return "", emptyResponse(ProviderGemini)
	}
	return text, nil
}

func geminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &GenerationError{Provider: ProviderGemini, Message: apiErr.Message, Err: err}
	}
	return &GenerationError{Provider: ProviderGemini, Err: err}
}
