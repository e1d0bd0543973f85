package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
)

type ollamaClient struct {
	client *api.Client
	model  string
}

func newOllamaClient(host, model string, httpClient *http.Client) (*ollamaClient, error) {
	base, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("parse ollama host %q: %w", host, err)
	}
	return &ollamaClient{
		client: api.NewClient(base, httpClient),
		model:  model,
	}, nil
}

func (c *ollamaClient) Name() string {
	return fmt.Sprintf("Ollama (%s)", c.model)
}

func (c *ollamaClient) Generate(ctx context.Context, prompt string) (string, error) {
	stream := false
	req := &api.GenerateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: &stream,
	}
	var out strings.Builder
	err := c.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		out.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", ollamaError(err)
	}
	if out.Len() == 0 {
		return "", emptyResponse(ProviderOllama)
	}
	return out.String(), nil
}

func ollamaError(err error) error {
	var statusErr api.StatusError
	if errors.As(err, &statusErr) {
		return &GenerationError{Provider: ProviderOllama, Message: statusErr.ErrorMessage, Err: err}
	}
	return &GenerationError{Provider: ProviderOllama, Err: err}
}
