package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

type openAIClient struct {
	client *openai.Client
	model  string
}

func newOpenAIClient(apiKey, model, endpoint string, httpClient *http.Client) *openAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if endpoint != "" {
		cfg.BaseURL = endpoint
	}
	cfg.HTTPClient = httpClient
	return &openAIClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (c *openAIClient) Name() string {
	return fmt.Sprintf("OpenAI (%s)", c.model)
}

func (c *openAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", openAIError(err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", emptyResponse(ProviderOpenAI)
	}
	return resp.Choices[0].Message.Content, nil
}

func openAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &GenerationError{Provider: ProviderOpenAI, Message: apiErr.Message, Err: err}
	}
	return &GenerationError{Provider: ProviderOpenAI, Err: err}
}
