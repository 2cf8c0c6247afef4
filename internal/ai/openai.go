package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// OpenAIProvider calls the OpenAI chat completions API.
type OpenAIProvider struct {
	client  *resty.Client
	apiKey  string
	model   string
	baseURL string
}

type openAIRequest struct {
	Model    string          `json:"model"`
	Messages []openAIMessage `json:"messages"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func NewOpenAIProvider(apiKey, model string, timeout time.Duration) *OpenAIProvider {
	return &OpenAIProvider{
		client:  resty.New().SetTimeout(timeout),
		apiKey:  apiKey,
		model:   model,
		baseURL: "https://api.openai.com/v1",
	}
}

func (o *OpenAIProvider) Name() string { return "openai" }

func (o *OpenAIProvider) Configured() bool { return o.apiKey != "" }

func (o *OpenAIProvider) Complete(ctx context.Context, prompt string) (string, error) {
	req := openAIRequest{
		Model: o.model,
		Messages: []openAIMessage{
			{Role: "user", Content: prompt},
		},
	}

	var resp openAIResponse
	_, err := o.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(o.apiKey).
		SetBody(req).
		SetResult(&resp).
		Post(o.baseURL + "/chat/completions")
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}

	if resp.Error != nil {
		return "", fmt.Errorf("openai API error: %s", resp.Error.Message)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai returned no content")
	}

	return resp.Choices[0].Message.Content, nil
}
