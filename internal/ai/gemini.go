package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// GeminiProvider calls the Google Generative Language API.
type GeminiProvider struct {
	client  *resty.Client
	apiKey  string
	model   string
	baseURL string
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func NewGeminiProvider(apiKey, model string, timeout time.Duration) *GeminiProvider {
	return &GeminiProvider{
		client:  resty.New().SetTimeout(timeout),
		apiKey:  apiKey,
		model:   model,
		baseURL: "https://generativelanguage.googleapis.com/v1beta/models",
	}
}

func (g *GeminiProvider) Name() string { return "gemini" }

func (g *GeminiProvider) Configured() bool { return g.apiKey != "" }

func (g *GeminiProvider) Complete(ctx context.Context, prompt string) (string, error) {
	url := fmt.Sprintf("%s/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)

	req := geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{{Text: prompt}},
		}},
	}

	var resp geminiResponse
	_, err := g.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&resp).
		Post(url)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	if resp.Error != nil {
		return "", fmt.Errorf("gemini API error: %s", resp.Error.Message)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no content")
	}

	return resp.Candidates[0].Content.Parts[0].Text, nil
}
