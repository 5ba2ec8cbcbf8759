package llm

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"trip_surprise/internal/adapters/observability"
	"trip_surprise/internal/domain"
)

const DefaultGeminiModel = "gemini-2.0-flash"

type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini builds a Gemini API client. baseURL is for tests and proxies; empty uses the public endpoint.
func NewGemini(ctx context.Context, key, model string, baseURL ...string) (*Gemini, error) {
	if model == "" {
		model = DefaultGeminiModel
	}
	cfg := &genai.ClientConfig{APIKey: key, Backend: genai.BackendGeminiAPI}
	if len(baseURL) > 0 && baseURL[0] != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL[0]}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini: new client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(req.Temperature)),
	}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.JSON {
		config.ResponseMIMEType = "application/json"
	}

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(req.Prompt), config)
	if err != nil {
		observability.ObserveExternal("gemini", "generate", 0, time.Since(start))
		return "", fmt.Errorf("gemini: %w", err)
	}
	observability.ObserveExternal("gemini", "generate", 200, time.Since(start))

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
