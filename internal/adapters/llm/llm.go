// Package llm adapts hosted language models to domain.Completer.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"trip_surprise/internal/domain"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

var (
	ErrUnauthorized  = errors.New("llm: unauthorized")
	ErrEmptyResponse = errors.New("llm: empty response")
)

// New returns the completer for provider. baseURL only applies to OpenAI-compatible endpoints.
func New(ctx context.Context, provider, key, model, baseURL string) (domain.Completer, error) {
	if strings.TrimSpace(key) == "" {
		return nil, fmt.Errorf("%s: API key is required", provider)
	}
	switch strings.ToLower(provider) {
	case "", ProviderOpenAI:
		return NewOpenAI(key, model, baseURL), nil
	case ProviderGemini:
		return NewGemini(ctx, key, model)
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", provider)
	}
}
