package crew

import (
	"context"
	"fmt"
	"time"

	"trip_surprise/internal/adapters/llm"
	"trip_surprise/internal/adapters/serper"
	"trip_surprise/internal/adapters/web"
	"trip_surprise/internal/domain"
)

// Factory builds a fresh Crew for every submission, bound to that submission's keys.
type Factory struct {
	LLMProvider string
	LLMModel    string
	LLMBaseURL  string

	SearchBase    string
	SearchRPS     int
	SearchResults int

	// Cache, when set, holds search results across submissions.
	Cache    domain.Cache
	CacheTTL time.Duration

	Reader  domain.PageReader
	Options Options
}

func (f *Factory) NewPlanner(keys domain.Keys) (domain.Planner, error) {
	s, err := serper.New(f.SearchBase, keys.Search, f.SearchRPS, f.SearchResults)
	if err != nil {
		return nil, fmt.Errorf("search client: %w", err)
	}
	if f.Cache != nil {
		s.WithCache(f.Cache, f.CacheTTL)
	}

	model, err := llm.New(context.Background(), f.LLMProvider, keys.LLM, f.LLMModel, f.LLMBaseURL)
	if err != nil {
		return nil, fmt.Errorf("llm client: %w", err)
	}

	reader := f.Reader
	if reader == nil {
		reader = web.New(f.SearchRPS, web.DefaultMaxChars)
	}
	return New(model, s, reader, f.Options), nil
}
