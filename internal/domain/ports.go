package domain

import (
	"context"
	"time"
)

// Planner is the external planning engine. Kickoff blocks until every internal step finished.
type Planner interface {
	Kickoff(ctx context.Context, inputs map[string]any) (EngineResult, error)
}

// PlannerFactory builds a planner bound to one credential snapshot.
type PlannerFactory interface {
	NewPlanner(keys Keys) (Planner, error)
}

// Keys is a read-only snapshot of the two required secrets.
type Keys struct {
	Search string
	LLM    string
}

func (k Keys) Complete() bool { return k.Search != "" && k.LLM != "" }

// CredentialStore hands out the current keys.
type CredentialStore interface {
	Snapshot() Keys
}

// Completer is a single-shot language model call.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

type CompletionRequest struct {
	System      string
	Prompt      string
	JSON        bool // ask the model for a JSON object
	Temperature float64
}

// Searcher queries the web search provider.
type Searcher interface {
	Search(ctx context.Context, query string) ([]SearchHit, error)
}

type SearchHit struct {
	Title    string `json:"title"`
	Link     string `json:"link"`
	Snippet  string `json:"snippet"`
	Position int    `json:"position"`
}

// PageReader fetches a page and returns its readable text.
type PageReader interface {
	Read(ctx context.Context, url string) (string, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}
