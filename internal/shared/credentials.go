package shared

import (
	"strings"
	"sync"

	"trip_surprise/internal/domain"
)

// Credentials holds the search and LLM keys for the running process.
// Writers replace values; readers take a snapshot, so a submission never sees a half-updated pair.
type Credentials struct {
	mu   sync.RWMutex
	keys domain.Keys
}

func NewCredentials(search, llm string) *Credentials {
	return &Credentials{keys: domain.Keys{Search: strings.TrimSpace(search), LLM: strings.TrimSpace(llm)}}
}

// Set overwrites only the keys given as non-blank values.
func (c *Credentials) Set(search, llm string) {
	search, llm = strings.TrimSpace(search), strings.TrimSpace(llm)
	c.mu.Lock()
	defer c.mu.Unlock()
	if search != "" {
		c.keys.Search = search
	}
	if llm != "" {
		c.keys.LLM = llm
	}
}

func (c *Credentials) Snapshot() domain.Keys {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.keys
}

// CredentialStatus reports which keys are present without exposing them.
type CredentialStatus struct {
	Search bool `json:"search_key_set"`
	LLM    bool `json:"llm_key_set"`
}

func (c *Credentials) Status() CredentialStatus {
	k := c.Snapshot()
	return CredentialStatus{Search: k.Search != "", LLM: k.LLM != ""}
}
