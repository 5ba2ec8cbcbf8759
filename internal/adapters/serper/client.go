// internal/adapters/serper/client.go
package serper

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"trip_surprise/internal/adapters/observability"
	"trip_surprise/internal/domain"
)

const DefaultBase = "https://google.serper.dev"

type Client struct {
	base  string
	hc    *http.Client
	key   string
	num   int
	rl    *rate.Limiter
	cache domain.Cache
	ttl   time.Duration
}

// New builds a search client. num is the number of organic results asked per query.
func New(base, key string, rps, num int) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if base == "" {
		base = DefaultBase
	}
	if rps <= 0 {
		rps = 5
	}
	if num <= 0 {
		num = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		key:  key,
		num:  num,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// WithCache makes Search read through c. A nil cache disables caching.
func (c *Client) WithCache(cache domain.Cache, ttl time.Duration) *Client {
	c.cache, c.ttl = cache, ttl
	return c
}

type searchRequest struct {
	Q   string `json:"q"`
	Num int    `json:"num"`
}

type searchResponse struct {
	Organic []domain.SearchHit `json:"organic"`
}

// ---- Public API ----

// Search returns the organic results for query, from cache when possible.
func (c *Client) Search(ctx context.Context, query string) ([]domain.SearchHit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("serper: empty query")
	}
	key := fmt.Sprintf("serper:%d:%s", c.num, strings.ToLower(query))

	if c.cache != nil {
		var hits []domain.SearchHit
		if ok, err := c.cache.Get(ctx, key, &hits); err == nil && ok {
			return hits, nil
		} else if err != nil {
			log.Warn().Err(err).Msg("search cache read failed")
		}
	}

	var out searchResponse
	if err := c.post(ctx, "/search", searchRequest{Q: query, Num: c.num}, &out); err != nil {
		return nil, err
	}
	if out.Organic == nil {
		out.Organic = []domain.SearchHit{}
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, out.Organic, c.ttl); err != nil {
			log.Warn().Err(err).Msg("search cache write failed")
		}
	}
	return out.Organic, nil
}

// ---- Internals ----

var (
	ErrNotFound     = errors.New("serper: not found")
	ErrUnauthorized = errors.New("serper: unauthorized")
	ErrForbidden    = errors.New("serper: forbidden")
)

// post sends body as JSON with client-side rate limiting and retries, decoding the reply into out.
// Retries on 429 and transient 5xx, honoring Retry-After when provided.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	var lastErr error
	for i := 0; i < 4; i++ {
		// the body reader is consumed, so build a fresh request each attempt
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(payload))
		if err != nil {
			return err
		}
		req.Header.Set("X-API-KEY", c.key)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "trip-surprise/1.0")

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			observability.ObserveExternal("serper", path, 0, time.Since(start))
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}
		observability.ObserveExternal("serper", path, resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			if err != nil {
				return fmt.Errorf("serper: decode: %w", err)
			}
			return nil

		case http.StatusNotFound:
			resp.Body.Close()
			return ErrNotFound

		case http.StatusUnauthorized:
			resp.Body.Close()
			return ErrUnauthorized

		case http.StatusForbidden:
			resp.Body.Close()
			return ErrForbidden

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("serper: remote %d", resp.StatusCode)
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return fmt.Errorf("serper: bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}
	return lastErr
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter reads Retry-After in seconds or HTTP-date form; 0 when absent.
func retryAfter(resp *http.Response) time.Duration {
	h := strings.TrimSpace(resp.Header.Get("Retry-After"))
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(h); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff doubles from 200ms per attempt with up to +50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	return base + time.Duration(0.5*float64(b[0])/255.0*float64(base))
}
