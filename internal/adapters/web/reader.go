// Package web fetches pages found by search and reduces them to readable text for the agents.
package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"trip_surprise/internal/adapters/observability"
)

const (
	DefaultMaxChars = 6000
	maxBody         = 2 << 20
)

type Reader struct {
	hc       *http.Client
	rl       *rate.Limiter
	maxChars int
}

// New returns a Reader limited to rps fetches per second that keeps at most maxChars of text per page.
func New(rps, maxChars int) *Reader {
	if rps <= 0 {
		rps = 5
	}
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	return &Reader{
		hc:       &http.Client{Timeout: 15 * time.Second},
		rl:       rate.NewLimiter(rate.Limit(rps), rps),
		maxChars: maxChars,
	}
}

// Read returns the visible text of the page at url.
func (r *Reader) Read(ctx context.Context, url string) (string, error) {
	if err := r.rl.Wait(ctx); err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; trip-surprise/1.0)")
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.5")

	start := time.Now()
	resp, err := r.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("web", "page", 0, time.Since(start))
		return "", err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("web", "page", resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("web: %s: status %d", url, resp.StatusCode)
	}
	ct := resp.Header.Get("Content-Type")
	if ct != "" && !strings.Contains(ct, "html") && !strings.HasPrefix(ct, "text/") {
		return "", fmt.Errorf("web: %s: unsupported content type %q", url, ct)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return "", fmt.Errorf("web: parse %s: %w", url, err)
	}
	return Extract(doc, r.maxChars), nil
}

// Extract returns the title and body text of doc with markup noise removed, cut to maxChars runes.
func Extract(doc *goquery.Document, maxChars int) string {
	doc.Find("script, style, noscript, svg, iframe, nav, footer, header, form").Remove()

	var b strings.Builder
	if title := collapse(doc.Find("title").First().Text()); title != "" {
		b.WriteString(title)
		b.WriteString("\n\n")
	}
	b.WriteString(collapse(doc.Find("body").Text()))

	text := []rune(strings.TrimSpace(b.String()))
	if maxChars > 0 && len(text) > maxChars {
		text = text[:maxChars]
	}
	return string(text)
}

func collapse(s string) string { return strings.Join(strings.Fields(s), " ") }
