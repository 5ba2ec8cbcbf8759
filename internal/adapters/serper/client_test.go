package serper_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"trip_surprise/internal/adapters/memcache"
	"trip_surprise/internal/adapters/serper"
)

func TestClient_Search_RetriesThenSuccess(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/search" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("X-API-KEY") != "test-key" {
			t.Errorf("missing api key header")
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["q"] != "rooftop bars brooklyn" || body["num"] != 3.0 {
			t.Errorf("unexpected body: %+v", body)
		}
		switch atomic.AddInt32(&hits, 1) {
		case 1, 2:
			w.WriteHeader(http.StatusServiceUnavailable)
		default:
			_, _ = w.Write([]byte(`{"organic":[{"title":"Top 10","link":"https://a.example","snippet":"views","position":1}]}`))
		}
	}))
	defer ts.Close()

	cl, err := serper.New(ts.URL, "test-key", 100, 3)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	got, err := cl.Search(ctx, "rooftop bars brooklyn")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || got[0].Link != "https://a.example" || got[0].Position != 1 {
		t.Fatalf("unexpected hits: %+v", got)
	}
	if atomic.LoadInt32(&hits) != 3 {
		t.Fatalf("expected 3 calls due to retries, got %d", hits)
	}
}

func TestClient_Search_Unauthorized(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	cl, _ := serper.New(ts.URL, "bad", 100, 5)
	_, err := cl.Search(context.Background(), "anything")
	if !errors.Is(err, serper.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestClient_Search_CachesResults(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte(`{"organic":[]}`))
	}))
	defer ts.Close()

	cl, _ := serper.New(ts.URL, "k", 100, 5)
	cl.WithCache(memcache.New(time.Minute), time.Minute)

	for i := 0; i < 3; i++ {
		got, err := cl.Search(context.Background(), "Jazz Clubs NYC")
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Fatalf("expected empty non-nil hits, got %#v", got)
		}
	}
	if _, err := cl.Search(context.Background(), "jazz clubs nyc"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Fatalf("expected a single upstream call, got %d", n)
	}
}

func TestNew_RequiresKey(t *testing.T) {
	if _, err := serper.New("", "", 0, 0); err == nil {
		t.Fatalf("expected error for empty key")
	}
}
