package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "trip_surprise/internal/adapters/redis"
	"trip_surprise/internal/domain"
)

func TestCache_GetSetDel(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	ctx := context.Background()

	var hits []domain.SearchHit
	ok, err := c.Get(ctx, "serper:5:jazz", &hits)
	if err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	want := []domain.SearchHit{{Title: "Blue Note", Link: "https://bluenote.example", Position: 1}}
	if err := c.Set(ctx, "serper:5:jazz", want, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if ttl := mr.TTL("serper:5:jazz"); ttl != time.Minute {
		t.Fatalf("unexpected ttl %v", ttl)
	}

	ok, err = c.Get(ctx, "serper:5:jazz", &hits)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if len(hits) != 1 || hits[0].Title != "Blue Note" {
		t.Fatalf("unexpected value: %+v", hits)
	}

	mr.FastForward(2 * time.Minute)
	if ok, _ := c.Get(ctx, "serper:5:jazz", &hits); ok {
		t.Fatalf("expected key to expire")
	}

	_ = c.Set(ctx, "k", "v", 0)
	if err := c.Del(ctx, "k"); err != nil {
		t.Fatalf("del: %v", err)
	}
	if mr.Exists("k") {
		t.Fatalf("expected key to be deleted")
	}
}

func TestCache_ServerDown(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	var s string
	if _, err := c.Get(ctx, "k", &s); err == nil {
		t.Fatalf("expected error when redis is down")
	}
	if err := c.Ping(ctx); err == nil {
		t.Fatalf("expected ping to fail")
	}
}
