//go:build integration

package redisad_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	redisad "trip_surprise/internal/adapters/redis"
)

func TestCache_RealRedis(t *testing.T) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{Repository: "redis", Tag: "7-alpine"}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run redis: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	addr := fmt.Sprintf("127.0.0.1:%s", resource.GetPort("6379/tcp"))
	c := redisad.New(addr, "", 0)
	t.Cleanup(func() { _ = c.Close() })

	ctx := context.Background()
	if err := pool.Retry(func() error { return c.Ping(ctx) }); err != nil {
		t.Fatalf("connect redis: %v", err)
	}

	type doc struct {
		Title string `json:"title"`
	}
	if err := c.Set(ctx, "trip:doc", doc{Title: "Surprise"}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	var got doc
	ok, err := c.Get(ctx, "trip:doc", &got)
	if err != nil || !ok || got.Title != "Surprise" {
		t.Fatalf("unexpected get: ok=%v err=%v got=%+v", ok, err, got)
	}
}
