package main

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"trip_surprise/internal/adapters/crew"
	server "trip_surprise/internal/adapters/http_server"
	"trip_surprise/internal/adapters/localeyaml"
	"trip_surprise/internal/adapters/memcache"
	"trip_surprise/internal/adapters/observability"
	redisad "trip_surprise/internal/adapters/redis"
	"trip_surprise/internal/app"
	"trip_surprise/internal/domain"
	"trip_surprise/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	locs, err := localeyaml.Load(cfg.LocalesPath)
	if err != nil {
		log.Fatal().Err(err).Msg("locales failed to load")
	}
	locales := app.NewLocaleResolver(locs)

	// deps
	creds := shared.NewCredentials(cfg.SerperKey, cfg.LLMKey())
	factory := &crew.Factory{
		LLMProvider:   cfg.LLMProvider,
		LLMModel:      cfg.LLMModel(),
		LLMBaseURL:    cfg.OpenAIBaseURL,
		SearchBase:    cfg.SerperBase,
		SearchRPS:     cfg.SearchRPS,
		SearchResults: cfg.SearchResults,
		Cache:         searchCache(cfg),
		CacheTTL:      cfg.CacheTTL,
	}
	plans := app.NewPlanService(locales, creds, app.NewEngineAdapter(factory, cfg.EngineTimeout))

	// http; the request timeout leaves room for decoding after a full engine run
	srv := server.New(cfg.EngineTimeout + 30*time.Second)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Plans: plans, Locales: locales, Creds: creds})

	log.Info().Str("addr", cfg.HTTPAddr).Str("llm", cfg.LLMProvider).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 10 * time.Second}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}

// searchCache uses Redis when configured and reachable, else an in-process cache.
func searchCache(cfg shared.Config) domain.Cache {
	if cfg.RedisAddr == "" {
		return memcache.New(cfg.CacheTTL)
	}
	rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rc.Ping(ctx); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable; using in-process cache")
		return memcache.New(cfg.CacheTTL)
	}
	log.Info().Str("addr", cfg.RedisAddr).Msg("redis cache ok")
	return rc
}
