// Command planner runs a batch of trip forms from a YAML file and writes each itinerary as Markdown.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"
	"gopkg.in/yaml.v3"

	"trip_surprise/internal/adapters/crew"
	"trip_surprise/internal/adapters/localeyaml"
	"trip_surprise/internal/adapters/memcache"
	"trip_surprise/internal/adapters/observability"
	"trip_surprise/internal/app"
	"trip_surprise/internal/domain"
	"trip_surprise/internal/shared"
)

// batchFile is the request document: a list of forms. Omitted fields take the form defaults.
type batchFile struct {
	Trips []yaml.Node `yaml:"trips"`
}

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	log.Info().
		Str("requests", cfg.PlannerRequests).
		Str("out", cfg.PlannerOut).
		Int("workers", cfg.PlannerWorkers).
		Msg("planner starting")

	locs, err := localeyaml.Load(cfg.LocalesPath)
	if err != nil {
		log.Fatal().Err(err).Msg("locales failed to load")
	}
	locales := app.NewLocaleResolver(locs)

	forms, err := readForms(cfg.PlannerRequests, locales, time.Now())
	if err != nil {
		log.Fatal().Err(err).Msg("requests failed to load")
	}
	if err := os.MkdirAll(cfg.PlannerOut, 0o755); err != nil {
		log.Fatal().Err(err).Msg("output dir")
	}

	// a single cache is shared so overlapping research is searched once per batch
	factory := &crew.Factory{
		LLMProvider:   cfg.LLMProvider,
		LLMModel:      cfg.LLMModel(),
		LLMBaseURL:    cfg.OpenAIBaseURL,
		SearchBase:    cfg.SerperBase,
		SearchRPS:     cfg.SearchRPS,
		SearchResults: cfg.SearchResults,
		Cache:         memcache.New(cfg.CacheTTL),
		CacheTTL:      cfg.CacheTTL,
	}
	creds := shared.NewCredentials(cfg.SerperKey, cfg.LLMKey())
	plans := app.NewPlanService(locales, creds, app.NewEngineAdapter(factory, cfg.EngineTimeout))

	sem := semaphore.NewWeighted(int64(max(cfg.PlannerWorkers, 1)))
	var (
		wg     sync.WaitGroup
		failed atomic.Int32
	)
	for i, form := range forms {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(n int, f domain.TripForm) {
			defer wg.Done()
			defer sem.Release(1)

			if err := app.ValidateForm(f); err != nil {
				failed.Add(1)
				log.Warn().Int("n", n).Err(err).Msg("trip skipped")
				return
			}
			out := plans.Submit(ctx, f)
			if !out.OK() {
				failed.Add(1)
				log.Warn().Int("n", n).Str("kind", string(out.Failure.Kind)).Msg(out.Failure.Message)
				return
			}
			path := filepath.Join(cfg.PlannerOut, fmt.Sprintf("%02d-%s.md", n, out.ID))
			if err := os.WriteFile(path, []byte(app.RenderMarkdown(out.Blocks)), 0o644); err != nil {
				failed.Add(1)
				log.Error().Int("n", n).Err(err).Msg("write failed")
				return
			}
			log.Info().Int("n", n).Str("path", path).Dur("took", out.Took).Msg("trip planned")
		}(i+1, form)
	}

	wg.Wait()
	log.Info().Int("trips", len(forms)).Int32("failed", failed.Load()).Msg("planner completed")
	if failed.Load() > 0 {
		os.Exit(1)
	}
}

// readForms decodes each entry over a fresh default form, so a request only lists what differs.
func readForms(path string, locales *app.LocaleResolver, now time.Time) ([]domain.TripForm, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc batchFile
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	forms := make([]domain.TripForm, 0, len(doc.Trips))
	for i := range doc.Trips {
		f := app.NewForm(locales, now)
		if err := doc.Trips[i].Decode(&f); err != nil {
			return nil, fmt.Errorf("%s: trip %d: %w", path, i+1, err)
		}
		forms = append(forms, f)
	}
	return forms, nil
}
