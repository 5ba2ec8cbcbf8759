// Package crew is the planning engine: a small team of LLM agents that research the destination
// on the web and compile a day-by-day itinerary.
package crew

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"trip_surprise/internal/domain"
)

type Options struct {
	MaxQueries  int // search queries planned per research task
	MaxPages    int // pages read per research task
	Concurrency int // parallel searches or page reads per task
	Temperature float64
}

func (o Options) withDefaults() Options {
	if o.MaxQueries <= 0 {
		o.MaxQueries = 3
	}
	if o.MaxPages <= 0 {
		o.MaxPages = 4
	}
	if o.Concurrency <= 0 {
		o.Concurrency = 4
	}
	if o.Temperature <= 0 {
		o.Temperature = 0.4
	}
	return o
}

// Crew implements domain.Planner.
type Crew struct {
	llm    domain.Completer
	search domain.Searcher
	reader domain.PageReader
	tasks  []Task
	opts   Options
}

// New builds a crew running DefaultTasks. reader may be nil, in which case only search snippets are used.
func New(llm domain.Completer, search domain.Searcher, reader domain.PageReader, opts Options) *Crew {
	return &Crew{llm: llm, search: search, reader: reader, tasks: DefaultTasks(), opts: opts.withDefaults()}
}

// WithTasks replaces the workflow. The last non-research task compiles the final answer.
func (c *Crew) WithTasks(tasks []Task) *Crew {
	c.tasks = tasks
	return c
}

// Kickoff runs every research task concurrently, then the compile task over their outputs.
// It blocks until the final answer is ready or a task fails.
func (c *Crew) Kickoff(ctx context.Context, inputs map[string]any) (domain.EngineResult, error) {
	rendered := make([]Task, 0, len(c.tasks))
	for _, t := range c.tasks {
		rt, err := renderTask(t, inputs)
		if err != nil {
			return domain.EngineResult{}, err
		}
		rendered = append(rendered, rt)
	}
	research, rest := lo.FilterReject(rendered, func(t Task, _ int) bool { return t.Research })
	if len(rest) == 0 {
		return domain.EngineResult{}, errors.New("crew: no compile task")
	}
	compile := rest[len(rest)-1]

	outputs := make([]domain.TaskOutput, len(research))
	g, gctx := errgroup.WithContext(ctx)
	for i, t := range research {
		g.Go(func() error {
			var text string
			err := guard(func() (err error) {
				text, err = c.runResearch(gctx, t)
				return err
			})
			if err != nil {
				return fmt.Errorf("%s: %w", t.Name, err)
			}
			outputs[i] = domain.TaskOutput{Name: t.Name, Agent: t.Agent.Role, Raw: text}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.EngineResult{}, err
	}

	final, err := c.answer(ctx, compile, outputs, nil)
	if err != nil {
		return domain.EngineResult{}, fmt.Errorf("%s: %w", compile.Name, err)
	}
	log.Debug().Int("tasks", len(rendered)).Int("chars", len(final)).Msg("crew finished")

	return domain.EngineResult{
		Raw:   final,
		Tasks: append(outputs, domain.TaskOutput{Name: compile.Name, Agent: compile.Agent.Role, Raw: final}),
	}, nil
}

func (c *Crew) runResearch(ctx context.Context, t Task) (string, error) {
	queries := c.planQueries(ctx, t)

	hits, err := c.searchAll(ctx, queries)
	if err != nil {
		return "", err
	}
	hits = lo.UniqBy(hits, func(h domain.SearchHit) string { return h.Link })

	sources := c.readPages(ctx, hits)
	return c.answer(ctx, t, nil, sources)
}

type queryPlan struct {
	Queries []string `json:"queries"`
}

// planQueries asks the agent what to search for. A bad plan falls back to the task's search hint.
func (c *Crew) planQueries(ctx context.Context, t Task) []string {
	prompt := fmt.Sprintf("%s\n\nBefore answering you can search the web. "+
		"List up to %d search queries that would find the information needed. "+
		`Reply with JSON: {"queries": ["..."]}`, t.Description, c.opts.MaxQueries)

	raw, err := c.llm.Complete(ctx, domain.CompletionRequest{
		System: t.Agent.system(), Prompt: prompt, JSON: true, Temperature: c.opts.Temperature,
	})
	var plan queryPlan
	if err == nil {
		err = json.Unmarshal([]byte(raw), &plan)
	}
	queries := lo.Uniq(lo.Compact(lo.Map(plan.Queries, func(q string, _ int) string { return strings.TrimSpace(q) })))
	if len(queries) == 0 {
		if err != nil {
			log.Warn().Err(err).Str("task", t.Name).Msg("query planning failed; using search hint")
		}
		return lo.Compact([]string{t.SearchHint})
	}
	if len(queries) > c.opts.MaxQueries {
		queries = queries[:c.opts.MaxQueries]
	}
	return queries
}

// searchAll runs the queries in parallel. It fails only when every query failed.
func (c *Crew) searchAll(ctx context.Context, queries []string) ([]domain.SearchHit, error) {
	if len(queries) == 0 {
		return nil, errors.New("no search queries")
	}
	results := make([][]domain.SearchHit, len(queries))
	errs := make([]error, len(queries))

	var g errgroup.Group
	g.SetLimit(c.opts.Concurrency)
	for i, q := range queries {
		g.Go(func() error {
			errs[i] = guard(func() (err error) {
				results[i], err = c.search.Search(ctx, q)
				return err
			})
			if errs[i] != nil {
				log.Warn().Err(errs[i]).Str("query", q).Msg("search failed")
			}
			return nil
		})
	}
	_ = g.Wait()

	if failed := lo.CountBy(errs, func(e error) bool { return e != nil }); failed == len(queries) {
		return nil, fmt.Errorf("%w: %w", domain.ErrSearchFailed, errors.Join(errs...))
	}
	return lo.Flatten(results), nil
}

type source struct {
	hit  domain.SearchHit
	text string
}

// readPages fetches the top hits. Pages that fail to load keep only their snippet.
func (c *Crew) readPages(ctx context.Context, hits []domain.SearchHit) []source {
	out := make([]source, len(hits))
	for i, h := range hits {
		out[i].hit = h
	}
	if c.reader == nil {
		return out
	}

	n := min(len(hits), c.opts.MaxPages)
	var g errgroup.Group
	g.SetLimit(c.opts.Concurrency)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			var text string
			err := guard(func() (err error) {
				text, err = c.reader.Read(ctx, hits[i].Link)
				return err
			})
			if err != nil {
				log.Debug().Err(err).Str("url", hits[i].Link).Msg("page skipped")
				return nil
			}
			out[i].text = text
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// answer makes the agent's final call for a task, with either prior task outputs or web sources as context.
func (c *Crew) answer(ctx context.Context, t Task, prior []domain.TaskOutput, sources []source) (string, error) {
	var b strings.Builder
	b.WriteString("Current task: ")
	b.WriteString(t.Description)
	b.WriteString("\n\nThis is the expected criteria for your final answer: ")
	b.WriteString(t.ExpectedOutput)

	if len(prior) > 0 {
		b.WriteString("\n\nThis is the context you're working with:\n")
		for _, p := range prior {
			fmt.Fprintf(&b, "\n## %s (%s)\n%s\n", p.Name, p.Agent, p.Raw)
		}
	}
	if len(sources) > 0 {
		b.WriteString("\n\nWeb research results:\n")
		for i, s := range sources {
			fmt.Fprintf(&b, "\n[%d] %s (%s)\n%s\n", i+1, s.hit.Title, s.hit.Link, s.hit.Snippet)
			if s.text != "" {
				b.WriteString("Page excerpt: ")
				b.WriteString(s.text)
				b.WriteString("\n")
			}
		}
	}

	temp := c.opts.Temperature
	if t.JSON {
		temp = min(temp, 0.2)
	}
	out, err := c.llm.Complete(ctx, domain.CompletionRequest{
		System: t.Agent.system(), Prompt: b.String(), JSON: t.JSON, Temperature: temp,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// guard runs fn and reports a panic as an error. Goroutines started by the crew must use it:
// a panic there is out of reach of the caller's recover.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("crew: panic: %v", r)
		}
	}()
	return fn()
}
