package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"trip_surprise/internal/adapters/observability"
	"trip_surprise/internal/domain"
)

// Generic failure text shown for every engine or decoding problem.
const (
	SearchFailedMessage = "An error occurred during the search for your trip."
	SearchFailedHint    = "Please check your API keys and try again."
)

// EngineAdapter makes the single blocking call to the planning engine.
// It never retries: a failed invocation ends the submission.
type EngineAdapter struct {
	factory domain.PlannerFactory
	timeout time.Duration
}

// NewEngineAdapter wraps factory; timeout <= 0 means the call may block indefinitely.
func NewEngineAdapter(f domain.PlannerFactory, timeout time.Duration) *EngineAdapter {
	return &EngineAdapter{factory: f, timeout: timeout}
}

// Invoke runs the engine for req with the given credential snapshot.
// Every error it returns is a *domain.Failure of kind engine_failure, panics included.
func (a *EngineAdapter) Invoke(ctx context.Context, req domain.TripRequest, keys domain.Keys) (res domain.EngineResult, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = searchFailed(fmt.Errorf("engine panic: %v", r))
		}
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		observability.ObserveEngine(outcome, time.Since(start))
	}()

	planner, err := a.factory.NewPlanner(keys)
	if err != nil {
		return domain.EngineResult{}, searchFailed(fmt.Errorf("build planner: %w", err))
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	res, err = planner.Kickoff(ctx, req.Inputs())
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			log.Warn().Dur("timeout", a.timeout).Msg("engine run timed out")
		}
		return domain.EngineResult{}, searchFailed(err)
	}
	return res, nil
}

func searchFailed(cause error) *domain.Failure {
	return &domain.Failure{
		Kind:    domain.KindEngineFailure,
		Message: SearchFailedMessage,
		Hint:    SearchFailedHint,
		Err:     fmt.Errorf("%w: %w", domain.ErrSearchFailed, cause),
	}
}
