package app

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"trip_surprise/internal/adapters/observability"
	"trip_surprise/internal/domain"
)

// Outcome is what one submission produced: either a rendered itinerary or exactly one failure.
type Outcome struct {
	ID       string
	Request  *domain.TripRequest
	Document *domain.ItineraryDocument
	Blocks   []domain.Block
	Failure  *domain.Failure
	Took     time.Duration
}

func (o Outcome) OK() bool { return o.Failure == nil }

// PlanService runs the whole pipeline for one form submission, synchronously.
type PlanService struct {
	locales *LocaleResolver
	creds   domain.CredentialStore
	engine  *EngineAdapter
}

func NewPlanService(l *LocaleResolver, c domain.CredentialStore, e *EngineAdapter) *PlanService {
	return &PlanService{locales: l, creds: c, engine: e}
}

// Submit resolves, validates, invokes the engine, decodes and renders.
// Failures stop the pipeline where they occur; no engine call is made for missing input or credentials.
func (s *PlanService) Submit(ctx context.Context, form domain.TripForm) Outcome {
	start := time.Now()
	out := Outcome{ID: uuid.NewString()}
	logger := log.With().Str("submission", out.ID).Logger()

	finish := func(f *domain.Failure) Outcome {
		out.Failure = f
		out.Took = time.Since(start)
		label := "ok"
		if f != nil {
			label = string(f.Kind)
			logger.Warn().Str("kind", label).Str("cause", observability.LabelErr(f.Err)).Err(f.Err).Dur("took", out.Took).Msg("submission failed")
		} else {
			logger.Info().Int("days", len(out.Document.Days)).Dur("took", out.Took).Msg("submission completed")
		}
		observability.ObserveSubmission(label)
		return out
	}

	req, err := BuildRequest(RequestInput{
		Origin:          s.locales.Resolve(domain.Origin, form.OriginCountry, form.OriginSubdivision, form.OriginCity),
		Destination:     s.locales.Resolve(domain.Destination, form.DestinationCountry, form.DestinationSubdivision, form.DestinationCity),
		DepartureDate:   form.DepartureDate,
		Age:             form.Age,
		HotelPreference: form.HotelPreference,
		FlightInfo:      form.FlightInfo,
		Duration:        NormalizeDuration(form.DurationChoice, form.CustomDuration),
		GoalsText:       form.GoalsText,
	})
	if err != nil {
		f, _ := domain.AsFailure(err)
		return finish(f)
	}
	out.Request = &req

	// read the credentials once; the engine gets this snapshot
	keys := s.creds.Snapshot()
	if !keys.Complete() {
		return finish(&domain.Failure{
			Kind:    domain.KindMissingCredentials,
			Message: "Please enter your SERPER API Key and OPENAI API Key first!",
			Err:     domain.ErrMissingCredentials,
		})
	}

	logger.Info().Str("request", req.Phrase()).Str("duration", req.Duration).Msg("searching for trip")
	res, err := s.engine.Invoke(ctx, req, keys)
	if err != nil {
		f, ok := domain.AsFailure(err)
		if !ok {
			f = searchFailed(err)
		}
		return finish(f)
	}

	doc, err := DecodeResult(res.Raw)
	if err != nil {
		return finish(&domain.Failure{
			Kind:    domain.KindResultMalformed,
			Message: SearchFailedMessage,
			Hint:    SearchFailedHint,
			Err:     err,
		})
	}
	out.Document = doc
	out.Blocks = Render(doc)
	return finish(nil)
}
