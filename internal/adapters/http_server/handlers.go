// internal/adapters/http_server/handlers.go
package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"trip_surprise/internal/app"
	"trip_surprise/internal/domain"
	"trip_surprise/internal/shared"
)

// Submitter runs one trip submission to completion.
type Submitter interface {
	Submit(ctx context.Context, form domain.TripForm) app.Outcome
}

type Handlers struct {
	Plans   Submitter
	Locales *app.LocaleResolver
	Creds   *shared.Credentials
	Now     func() time.Time
}

type problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Kind     string `json:"kind,omitempty"`
	Hint     string `json:"hint,omitempty"`
	Instance string `json:"instance,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	if h.Now == nil {
		h.Now = time.Now
	}
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/locales", h.listLocales)
	s.mux.Get("/v1/locales/{side}/subdivisions", h.subdivisions)
	s.mux.Get("/v1/durations", h.durations)
	s.mux.Get("/v1/form", h.defaultForm)
	s.mux.Get("/v1/credentials", h.credentialStatus)
	s.mux.Put("/v1/credentials", h.putCredentials)
	s.mux.Post("/v1/trips", h.createTrip)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	writeProblemDoc(w, problem{Type: "about:blank", Title: title, Status: status, Detail: detail})
}

func writeProblemDoc(w http.ResponseWriter, p problem) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal response")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "response could not be encoded")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

// ---- locale and form metadata ----

type localesResponse struct {
	Countries []string          `json:"countries"`
	Defaults  map[string]string `json:"defaults"`
}

func (h *Handlers) listLocales(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, localesResponse{
		Countries: h.Locales.Countries(),
		Defaults: map[string]string{
			string(domain.Origin):      h.Locales.DefaultCountry(domain.Origin),
			string(domain.Destination): h.Locales.DefaultCountry(domain.Destination),
		},
	})
}

func parseSide(s string) (domain.Side, bool) {
	switch domain.Side(strings.ToLower(s)) {
	case domain.Origin:
		return domain.Origin, true
	case domain.Destination:
		return domain.Destination, true
	}
	return "", false
}

func (h *Handlers) subdivisions(w http.ResponseWriter, r *http.Request) {
	side, ok := parseSide(chi.URLParam(r, "side"))
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid side", "side must be origin or destination")
		return
	}
	country := strings.TrimSpace(r.URL.Query().Get("country"))
	if country == "" {
		country = h.Locales.DefaultCountry(side)
	}
	writeJSON(w, http.StatusOK, h.Locales.Subdivisions(side, country))
}

func (h *Handlers) durations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"options": app.DurationOptions,
		"default": app.DefaultDuration,
		"custom":  app.CustomDuration,
	})
}

func (h *Handlers) defaultForm(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, app.NewForm(h.Locales, h.Now()))
}

// ---- credentials ----

type credentialsBody struct {
	SearchKey string `json:"search_key"`
	LLMKey    string `json:"llm_key"`
}

func (h *Handlers) credentialStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Creds.Status())
}

func (h *Handlers) putCredentials(w http.ResponseWriter, r *http.Request) {
	var body credentialsBody
	if err := json.NewDecoder(io.LimitReader(r.Body, 64<<10)).Decode(&body); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "expected a JSON object with search_key and llm_key")
		return
	}
	h.Creds.Set(body.SearchKey, body.LLMKey)
	log.Info().Bool("search", body.SearchKey != "").Bool("llm", body.LLMKey != "").Msg("credentials updated")
	writeJSON(w, http.StatusOK, h.Creds.Status())
}

// ---- trips ----

// tripBody overlays client fields on the default form. The departure date may be a plain YYYY-MM-DD.
type tripBody struct {
	domain.TripForm
	DepartureDate string `json:"departure_date"`
}

type tripResponse struct {
	ID      string          `json:"id"`
	Request string          `json:"request"`
	Blocks  []domain.Block  `json:"blocks"`
	Result  json.RawMessage `json:"result,omitempty"`
	TookMS  int64           `json:"took_ms"`
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func (h *Handlers) createTrip(w http.ResponseWriter, r *http.Request) {
	body := tripBody{TripForm: app.NewForm(h.Locales, h.Now())}
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		writeProblem(w, http.StatusBadRequest, "Invalid body", err.Error())
		return
	}
	form := body.TripForm
	if body.DepartureDate != "" {
		d, err := parseDate(body.DepartureDate)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid departure_date", "use YYYY-MM-DD or RFC 3339")
			return
		}
		form.DepartureDate = d
	}
	if err := app.ValidateForm(form); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid form", err.Error())
		return
	}

	// a client disconnect must not abort an engine run that already started
	out := h.Plans.Submit(context.WithoutCancel(r.Context()), form)
	if !out.OK() {
		writeFailure(w, out)
		return
	}

	if r.URL.Query().Get("format") == "markdown" {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Header().Set("X-Submission-Id", out.ID)
		w.WriteHeader(http.StatusOK)
		if _, err := io.WriteString(w, app.RenderMarkdown(out.Blocks)); err != nil {
			log.Error().Err(err).Msg("failed to write markdown body")
		}
		return
	}

	resp := tripResponse{ID: out.ID, Blocks: out.Blocks, TookMS: out.Took.Milliseconds()}
	if out.Request != nil {
		resp.Request = out.Request.Phrase()
	}
	if out.Document != nil && len(out.Document.RawJSON) > 0 {
		resp.Result = out.Document.RawJSON
	}
	writeJSON(w, http.StatusOK, resp)
}

func failureStatus(k domain.Kind) int {
	switch k {
	case domain.KindMissingInput, domain.KindMissingCredentials:
		return http.StatusUnprocessableEntity
	case domain.KindEngineFailure, domain.KindResultMalformed:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func writeFailure(w http.ResponseWriter, out app.Outcome) {
	f := out.Failure
	status := failureStatus(f.Kind)
	writeProblemDoc(w, problem{
		Type:     "about:blank",
		Title:    http.StatusText(status),
		Status:   status,
		Detail:   f.Message,
		Kind:     string(f.Kind),
		Hint:     f.Hint,
		Instance: "/v1/trips/" + out.ID,
	})
}
