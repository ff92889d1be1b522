package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"soulmatch/internal/analysis"
	"soulmatch/internal/cache"
	"soulmatch/internal/catalog"
	"soulmatch/internal/codec"
	"soulmatch/internal/config"
	apperrors "soulmatch/internal/errors"
	"soulmatch/internal/llm"
	"soulmatch/internal/models"
	"soulmatch/internal/observability"
	"soulmatch/internal/service"

	"github.com/go-chi/chi/v5"
)

const (
	MaxBodySize       = 1 << 20 // 1MB
	cacheWriteTimeout = 5 * time.Second
)

var errEmptyReport = errors.New("model returned an empty report")

type Handler struct {
	Codec    *codec.Codec
	Catalog  catalog.Catalog
	Scoring  *service.ScoringService
	Prompts  *service.PromptBuilder
	Cache    cache.Store
	CacheTTL time.Duration
	// Defaults are the environment credentials used when a request carries no override.
	Defaults     llm.Settings
	NewGenerator func(llm.Settings) llm.Generator
	Logger       *slog.Logger
	Metrics      *observability.Metrics
}

func NewHandler(store cache.Store, defaults llm.Settings, logger *slog.Logger, metrics *observability.Metrics) *Handler {
	if store == nil {
		store = cache.Noop{}
	}
	if defaults.Model == "" {
		defaults.Model = config.DefaultModel
	}
	return &Handler{
		Codec:        codec.New(),
		Catalog:      catalog.Default,
		Scoring:      service.NewScoringService(catalog.Default),
		Prompts:      service.NewPromptBuilder(),
		Cache:        store,
		CacheTTL:     config.DefaultCacheTTL,
		Defaults:     defaults,
		NewGenerator: llm.NewGenerator,
		Logger:       observability.Component(logger, "api"),
		Metrics:      metrics,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.HealthCheck)
	r.Get("/api/questions", h.GetQuestions)
	r.Post("/api/match", h.Match)
	r.Post("/api/analyze", h.Analyze)
}

// ============================================================================
// Health
// ============================================================================

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
}

// ============================================================================
// Questionnaire
// ============================================================================

// GetQuestions returns the catalog of one scenario (?scenario=couple|friend)
func (h *Handler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	scenario, err := models.ParseScenario(r.URL.Query().Get("scenario"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown scenario", err)
		return
	}

	writeJSON(w, http.StatusOK, models.QuestionsResponse{
		Scenario:   scenario,
		Label:      scenario.Label(),
		Questions:  h.Catalog.Questions(scenario),
		Dimensions: h.Catalog.Dimensions(scenario),
	})
}

// Match decodes two profile tokens and returns the local score, the
// comparison matrix and the prompt a report would be generated from.
func (h *Handler) Match(w http.ResponseWriter, r *http.Request) {
	var req models.MatchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodySize)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	host, err := h.Codec.Decode(req.Host)
	if err != nil {
		writeError(w, http.StatusBadRequest, apperrors.ErrDecodeFailure.Error(), errors.New("host token could not be read"))
		return
	}
	guest, err := h.Codec.Decode(req.Guest)
	if err != nil {
		writeError(w, http.StatusBadRequest, apperrors.ErrDecodeFailure.Error(), errors.New("guest token could not be read"))
		return
	}

	aiCtx, err := h.Scoring.BuildContext(host, guest)
	switch {
	case apperrors.IsScenarioMismatch(err), apperrors.IsCatalogLengthMismatch(err):
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: err.Error()})
		return
	case err != nil:
		h.Logger.Error("build comparison failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to compare profiles", err)
		return
	}

	writeJSON(w, http.StatusOK, models.MatchResponse{
		Scenario:         aiCtx.Scenario,
		Score:            aiCtx.MatchScore,
		Summary:          service.Summary(aiCtx.Scenario, aiCtx.MatchScore, false),
		HostName:         aiCtx.Host.Name,
		GuestName:        aiCtx.Guest.Name,
		ComparisonMatrix: aiCtx.ComparisonMatrix,
		Prompt:           h.Prompts.BuildPrompt(aiCtx),
		CacheKey:         analysis.CacheKey(h.Catalog, aiCtx.Host, aiCtx.Guest, h.Logger),
	})
}

// ============================================================================
// Report generation
// ============================================================================

// Analyze generates (or replays from cache) the narrative report for a prompt.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodySize)).Decode(&req); err != nil {
		h.Metrics.AnalyzeRequest("none", "bad_request")
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		h.Metrics.AnalyzeRequest("none", "bad_request")
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Prompt is required"})
		return
	}

	// Cache hits are always answered as JSON, even for stream requests.
	if report, ok := h.cachedReport(r.Context(), req.CacheKey); ok {
		h.Metrics.AnalyzeRequest("cache", "ok")
		writeJSON(w, http.StatusOK, models.AnalyzeResponse{ReportText: report})
		return
	}

	settings := h.resolveSettings(req.Config)
	if settings.APIKey == "" {
		h.Logger.Error("no API key in request or environment")
		h.Metrics.AnalyzeRequest("none", "config_error")
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Error: "Server configuration error: " + apperrors.ErrVendorConfiguration.Error(),
		})
		return
	}

	gen := h.NewGenerator(settings)
	h.Logger.Info("generating report", "backend", gen.Backend(), "model", settings.Model,
		"stream", req.Stream, "cache_key", req.CacheKey != "")

	if req.Stream {
		h.streamReport(w, r, gen, req)
		return
	}

	started := time.Now()
	report, err := gen.Generate(r.Context(), req.Prompt, nil)
	h.observeVendor(gen, started, err)
	if err == nil && report == "" {
		err = errEmptyReport
	}
	if err != nil {
		h.Metrics.AnalyzeRequest("json", "vendor_error")
		h.writeVendorError(w, err)
		return
	}

	h.storeReport(r.Context(), req.CacheKey, report)
	h.Metrics.AnalyzeRequest("json", "ok")
	writeJSON(w, http.StatusOK, models.AnalyzeResponse{ReportText: report})
}

// streamReport relays vendor deltas as raw text. Once the first byte is out
// the status is committed, so a later failure is reported in the
// X-Stream-Error trailer and the partial report is never cached.
func (h *Handler) streamReport(w http.ResponseWriter, r *http.Request, gen llm.Generator, req models.AnalyzeRequest) {
	rc := http.NewResponseController(w)
	committed := false
	commit := func() {
		if committed {
			return
		}
		committed = true
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Trailer", analysis.StreamErrorTrailer)
		w.WriteHeader(http.StatusOK)
	}

	started := time.Now()
	report, err := gen.Generate(r.Context(), req.Prompt, func(delta string) error {
		if delta == "" {
			return nil
		}
		commit()
		if _, err := io.WriteString(w, delta); err != nil {
			return err
		}
		if err := rc.Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
			return err
		}
		return nil
	})
	h.observeVendor(gen, started, err)

	if err != nil {
		h.Metrics.AnalyzeRequest("stream", "vendor_error")
		if !committed {
			h.writeVendorError(w, err)
			return
		}
		h.Logger.Error("stream failed after first chunk", "error", err)
		w.Header().Set(analysis.StreamErrorTrailer, trailerValue(err))
		return
	}

	if report == "" && !committed {
		h.Metrics.AnalyzeRequest("stream", "vendor_error")
		h.writeVendorError(w, errEmptyReport)
		return
	}
	commit()
	h.storeReport(r.Context(), req.CacheKey, report)
	h.Metrics.AnalyzeRequest("stream", "ok")
}

// resolveSettings layers the request override over the environment defaults.
func (h *Handler) resolveSettings(override *models.AIConfig) llm.Settings {
	s := h.Defaults
	if override != nil {
		if override.APIKey != "" {
			s.APIKey = override.APIKey
		}
		if override.Endpoint != "" {
			s.Endpoint = override.Endpoint
		}
		if override.Model != "" {
			s.Model = override.Model
		}
	}
	if s.Model == "" {
		s.Model = config.DefaultModel
	}
	return s
}

// cachedReport treats every cache problem as a miss.
func (h *Handler) cachedReport(ctx context.Context, key string) (string, bool) {
	if key == "" || !cache.Enabled(h.Cache) {
		h.Metrics.CacheLookup("disabled")
		return "", false
	}
	report, ok, err := h.Cache.Get(ctx, key)
	switch {
	case err != nil:
		h.Logger.Warn("cache lookup failed", "error", err)
		h.Metrics.CacheLookup("error")
		return "", false
	case !ok || report == "":
		h.Metrics.CacheLookup("miss")
		return "", false
	}
	h.Logger.Info("cache hit", "cache_key", key)
	h.Metrics.CacheLookup("hit")
	return report, true
}

// storeReport writes a finished report on a context detached from the request,
// so a client hanging up does not lose the write.
func (h *Handler) storeReport(ctx context.Context, key, report string) {
	if key == "" || report == "" || !cache.Enabled(h.Cache) {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cacheWriteTimeout)
	defer cancel()

	ttl := h.CacheTTL
	if ttl <= 0 {
		ttl = config.DefaultCacheTTL
	}
	if err := h.Cache.Set(ctx, key, report, ttl); err != nil {
		h.Logger.Warn("cache write failed", "error", err)
	}
}

func (h *Handler) observeVendor(gen llm.Generator, started time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	h.Metrics.ObserveVendor(gen.Backend(), status, time.Since(started))
}

// writeVendorError maps a generation failure to a status the analysis client
// understands: transient vendor trouble is retryable, a rejected request is not.
func (h *Handler) writeVendorError(w http.ResponseWriter, err error) {
	h.Logger.Error("report generation failed", "error", err)

	var permanent *apperrors.PermanentError
	switch {
	case apperrors.IsTransient(err):
		writeError(w, http.StatusServiceUnavailable, "Failed to generate analysis", err)
	case errors.As(err, &permanent) && permanent.StatusCode != 0:
		writeError(w, http.StatusFailedDependency, "Failed to generate analysis", err)
	default:
		writeError(w, http.StatusInternalServerError, "Failed to generate analysis", err)
	}
}

// ============================================================================
// Helpers
// ============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := models.ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// trailerValue flattens an error into a single header-safe line.
func trailerValue(err error) string {
	msg := strings.Map(func(r rune) rune {
		if r == '\r' || r == '\n' {
			return ' '
		}
		return r
	}, err.Error())
	if len(msg) > 512 {
		msg = msg[:512]
	}
	return msg
}
