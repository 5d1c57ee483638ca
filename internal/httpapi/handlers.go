package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/roninwatch/tokendash/internal/dexscreener"
	"github.com/roninwatch/tokendash/internal/metrics"
	"github.com/roninwatch/tokendash/internal/pipeline"
)

// Handlers bundles the HTTP endpoint implementations and their
// collaborators.
type Handlers struct {
	service      *pipeline.Service
	verifier     *dexscreener.Verifier
	metricsReg   *metrics.Registry
	breakerState func() string
	startedAt    time.Time
}

// NewHandlers wires the handler set. breakerState may be nil when no
// upstream breaker exists (tests).
func NewHandlers(service *pipeline.Service, verifier *dexscreener.Verifier, reg *metrics.Registry, breakerState func() string) *Handlers {
	return &Handlers{
		service:      service,
		verifier:     verifier,
		metricsReg:   reg,
		breakerState: breakerState,
		startedAt:    time.Now(),
	}
}

// Tokens handles GET /api/tokens. Always 200: data-availability failures
// degrade the payload, not the status.
func (h *Handlers) Tokens(w http.ResponseWriter, r *http.Request) {
	resp := h.service.Refresh(r.Context())
	h.writeJSON(w, http.StatusOK, resp)
}

// Verify handles GET /api/verify: the DEX Screener listing report.
func (h *Handlers) Verify(w http.ResponseWriter, r *http.Request) {
	report := h.verifier.Verify(r.Context())
	h.writeJSON(w, http.StatusOK, report)
}

// healthResponse is the GET /health payload.
type healthResponse struct {
	Status          string `json:"status"`
	Timestamp       string `json:"timestamp"`
	UptimeSecs      int64  `json:"uptimeSecs"`
	CacheAgeSecs    int64  `json:"cacheAgeSecs"`
	CachePopulated  bool   `json:"cachePopulated"`
	UpstreamBreaker string `json:"upstreamBreaker,omitempty"`
}

// Health handles GET /health.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:     "healthy",
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		UptimeSecs: int64(time.Since(h.startedAt).Seconds()),
	}

	if age, ok := h.service.Cache().Age(); ok {
		resp.CachePopulated = true
		resp.CacheAgeSecs = int64(age.Seconds())
	}
	if h.breakerState != nil {
		resp.UpstreamBreaker = h.breakerState()
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// Metrics returns the Prometheus exposition handler.
func (h *Handlers) Metrics() http.Handler {
	return h.metricsReg.Handler()
}

// NotFound handles unknown routes with a JSON body.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	h.writeJSON(w, http.StatusNotFound, map[string]string{
		"error": "not found",
		"path":  r.URL.Path,
	})
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}
