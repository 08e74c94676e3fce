package rest

import (
	"encoding/json"
	"net/http"
	"time"
)

// breakerState reports the circuit-breaker state of the primary
// definition source ("closed", "half-open" or "open").
type breakerState interface {
	PrimaryState() string
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	dict    breakerState
	version string
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(dict breakerState, version string) *HealthHandler {
	return &HealthHandler{dict: dict, version: version}
}

// HealthResponse is the JSON response for /live and /health.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Health reports the version and the state of the primary dictionary source.
// An open breaker only degrades the service: lookups still go to the
// fallback source, so the response stays 200.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	state := h.dict.PrimaryState()

	primary := CompStatus{Status: "ok", Detail: "breaker " + state}
	overall := "ok"
	if state == "open" {
		primary.Status = "degraded"
		overall = "degraded"
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:     overall,
		Version:    h.version,
		Components: map[string]CompStatus{"dictionary_primary": primary},
		Timestamp:  time.Now(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
