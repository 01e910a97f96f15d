package rest

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"
)

const healthTimeout = 3 * time.Second

// Pinger is a dependency the service needs to be ready.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	components map[string]Pinger
	version    string
}

// NewHealthHandler creates a HealthHandler over named components, e.g.
// "database" and "redis".
func NewHealthHandler(components map[string]Pinger, version string) *HealthHandler {
	return &HealthHandler{components: components, version: version}
}

// HealthResponse is the JSON response for /health and /ready.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
}

// Live reports that the process is up. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Ready returns 200 when every component answers, 503 if not.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	_, overall := h.check(r.Context())
	writeJSON(w, httpStatus(overall), HealthResponse{
		Status:    overall,
		Timestamp: time.Now(),
	})
}

// Health is the full health check with per-component latency and version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	components, overall := h.check(r.Context())
	writeJSON(w, httpStatus(overall), HealthResponse{
		Status:     overall,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}

// check pings all components concurrently.
func (h *HealthHandler) check(ctx context.Context) (map[string]CompStatus, string) {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	names := make([]string, 0, len(h.components))
	for name := range h.components {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]CompStatus, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func() {
			defer wg.Done()
			start := time.Now()
			if err := h.components[name].Ping(ctx); err != nil {
				results[i] = CompStatus{Status: "down"}
				return
			}
			results[i] = CompStatus{Status: "ok", Latency: time.Since(start).String()}
		}()
	}
	wg.Wait()

	overall := "ok"
	components := make(map[string]CompStatus, len(names))
	for i, name := range names {
		components[name] = results[i]
		if results[i].Status != "ok" {
			overall = "down"
		}
	}
	return components, overall
}

func httpStatus(overall string) int {
	if overall != "ok" {
		return http.StatusServiceUnavailable
	}
	return http.StatusOK
}
