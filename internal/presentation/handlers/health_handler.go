package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
)

// dependencyCheckTTL bounds how often /health reaches the upstream API and
// the wallet node. Monitoring polls would otherwise spend Moralis quota.
const dependencyCheckTTL = 30 * time.Second

// HealthChecker defines the interface for health checking components
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthHandler handles health check requests
type HealthHandler struct {
	sessions HealthChecker
	upstream HealthChecker
	wallet   HealthChecker
}

// NewHealthHandler creates a new health handler. The session store is
// required; a failing upstream or wallet provider only degrades the service
// since the console renders placeholders without them. wallet may be nil.
func NewHealthHandler(sessions, upstream, wallet HealthChecker) *HealthHandler {
	return &HealthHandler{
		sessions: sessions,
		upstream: newCachedChecker(upstream, dependencyCheckTTL),
		wallet:   newCachedChecker(wallet, dependencyCheckTTL),
	}
}

// cachedChecker remembers the outcome of the last check for ttl.
type cachedChecker struct {
	checker HealthChecker
	results *cache.Cache
	ttl     time.Duration
}

func newCachedChecker(checker HealthChecker, ttl time.Duration) HealthChecker {
	if checker == nil {
		return nil
	}
	return &cachedChecker{
		checker: checker,
		results: cache.New(ttl, 2*ttl),
		ttl:     ttl,
	}
}

func (c *cachedChecker) HealthCheck(ctx context.Context) error {
	if v, ok := c.results.Get("result"); ok {
		if msg := v.(string); msg != "" {
			return errors.New(msg)
		}
		return nil
	}

	err := c.checker.HealthCheck(ctx)
	// A check cut short by the caller says nothing about the dependency.
	if ctx.Err() != nil {
		return err
	}
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	c.results.Set("result", msg, c.ttl)
	return err
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  make(map[string]string),
	}

	if err := h.sessions.HealthCheck(ctx); err != nil {
		response.Status = "unhealthy"
		response.Services["sessions"] = "unhealthy: " + err.Error()
	} else {
		response.Services["sessions"] = "healthy"
	}

	optional := map[string]HealthChecker{
		"moralis": h.upstream,
		"wallet":  h.wallet,
	}
	for name, checker := range optional {
		if checker == nil {
			continue
		}
		if err := checker.HealthCheck(ctx); err != nil {
			if response.Status == "healthy" {
				response.Status = "degraded"
			}
			response.Services[name] = "unhealthy: " + err.Error()
		} else {
			response.Services[name] = "healthy"
		}
	}

	status := http.StatusOK
	if response.Status == "unhealthy" {
		status = http.StatusServiceUnavailable
	}

	respondJSON(w, status, response)
}

// Ready handles GET /ready (Kubernetes readiness probe)
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.sessions.HealthCheck(ctx); err != nil {
		http.Error(w, "not ready", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ready"))
}

// Live handles GET /live (Kubernetes liveness probe)
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("alive"))
}
