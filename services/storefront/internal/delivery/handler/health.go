package handler

import (
	"context"
	"net/http"
	"time"
)

const healthPingTimeout = 2 * time.Second

type healthResponse struct {
	Status    string          `json:"status"`
	Timestamp time.Time       `json:"timestamp"`
	Mongo     string          `json:"mongo"`
	Cache     string          `json:"cache"`
	Metrics   MetricsSnapshot `json:"metrics"`
}

// Health reports 503 with status "degraded" when MongoDB is unreachable.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.now().UTC(),
		Mongo:     "up",
		Cache:     "disabled",
		Metrics:   h.metrics.Snapshot(),
	}
	if h.health.CacheEnabled {
		resp.Cache = "enabled"
	}

	code := http.StatusOK
	if h.health.Mongo != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
		defer cancel()
		if err := h.health.Mongo(ctx); err != nil {
			h.requestLogger(r).Warn("mongo health check failed")
			resp.Status, resp.Mongo = "degraded", "down"
			code = http.StatusServiceUnavailable
		}
	}
	writeJSON(w, resp, code)
}
