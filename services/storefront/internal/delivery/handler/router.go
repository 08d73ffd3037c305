package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"storefront/services/storefront/internal/infrastructure"
)

type RouterConfig struct {
	HandlerTimeout time.Duration
	// GlobalLimiter and SessionLimiter guard the tracking routes; nil disables either.
	GlobalLimiter  *rate.Limiter
	SessionLimiter *infrastructure.RateLimiter
}

func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	notFound := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		sendJSONError(w, "Not found", http.StatusNotFound)
	})
	methodNotAllowed := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		sendJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
	})

	r := mux.NewRouter()
	r.Use(h.requestID, h.accessLog, h.recoverer, timeout(cfg.HandlerTimeout))
	r.NotFoundHandler = notFound
	r.MethodNotAllowedHandler = methodNotAllowed

	// Subrouters report their own 405s; a method mismatch inside one is
	// otherwise lost when a sibling route fails to match afterwards.
	api := r.PathPrefix("/api").Subrouter()
	api.MethodNotAllowedHandler = methodNotAllowed

	analytics := api.PathPrefix("/analytics").Subrouter()
	analytics.MethodNotAllowedHandler = methodNotAllowed
	analytics.Use(h.requireAdmin)
	analytics.HandleFunc("/funnel", h.Funnel).Methods(http.MethodGet)
	analytics.HandleFunc("/revenue", h.Revenue).Methods(http.MethodGet)
	analytics.HandleFunc("/attribution", h.Attribution).Methods(http.MethodGet)
	analytics.HandleFunc("/cohorts", h.Cohorts).Methods(http.MethodGet)
	analytics.HandleFunc("/categories", h.Categories).Methods(http.MethodGet)
	analytics.HandleFunc("/dashboard", h.Dashboard).Methods(http.MethodGet)

	track := api.PathPrefix("/track").Subrouter()
	track.MethodNotAllowedHandler = methodNotAllowed
	track.Use(globalLimit(cfg.GlobalLimiter), sessionLimit(cfg.SessionLimiter), h.optionalUser)
	track.HandleFunc("/event", h.TrackEvent).Methods(http.MethodPost)
	track.HandleFunc("/batch", h.TrackBatch).Methods(http.MethodPost)

	api.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	return r
}
