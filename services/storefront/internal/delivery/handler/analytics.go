package handler

import (
	"context"
	"fmt"
	"net/http"

	"storefront/services/storefront/internal/application/query"
	"storefront/services/storefront/internal/application/services"
	"storefront/services/storefront/internal/domain/entities"
)

func (h *Handler) dateRange(r *http.Request) (entities.DateRange, error) {
	q := r.URL.Query()
	return query.ParseDateRange(q.Get("startDate"), q.Get("endDate"), h.now(), h.lookback)
}

func reportContext(r *http.Request) context.Context {
	if noCache(r) {
		return services.WithCacheBypass(r.Context())
	}
	return r.Context()
}

func (h *Handler) Funnel(w http.ResponseWriter, r *http.Request) {
	dr, err := h.dateRange(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	channel := entities.Channel(r.URL.Query().Get("channel"))
	if channel != "" && !channel.Valid() {
		sendJSONError(w, fmt.Sprintf("invalid channel %q", channel), http.StatusBadRequest)
		return
	}

	result, err := h.analytics.ConversionFunnel(reportContext(r), query.FunnelQuery{Range: dr, Channel: channel})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	sendJSONResponse(w, result, http.StatusOK)
}

func (h *Handler) Revenue(w http.ResponseWriter, r *http.Request) {
	dr, err := h.dateRange(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.analytics.RevenueMetrics(reportContext(r), query.RevenueQuery{
		Range:       dr,
		Granularity: query.ParseGranularity(r.URL.Query().Get("granularity")),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	sendJSONResponse(w, result, http.StatusOK)
}

func (h *Handler) Attribution(w http.ResponseWriter, r *http.Request) {
	dr, err := h.dateRange(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.analytics.AttributionReport(reportContext(r), query.AttributionQuery{Range: dr})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	sendJSONResponse(w, result, http.StatusOK)
}

// Cohorts are computed over all time; date parameters are ignored.
func (h *Handler) Cohorts(w http.ResponseWriter, r *http.Request) {
	result, err := h.analytics.CustomerCohorts(reportContext(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	sendJSONResponse(w, result, http.StatusOK)
}

func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	result, err := h.analytics.CategoryPerformance(reportContext(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	sendJSONResponse(w, result, http.StatusOK)
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.analytics.DashboardKPIs(reportContext(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	sendJSONResponse(w, result, http.StatusOK)
}
