package handler

import (
	"net/http"

	"storefront/services/storefront/internal/application/command"
	"storefront/services/storefront/internal/application/services"
)

func (h *Handler) requestContext(r *http.Request) command.RequestContext {
	rc := command.RequestContext{
		SessionHeader:   r.Header.Get(headerSessionID),
		AttributionHint: r.Header.Get("X-Attribution"),
		DeviceHint:      r.Header.Get("X-Device-Type"),
	}
	if claims := claimsFrom(r.Context()); claims != nil {
		rc.UserID = services.UserIDFromClaim(claims.UserID)
	}
	return rc
}

func (h *Handler) TrackEvent(w http.ResponseWriter, r *http.Request) {
	var cmd command.TrackEventCommand
	if err := decodeJSON(w, r, &cmd); err != nil {
		sendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.tracking.TrackEvent(r.Context(), cmd, h.requestContext(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	sendJSONResponse(w, result, http.StatusCreated)
}

func (h *Handler) TrackBatch(w http.ResponseWriter, r *http.Request) {
	var cmd command.TrackBatchCommand
	if err := decodeJSON(w, r, &cmd); err != nil {
		sendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.tracking.TrackBatch(r.Context(), cmd, h.requestContext(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	sendJSONResponse(w, result, http.StatusCreated)
}
