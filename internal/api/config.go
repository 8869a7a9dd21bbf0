package api

import (
	"net/http"

	"konnect-service-go/internal/models"
	"konnect-service-go/internal/payload"
)

// RefreshIntervalResponse is the body of GET /config/refresh-interval.
// Error is only set when the interval is the unconfigured fallback.
type RefreshIntervalResponse struct {
	Error           string `json:"error,omitempty"`
	IntervalSeconds int64  `json:"interval_seconds"`
}

// GetRefreshIntervalHandler handles GET /config/refresh-interval. An unconfigured
// interval answers 404 but still carries the fallback value.
func (h *APIHandler) GetRefreshIntervalHandler(w http.ResponseWriter, r *http.Request) {
	ri, configured, err := h.stores.Config.Get(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if !configured {
		h.writeJSON(w, http.StatusNotFound, RefreshIntervalResponse{
			Error:           "No refresh interval configured",
			IntervalSeconds: ri.IntervalSeconds,
		})
		return
	}
	h.writeJSON(w, http.StatusOK, RefreshIntervalResponse{IntervalSeconds: ri.IntervalSeconds})
}

// CreateRefreshIntervalHandler handles POST /config/refresh-intervals.
func (h *APIHandler) CreateRefreshIntervalHandler(w http.ResponseWriter, r *http.Request) {
	var in models.RefreshIntervalInput
	if err := payload.Decode(r.Body, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	ri, err := h.stores.Config.Create(r.Context(), in)
	h.respond(w, r, http.StatusCreated, ri, err)
}

// UpdateRefreshIntervalHandler handles PUT /config/refresh-intervals/{id}.
func (h *APIHandler) UpdateRefreshIntervalHandler(w http.ResponseWriter, r *http.Request) {
	id, err := rowID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var in models.RefreshIntervalInput
	if err := payload.Decode(r.Body, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	ri, err := h.stores.Config.Update(r.Context(), id, in)
	h.respond(w, r, http.StatusOK, ri, err)
}
