package api

import (
	"net/http"

	"konnect-service-go/internal/models"
	"konnect-service-go/internal/payload"
)

// CreateAlertHandler handles POST /alerts.
func (h *APIHandler) CreateAlertHandler(w http.ResponseWriter, r *http.Request) {
	var in models.AlertInput
	if err := payload.Decode(r.Body, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	alert, err := h.stores.Alerts.Create(r.Context(), in)
	h.respond(w, r, http.StatusCreated, alert, err)
}

// ListAlertsHandler handles GET /alerts.
func (h *APIHandler) ListAlertsHandler(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.stores.Alerts.List(r.Context())
	h.respond(w, r, http.StatusOK, alerts, err)
}

// GetAlertHandler handles GET /alerts/{id}.
func (h *APIHandler) GetAlertHandler(w http.ResponseWriter, r *http.Request) {
	id, err := rowID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	alert, err := h.stores.Alerts.Get(r.Context(), id)
	h.respond(w, r, http.StatusOK, alert, err)
}

// UpdateAlertHandler handles PUT /alerts/{id}.
func (h *APIHandler) UpdateAlertHandler(w http.ResponseWriter, r *http.Request) {
	id, err := rowID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var patch models.AlertInput
	if err := payload.Decode(r.Body, &patch); err != nil {
		h.writeError(w, r, err)
		return
	}
	alert, err := h.stores.Alerts.Update(r.Context(), id, patch)
	h.respond(w, r, http.StatusOK, alert, err)
}

// DeleteAlertHandler handles DELETE /alerts/{id} and returns the deleted alert.
func (h *APIHandler) DeleteAlertHandler(w http.ResponseWriter, r *http.Request) {
	id, err := rowID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	alert, err := h.stores.Alerts.Delete(r.Context(), id)
	h.respond(w, r, http.StatusOK, alert, err)
}
