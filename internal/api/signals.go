package api

import (
	"net/http"

	"konnect-service-go/internal/models"
	"konnect-service-go/internal/payload"
)

// CreateSignalHandler handles POST /signals.
func (h *APIHandler) CreateSignalHandler(w http.ResponseWriter, r *http.Request) {
	var in models.SignalInput
	if err := payload.Decode(r.Body, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	signal, err := h.stores.Signals.Create(r.Context(), in)
	h.respond(w, r, http.StatusCreated, signal, err)
}

// ListSignalsHandler handles GET /signals.
func (h *APIHandler) ListSignalsHandler(w http.ResponseWriter, r *http.Request) {
	signals, err := h.stores.Signals.List(r.Context())
	h.respond(w, r, http.StatusOK, signals, err)
}

// GetSignalHandler handles GET /signals/{id}.
func (h *APIHandler) GetSignalHandler(w http.ResponseWriter, r *http.Request) {
	id, err := rowID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	signal, err := h.stores.Signals.Get(r.Context(), id)
	h.respond(w, r, http.StatusOK, signal, err)
}

// UpdateSignalHandler handles PUT /signals/{id}.
func (h *APIHandler) UpdateSignalHandler(w http.ResponseWriter, r *http.Request) {
	id, err := rowID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var patch models.SignalInput
	if err := payload.Decode(r.Body, &patch); err != nil {
		h.writeError(w, r, err)
		return
	}
	signal, err := h.stores.Signals.Update(r.Context(), id, patch)
	h.respond(w, r, http.StatusOK, signal, err)
}

// DeleteSignalHandler handles DELETE /signals/{id} and returns the deleted signal.
func (h *APIHandler) DeleteSignalHandler(w http.ResponseWriter, r *http.Request) {
	id, err := rowID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	signal, err := h.stores.Signals.Delete(r.Context(), id)
	h.respond(w, r, http.StatusOK, signal, err)
}
