package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"konnect-service-go/internal/apperr"
	"konnect-service-go/internal/store"
)

// APIHandler holds dependencies for the API endpoints.
type APIHandler struct {
	log    *zap.Logger
	stores *store.Stores
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(log *zap.Logger, stores *store.Stores) *APIHandler {
	return &APIHandler{log: log.Named("api"), stores: stores}
}

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error string `json:"error"`
}

// HealthHandler reports liveness without touching the database.
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *APIHandler) notFoundHandler(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusNotFound, errorResponse{Error: apperr.MsgNotFound})
}

func (h *APIHandler) methodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
}

// respond writes v with status, or the error mapped to its status code.
func (h *APIHandler) respond(w http.ResponseWriter, r *http.Request, status int, v any, err error) {
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, status, v)
}

func (h *APIHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	fields := []zap.Field{
		zap.String("request_id", requestIDFrom(r.Context())),
		zap.String("kind", kind.String()),
		zap.Error(err),
	}
	if kind == apperr.KindInternal {
		h.log.Error("Request failed", fields...)
	} else {
		h.log.Debug("Request rejected", fields...)
	}
	h.writeJSON(w, kind.HTTPStatus(), errorResponse{Error: apperr.PublicMessage(err)})
}

func (h *APIHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("Failed to write response", zap.Error(err))
	}
}

// rowID parses the numeric {id} route variable. Out of range ids cannot exist.
func rowID(r *http.Request) (uint64, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, apperr.NotFound(err)
	}
	return id, nil
}
