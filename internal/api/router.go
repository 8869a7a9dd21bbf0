package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires every endpoint of the service onto a gorilla/mux router.
func NewRouter(h *APIHandler) *mux.Router {
	r := mux.NewRouter()
	r.Use(h.requestID, h.logRequests, h.recoverer)
	// mux skips middleware for unmatched routes.
	r.NotFoundHandler = h.requestID(h.logRequests(http.HandlerFunc(h.notFoundHandler)))
	r.MethodNotAllowedHandler = h.requestID(h.logRequests(http.HandlerFunc(h.methodNotAllowedHandler)))

	r.HandleFunc("/health", h.HealthHandler).Methods(http.MethodGet)

	r.HandleFunc("/users", h.CreateUserHandler).Methods(http.MethodPost)
	r.HandleFunc("/users", h.ListUsersHandler).Methods(http.MethodGet)
	r.HandleFunc("/users/{userId}", h.GetUserHandler).Methods(http.MethodGet)
	r.HandleFunc("/users/{userId}", h.UpdateUserHandler).Methods(http.MethodPut)
	r.HandleFunc("/users/{userId}", h.DeleteUserHandler).Methods(http.MethodDelete)

	r.HandleFunc("/alerts", h.CreateAlertHandler).Methods(http.MethodPost)
	r.HandleFunc("/alerts", h.ListAlertsHandler).Methods(http.MethodGet)
	r.HandleFunc("/alerts/{id:[0-9]+}", h.GetAlertHandler).Methods(http.MethodGet)
	r.HandleFunc("/alerts/{id:[0-9]+}", h.UpdateAlertHandler).Methods(http.MethodPut)
	r.HandleFunc("/alerts/{id:[0-9]+}", h.DeleteAlertHandler).Methods(http.MethodDelete)

	r.HandleFunc("/signals", h.CreateSignalHandler).Methods(http.MethodPost)
	r.HandleFunc("/signals", h.ListSignalsHandler).Methods(http.MethodGet)
	r.HandleFunc("/signals/{id:[0-9]+}", h.GetSignalHandler).Methods(http.MethodGet)
	r.HandleFunc("/signals/{id:[0-9]+}", h.UpdateSignalHandler).Methods(http.MethodPut)
	r.HandleFunc("/signals/{id:[0-9]+}", h.DeleteSignalHandler).Methods(http.MethodDelete)

	r.HandleFunc("/config/refresh-interval", h.GetRefreshIntervalHandler).Methods(http.MethodGet)
	r.HandleFunc("/config/refresh-intervals", h.CreateRefreshIntervalHandler).Methods(http.MethodPost)
	r.HandleFunc("/config/refresh-intervals/{id:[0-9]+}", h.UpdateRefreshIntervalHandler).Methods(http.MethodPut)

	return r
}
