package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"konnect-service-go/internal/models"
	"konnect-service-go/internal/payload"
)

// CreateUserHandler handles POST /users.
func (h *APIHandler) CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	var in models.UserInput
	if err := payload.Decode(r.Body, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	user, err := h.stores.Users.Create(r.Context(), in)
	h.respond(w, r, http.StatusCreated, user, err)
}

// ListUsersHandler handles GET /users.
func (h *APIHandler) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := h.stores.Users.List(r.Context())
	h.respond(w, r, http.StatusOK, users, err)
}

// GetUserHandler handles GET /users/{userId}.
func (h *APIHandler) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	user, err := h.stores.Users.Get(r.Context(), mux.Vars(r)["userId"])
	h.respond(w, r, http.StatusOK, user, err)
}

// UpdateUserHandler handles PUT /users/{userId}.
func (h *APIHandler) UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	var patch models.UserInput
	if err := payload.Decode(r.Body, &patch); err != nil {
		h.writeError(w, r, err)
		return
	}
	user, err := h.stores.Users.Update(r.Context(), mux.Vars(r)["userId"], patch)
	h.respond(w, r, http.StatusOK, user, err)
}

// DeleteUserHandler handles DELETE /users/{userId} and returns the deleted user.
func (h *APIHandler) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	user, err := h.stores.Users.Delete(r.Context(), mux.Vars(r)["userId"])
	h.respond(w, r, http.StatusOK, user, err)
}
