package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"studiobook/internal/middleware"
	"studiobook/internal/service"
)

// UserHandler serves account lookup and deletion.
type UserHandler struct {
	users  *service.Users
	logger *slog.Logger
}

// NewUserHandler wires a UserHandler.
func NewUserHandler(users *service.Users, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// FindByID handles GET /api/user/{id}.
func (h *UserHandler) FindByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid id")
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "user not found")
			return
		}
		writeInternal(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Delete handles DELETE /api/user/{id}. Only the account owner may delete
// it; any other authenticated identity gets 401.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid id")
		return
	}

	target, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "user not found")
			return
		}
		writeInternal(w, h.logger, err)
		return
	}

	caller, _ := middleware.UserFromContext(r.Context())
	if caller == nil || caller.ID != target.ID {
		writeMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "user not found")
			return
		}
		writeInternal(w, h.logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "user deleted")
}
