package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"studiobook/internal/service"
)

// TeacherHandler serves read-only teacher lookups.
type TeacherHandler struct {
	teachers *service.Teachers
	logger   *slog.Logger
}

// NewTeacherHandler wires a TeacherHandler.
func NewTeacherHandler(teachers *service.Teachers, logger *slog.Logger) *TeacherHandler {
	return &TeacherHandler{teachers: teachers, logger: logger}
}

// FindAll handles GET /api/teacher.
func (h *TeacherHandler) FindAll(w http.ResponseWriter, r *http.Request) {
	teachers, err := h.teachers.FindAll(r.Context())
	if err != nil {
		writeInternal(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, teachers)
}

// FindByID handles GET /api/teacher/{id}.
func (h *TeacherHandler) FindByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid id")
		return
	}

	teacher, err := h.teachers.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "teacher not found")
			return
		}
		writeInternal(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, teacher)
}
