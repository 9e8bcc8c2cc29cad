package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"studiobook/internal/entity"
	"studiobook/internal/service"
)

// SessionHandler serves session CRUD and the join/leave roster operations.
type SessionHandler struct {
	sessions *service.Sessions
	logger   *slog.Logger
}

// NewSessionHandler wires a SessionHandler.
func NewSessionHandler(sessions *service.Sessions, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, logger: logger}
}

type sessionRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Date        *time.Time `json:"date"`
	TeacherID   *int64     `json:"teacher_id"`
	Users       []int64    `json:"users"`
}

func (req *sessionRequest) toEntity() *entity.Session {
	session := &entity.Session{
		Name:        req.Name,
		Description: req.Description,
		TeacherID:   req.TeacherID,
		Users:       req.Users,
	}
	if req.Date != nil {
		session.Date = *req.Date
	}
	if session.Users == nil {
		session.Users = []int64{}
	}
	return session
}

// FindAll handles GET /api/session.
func (h *SessionHandler) FindAll(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sessions.FindAll(r.Context())
	if err != nil {
		writeInternal(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

// FindByID handles GET /api/session/{id}.
func (h *SessionHandler) FindByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid id")
		return
	}

	session, err := h.sessions.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "session not found")
			return
		}
		writeInternal(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// Create handles POST /api/session.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" || req.Date == nil {
		writeMessage(w, http.StatusBadRequest, "missing required fields")
		return
	}

	session, err := h.sessions.Create(r.Context(), req.toEntity())
	if err != nil {
		writeInternal(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// Update handles PUT /api/session/{id}. The body replaces the stored
// session wholesale.
func (h *SessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req sessionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" || req.Date == nil {
		writeMessage(w, http.StatusBadRequest, "missing required fields")
		return
	}

	session, err := h.sessions.Update(r.Context(), id, req.toEntity())
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "session not found")
			return
		}
		writeInternal(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// Delete handles DELETE /api/session/{id}.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.sessions.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "session not found")
			return
		}
		writeInternal(w, h.logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "session deleted")
}

// Participate handles POST /api/session/{id}/participate/{userId}.
func (h *SessionHandler) Participate(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid id")
		return
	}
	userID, ok := pathID(r, "userId")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.sessions.Participate(r.Context(), sessionID, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			writeMessage(w, http.StatusNotFound, "not found")
		case errors.Is(err, service.ErrAlreadyParticipating):
			writeMessage(w, http.StatusBadRequest, "already participating")
		default:
			writeInternal(w, h.logger, err)
		}
		return
	}
	writeMessage(w, http.StatusOK, "participation recorded")
}

// NoLongerParticipate handles DELETE /api/session/{id}/participate/{userId}.
func (h *SessionHandler) NoLongerParticipate(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid id")
		return
	}
	userID, ok := pathID(r, "userId")
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.sessions.NoLongerParticipate(r.Context(), sessionID, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			writeMessage(w, http.StatusNotFound, "not found")
		case errors.Is(err, service.ErrNotParticipating):
			writeMessage(w, http.StatusBadRequest, "not participating")
		default:
			writeInternal(w, h.logger, err)
		}
		return
	}
	writeMessage(w, http.StatusOK, "participation removed")
}
