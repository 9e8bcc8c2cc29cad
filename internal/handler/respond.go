// Package handler exposes the HTTP JSON API and maps service errors onto
// HTTP statuses: malformed identifiers 400, missing resources 404, roster
// and registration conflicts 400, authentication failures 401, throttled
// logins 429, anything unexpected a generic 500.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Message: message})
}

// writeInternal logs the real error and responds with a generic message so
// internal detail never reaches the caller.
func writeInternal(w http.ResponseWriter, logger *slog.Logger, err error) {
	logger.Error("internal error", "err", err)
	writeMessage(w, http.StatusInternalServerError, "internal server error")
}

// pathID parses the named numeric URL parameter. A non-numeric value is a
// client error reported before any store or service call.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
