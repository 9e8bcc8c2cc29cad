package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"studiobook/internal/service"
)

// AuthHandler serves login and registration.
type AuthHandler struct {
	auth   *service.Auth
	logger *slog.Logger
}

// NewAuthHandler wires an AuthHandler.
func NewAuthHandler(auth *service.Auth, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

type registerRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string `json:"token"`
	Type      string `json:"type"`
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Admin     bool   `json:"admin"`
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Email == "" || req.FirstName == "" || req.LastName == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "missing required fields")
		return
	}

	_, err := h.auth.Register(r.Context(), service.RegisterInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			writeMessage(w, http.StatusBadRequest, "email is already taken")
			return
		}
		writeInternal(w, h.logger, err)
		return
	}

	writeMessage(w, http.StatusOK, "user registered successfully")
}

// Login handles POST /api/auth/login. Unknown email and wrong password
// produce the same response.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	result, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			writeMessage(w, http.StatusUnauthorized, "invalid credentials")
		case errors.Is(err, service.ErrLoginRateLimited):
			writeMessage(w, http.StatusTooManyRequests, "too many login attempts")
		default:
			writeInternal(w, h.logger, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token:     result.Token,
		Type:      "Bearer",
		ID:        result.User.ID,
		Username:  result.User.Email,
		FirstName: result.User.FirstName,
		LastName:  result.User.LastName,
		Admin:     result.User.Admin,
	})
}
