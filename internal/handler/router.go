package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"studiobook/internal/middleware"
	"studiobook/internal/service"
	"studiobook/internal/store"
	"studiobook/internal/token"
)

// Deps bundles everything the router needs.
type Deps struct {
	Auth     *service.Auth
	Sessions *service.Sessions
	Teachers *service.Teachers
	Users    *service.Users

	Codec     *token.Codec
	UserStore store.UserStore
	Logger    *slog.Logger
}

// NewRouter builds the full API route tree. The authenticator runs on every
// request and never rejects; everything outside /api/auth additionally
// requires an established identity.
func NewRouter(deps Deps) http.Handler {
	authHandler := NewAuthHandler(deps.Auth, deps.Logger)
	sessionHandler := NewSessionHandler(deps.Sessions, deps.Logger)
	teacherHandler := NewTeacherHandler(deps.Teachers, deps.Logger)
	userHandler := NewUserHandler(deps.Users, deps.Logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.Authenticate(deps.Codec, deps.UserStore, deps.Logger))

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser)

			r.Route("/session", func(r chi.Router) {
				r.Get("/", sessionHandler.FindAll)
				r.Post("/", sessionHandler.Create)
				r.Get("/{id}", sessionHandler.FindByID)
				r.Put("/{id}", sessionHandler.Update)
				r.Delete("/{id}", sessionHandler.Delete)
				r.Post("/{id}/participate/{userId}", sessionHandler.Participate)
				r.Delete("/{id}/participate/{userId}", sessionHandler.NoLongerParticipate)
			})

			r.Route("/teacher", func(r chi.Router) {
				r.Get("/", teacherHandler.FindAll)
				r.Get("/{id}", teacherHandler.FindByID)
			})

			r.Route("/user", func(r chi.Router) {
				r.Get("/{id}", userHandler.FindByID)
				r.Delete("/{id}", userHandler.Delete)
			})
		})
	})

	return r
}
