// Package middleware holds the HTTP middleware chain: request
// authentication, the authenticated-identity guard, and request logging.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"studiobook/internal/entity"
	"studiobook/internal/store"
	"studiobook/internal/token"
)

type userContextKey struct{}

// UserFromContext returns the identity established by Authenticate, if any.
func UserFromContext(ctx context.Context) (*entity.User, bool) {
	user, ok := ctx.Value(userContextKey{}).(*entity.User)
	return user, ok
}

// Authenticate extracts and validates the bearer token and, on success,
// stores the resolved user in the request context. Every failure mode —
// missing header, wrong prefix, bad token, unresolvable subject — is
// swallowed: the request continues anonymously and never gains a wrong
// identity. Rejection of anonymous requests is RequireUser's job.
func Authenticate(codec *token.Codec, users store.UserStore, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			subject, err := codec.Verify(tok)
			if err != nil {
				logger.Debug("bearer token rejected", "err", err)
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.FindByEmail(r.Context(), subject)
			if err != nil {
				logger.Debug("token subject not resolvable", "subject", subject, "err", err)
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser rejects requests that carry no authenticated identity.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFromContext(r.Context()); !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"unauthorized"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	tok := value[len(bearer):]
	if tok == "" {
		return "", false
	}

	return tok, true
}
