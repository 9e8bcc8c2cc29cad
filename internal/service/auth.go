package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"studiobook/internal/entity"
	"studiobook/internal/password"
	"studiobook/internal/rate"
	"studiobook/internal/store"
	"studiobook/internal/token"
)

// Auth handles registration and login. It owns credential verification and
// token issuance; request authentication lives in the middleware package.
type Auth struct {
	users   store.UserStore
	hasher  *password.Hasher
	codec   *token.Codec
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewAuth wires an Auth service. limiter may be nil, which disables login
// throttling.
func NewAuth(users store.UserStore, hasher *password.Hasher, codec *token.Codec, limiter *rate.Limiter, logger *slog.Logger) *Auth {
	return &Auth{users: users, hasher: hasher, codec: codec, limiter: limiter, logger: logger}
}

// RegisterInput is the payload for Register.
type RegisterInput struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// Register hashes the password and persists a new non-admin account.
// A duplicate email yields ErrEmailTaken.
func (a *Auth) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	exists, err := a.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := a.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := a.users.Save(ctx, &entity.User{
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Password:  hash,
		Admin:     false,
	})
	if err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return user, nil
}

// LoginResult carries the authenticated user and the issued bearer token.
type LoginResult struct {
	User  *entity.User
	Token string
}

// Login verifies the credentials and issues a token. Unknown email and wrong
// password both surface as ErrInvalidCredentials; failed attempts count
// against the rate limiter and a successful login clears it.
func (a *Auth) Login(ctx context.Context, email, plaintext string) (*LoginResult, error) {
	if err := a.limiter.Allow(ctx, email); err != nil {
		if errors.Is(err, rate.ErrRateLimited) {
			return nil, ErrLoginRateLimited
		}
		return nil, fmt.Errorf("rate check: %w", err)
	}

	user, err := a.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			a.recordFailure(ctx, email)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	ok, err := a.hasher.Verify(plaintext, user.Password)
	if err != nil {
		// An unparseable stored hash means corrupt data, not a wrong
		// password; still reported as invalid credentials to the caller.
		a.logger.Error("stored password hash unreadable", "user_id", user.ID, "err", err)
		return nil, ErrInvalidCredentials
	}
	if !ok {
		a.recordFailure(ctx, email)
		return nil, ErrInvalidCredentials
	}

	if err := a.limiter.Reset(ctx, email); err != nil {
		a.logger.Warn("rate limiter reset failed", "err", err)
	}

	tok, err := a.codec.Issue(user.Email, time.Now())
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &LoginResult{User: user, Token: tok}, nil
}

func (a *Auth) recordFailure(ctx context.Context, email string) {
	if err := a.limiter.RecordFailure(ctx, email); err != nil {
		a.logger.Warn("rate limiter record failed", "err", err)
	}
}
