// Package service implements the application logic between the HTTP layer
// and the stores: authentication, the session roster state machine, and the
// remaining CRUD operations.
package service

import "errors"

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password so a caller cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrLoginRateLimited is returned when the failed-login budget for an
	// identifier is spent.
	ErrLoginRateLimited = errors.New("login rate limited")
	// ErrEmailTaken is returned when registering an email that already has
	// an account.
	ErrEmailTaken = errors.New("email already taken")
	// ErrNotFound is returned when a referenced user, teacher, or session
	// does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyParticipating is returned when a user joins a session they
	// are already on.
	ErrAlreadyParticipating = errors.New("already participating")
	// ErrNotParticipating is returned when a user leaves a session they
	// never joined.
	ErrNotParticipating = errors.New("not participating")
)
