package service

import (
	"context"
	"errors"
	"fmt"

	"studiobook/internal/entity"
	"studiobook/internal/store"
)

// Sessions owns the roster state machine (join/leave) plus the session CRUD
// passthroughs.
//
// Participate and NoLongerParticipate are read-modify-write over the stored
// roster with no per-session serialization: two concurrent mutations of the
// same session resolve last-writer-wins.
type Sessions struct {
	sessions store.SessionStore
	users    store.UserStore
}

// NewSessions wires a Sessions service.
func NewSessions(sessions store.SessionStore, users store.UserStore) *Sessions {
	return &Sessions{sessions: sessions, users: users}
}

// Create persists a new session. Repeated roster entries are dropped so a
// user appears at most once.
func (s *Sessions) Create(ctx context.Context, session *entity.Session) (*entity.Session, error) {
	session.ID = 0
	session.Users = dedupeRoster(session.Users)
	saved, err := s.sessions.Save(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return saved, nil
}

// Update overwrites the session with the given id using the incoming value.
// The id is assigned onto the incoming session before saving; this is a full
// overwrite, not a merge. Repeated roster entries are dropped so a user
// appears at most once.
func (s *Sessions) Update(ctx context.Context, id int64, session *entity.Session) (*entity.Session, error) {
	session.ID = id
	session.Users = dedupeRoster(session.Users)
	saved, err := s.sessions.Save(ctx, session)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("save session: %w", err)
	}
	return saved, nil
}

// GetByID returns the session or ErrNotFound.
func (s *Sessions) GetByID(ctx context.Context, id int64) (*entity.Session, error) {
	session, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	return session, nil
}

// Delete removes the session or reports ErrNotFound.
func (s *Sessions) Delete(ctx context.Context, id int64) error {
	if err := s.sessions.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// FindAll lists every session.
func (s *Sessions) FindAll(ctx context.Context) ([]entity.Session, error) {
	sessions, err := s.sessions.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

// dedupeRoster drops repeated user ids, keeping first-occurrence order.
func dedupeRoster(users []int64) []int64 {
	if len(users) < 2 {
		return users
	}
	seen := make(map[int64]struct{}, len(users))
	deduped := make([]int64, 0, len(users))
	for _, id := range users {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		deduped = append(deduped, id)
	}
	return deduped
}

// Participate adds userID to the session roster. It fails with ErrNotFound
// when either the session or the user does not exist, and with
// ErrAlreadyParticipating when the user is already on the roster. On success
// the roster gains the user at the end and the session is saved exactly once.
func (s *Sessions) Participate(ctx context.Context, sessionID, userID int64) error {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("find session: %w", err)
	}

	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if session.HasParticipant(userID) {
		return ErrAlreadyParticipating
	}

	session.Users = append(session.Users, userID)
	if _, err := s.sessions.Save(ctx, session); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// NoLongerParticipate removes userID from the session roster. It fails with
// ErrNotFound when the session does not exist and with ErrNotParticipating
// when the user is not on the roster.
func (s *Sessions) NoLongerParticipate(ctx context.Context, sessionID, userID int64) error {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("find session: %w", err)
	}

	if !session.HasParticipant(userID) {
		return ErrNotParticipating
	}

	users := make([]int64, 0, len(session.Users)-1)
	for _, id := range session.Users {
		if id != userID {
			users = append(users, id)
		}
	}
	session.Users = users

	if _, err := s.sessions.Save(ctx, session); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
