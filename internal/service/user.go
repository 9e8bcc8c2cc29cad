package service

import (
	"context"
	"errors"
	"fmt"

	"studiobook/internal/entity"
	"studiobook/internal/store"
)

// Users exposes account lookup and deletion. Ownership checks (a user may
// only delete their own account) live in the handler, next to the resolved
// request identity.
type Users struct {
	users store.UserStore
}

// NewUsers wires a Users service.
func NewUsers(users store.UserStore) *Users {
	return &Users{users: users}
}

// GetByID returns the user or ErrNotFound.
func (u *Users) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// Delete removes the user or reports ErrNotFound.
func (u *Users) Delete(ctx context.Context, id int64) error {
	if err := u.users.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
