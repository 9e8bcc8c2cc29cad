// Package store defines the persistence contracts consumed by the services
// and provides the postgres and in-memory implementations.
package store

import (
	"context"
	"errors"

	"studiobook/internal/entity"
)

// ErrNotFound is returned by every lookup whose target row does not exist.
var ErrNotFound = errors.New("record not found")

// UserStore persists accounts. Save inserts when the id is zero and updates
// the existing row otherwise; updating an unknown id reports ErrNotFound.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id int64) (*entity.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Save(ctx context.Context, user *entity.User) (*entity.User, error)
	DeleteByID(ctx context.Context, id int64) error
}

// TeacherStore reads teacher reference data.
type TeacherStore interface {
	FindByID(ctx context.Context, id int64) (*entity.Teacher, error)
	FindAll(ctx context.Context) ([]entity.Teacher, error)
}

// SessionStore persists sessions including their participant roster. Save
// follows the same insert-or-update contract as UserStore.Save.
type SessionStore interface {
	FindByID(ctx context.Context, id int64) (*entity.Session, error)
	FindAll(ctx context.Context) ([]entity.Session, error)
	Save(ctx context.Context, session *entity.Session) (*entity.Session, error)
	DeleteByID(ctx context.Context, id int64) error
}
