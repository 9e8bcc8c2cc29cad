package service

import (
	"context"
	"errors"
	"fmt"

	"studiobook/internal/entity"
	"studiobook/internal/store"
)

// Teachers exposes read access to teacher reference data.
type Teachers struct {
	teachers store.TeacherStore
}

// NewTeachers wires a Teachers service.
func NewTeachers(teachers store.TeacherStore) *Teachers {
	return &Teachers{teachers: teachers}
}

// GetByID returns the teacher or ErrNotFound.
func (t *Teachers) GetByID(ctx context.Context, id int64) (*entity.Teacher, error) {
	teacher, err := t.teachers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find teacher: %w", err)
	}
	return teacher, nil
}

// FindAll lists every teacher.
func (t *Teachers) FindAll(ctx context.Context) ([]entity.Teacher, error) {
	teachers, err := t.teachers.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	return teachers, nil
}
