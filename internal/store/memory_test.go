package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"studiobook/internal/entity"
)

func TestMemoryUserSaveUnknownID(t *testing.T) {
	users := NewMemoryUserStore()

	_, err := users.Save(context.Background(), &entity.User{ID: 99, Email: "ghost@example.com"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Save with unknown id: got %v, want ErrNotFound", err)
	}
}

func TestMemoryUserSaveUpdatesExisting(t *testing.T) {
	users := NewMemoryUserStore()
	ctx := context.Background()

	created, err := users.Save(ctx, &entity.User{Email: "alice@example.com", FirstName: "Alice"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	created.FirstName = "Alicia"
	updated, err := users.Save(ctx, created)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != created.ID || updated.FirstName != "Alicia" {
		t.Fatalf("unexpected update result: %+v", updated)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("CreatedAt changed on update: %v != %v", updated.CreatedAt, created.CreatedAt)
	}
}

func TestMemorySessionSaveUnknownID(t *testing.T) {
	sessions := NewMemorySessionStore()

	_, err := sessions.Save(context.Background(), &entity.Session{
		ID:   99,
		Name: "Morning Flow",
		Date: time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Save with unknown id: got %v, want ErrNotFound", err)
	}
	if _, err := sessions.FindByID(context.Background(), 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("failed Save must not create the row, FindByID got %v", err)
	}
}

func TestMemorySessionSaveUpdatesExisting(t *testing.T) {
	sessions := NewMemorySessionStore()
	ctx := context.Background()

	created, err := sessions.Save(ctx, &entity.Session{
		Name: "Morning Flow",
		Date: time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	created.Name = "Evening Flow"
	updated, err := sessions.Save(ctx, created)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != created.ID || updated.Name != "Evening Flow" {
		t.Fatalf("unexpected update result: %+v", updated)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("CreatedAt changed on update: %v != %v", updated.CreatedAt, created.CreatedAt)
	}
}
