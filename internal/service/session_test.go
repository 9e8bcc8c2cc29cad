package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"studiobook/internal/entity"
	"studiobook/internal/store"
)

func newSessionFixture(t *testing.T) (*Sessions, *store.MemorySessionStore, *store.MemoryUserStore) {
	t.Helper()
	sessions := store.NewMemorySessionStore()
	users := store.NewMemoryUserStore()
	return NewSessions(sessions, users), sessions, users
}

func seedUser(t *testing.T, users *store.MemoryUserStore, email string) *entity.User {
	t.Helper()
	user, err := users.Save(context.Background(), &entity.User{
		Email:     email,
		FirstName: "Test",
		LastName:  "User",
		Password:  "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedSession(t *testing.T, sessions *store.MemorySessionStore, users ...int64) *entity.Session {
	t.Helper()
	session, err := sessions.Save(context.Background(), &entity.Session{
		Name:        "Morning Flow",
		Description: "Sixty minutes",
		Date:        time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
		Users:       users,
	})
	if err != nil {
		t.Fatalf("seed session: %v", err)
	}
	return session
}

func TestParticipateAddsUser(t *testing.T) {
	svc, sessions, users := newSessionFixture(t)
	ctx := context.Background()

	user := seedUser(t, users, "alice@example.com")
	session := seedSession(t, sessions)

	if err := svc.Participate(ctx, session.ID, user.ID); err != nil {
		t.Fatalf("Participate error: %v", err)
	}

	updated, err := sessions.FindByID(ctx, session.ID)
	if err != nil {
		t.Fatalf("FindByID error: %v", err)
	}
	if diff := cmp.Diff([]int64{user.ID}, updated.Users); diff != "" {
		t.Fatalf("roster mismatch (-want +got):\n%s", diff)
	}
}

func TestParticipateSessionNotFound(t *testing.T) {
	svc, _, users := newSessionFixture(t)
	user := seedUser(t, users, "alice@example.com")

	if err := svc.Participate(context.Background(), 42, user.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestParticipateUserNotFound(t *testing.T) {
	svc, sessions, _ := newSessionFixture(t)
	session := seedSession(t, sessions)

	if err := svc.Participate(context.Background(), session.ID, 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestParticipateAlreadyParticipating(t *testing.T) {
	svc, sessions, users := newSessionFixture(t)
	ctx := context.Background()

	user := seedUser(t, users, "alice@example.com")
	session := seedSession(t, sessions)

	if err := svc.Participate(ctx, session.ID, user.ID); err != nil {
		t.Fatalf("first Participate error: %v", err)
	}
	if err := svc.Participate(ctx, session.ID, user.ID); !errors.Is(err, ErrAlreadyParticipating) {
		t.Fatalf("second Participate: got %v, want ErrAlreadyParticipating", err)
	}

	// The duplicate attempt must not have grown the roster.
	updated, err := sessions.FindByID(ctx, session.ID)
	if err != nil {
		t.Fatalf("FindByID error: %v", err)
	}
	if len(updated.Users) != 1 {
		t.Fatalf("roster length: got %d, want 1", len(updated.Users))
	}
}

func TestNoLongerParticipateRemovesUser(t *testing.T) {
	svc, sessions, users := newSessionFixture(t)
	ctx := context.Background()

	user := seedUser(t, users, "alice@example.com")
	other := seedUser(t, users, "bob@example.com")
	session := seedSession(t, sessions, user.ID, other.ID)

	if err := svc.NoLongerParticipate(ctx, session.ID, user.ID); err != nil {
		t.Fatalf("NoLongerParticipate error: %v", err)
	}

	updated, err := sessions.FindByID(ctx, session.ID)
	if err != nil {
		t.Fatalf("FindByID error: %v", err)
	}
	if diff := cmp.Diff([]int64{other.ID}, updated.Users); diff != "" {
		t.Fatalf("roster mismatch (-want +got):\n%s", diff)
	}
}

func TestNoLongerParticipateSessionNotFound(t *testing.T) {
	svc, _, _ := newSessionFixture(t)

	if err := svc.NoLongerParticipate(context.Background(), 42, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestNoLongerParticipateNotParticipating(t *testing.T) {
	svc, sessions, users := newSessionFixture(t)

	user := seedUser(t, users, "alice@example.com")
	session := seedSession(t, sessions)

	err := svc.NoLongerParticipate(context.Background(), session.ID, user.ID)
	if !errors.Is(err, ErrNotParticipating) {
		t.Fatalf("got %v, want ErrNotParticipating", err)
	}
}

func TestJoinThenLeaveRestoresRoster(t *testing.T) {
	svc, sessions, users := newSessionFixture(t)
	ctx := context.Background()

	first := seedUser(t, users, "first@example.com")
	second := seedUser(t, users, "second@example.com")
	joiner := seedUser(t, users, "joiner@example.com")
	session := seedSession(t, sessions, first.ID, second.ID)

	if err := svc.Participate(ctx, session.ID, joiner.ID); err != nil {
		t.Fatalf("Participate error: %v", err)
	}
	if err := svc.NoLongerParticipate(ctx, session.ID, joiner.ID); err != nil {
		t.Fatalf("NoLongerParticipate error: %v", err)
	}

	updated, err := sessions.FindByID(ctx, session.ID)
	if err != nil {
		t.Fatalf("FindByID error: %v", err)
	}
	if diff := cmp.Diff([]int64{first.ID, second.ID}, updated.Users); diff != "" {
		t.Fatalf("roster not restored (-want +got):\n%s", diff)
	}
}

func TestUpdateAssignsID(t *testing.T) {
	svc, sessions, _ := newSessionFixture(t)
	ctx := context.Background()

	session := seedSession(t, sessions)

	updated, err := svc.Update(ctx, session.ID, &entity.Session{
		Name:        "Evening Flow",
		Description: "Ninety minutes",
		Date:        session.Date,
		Users:       []int64{},
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.ID != session.ID {
		t.Fatalf("Update id: got %d, want %d", updated.ID, session.ID)
	}
	if updated.Name != "Evening Flow" {
		t.Fatalf("Update name: got %q", updated.Name)
	}
}

func TestUpdateUnknownSessionNotFound(t *testing.T) {
	svc, sessions, _ := newSessionFixture(t)
	ctx := context.Background()

	_, err := svc.Update(ctx, 99, &entity.Session{
		Name:  "Evening Flow",
		Date:  time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC),
		Users: []int64{},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update unknown id: got %v, want ErrNotFound", err)
	}

	// The failed update must not have created the row.
	if _, err := sessions.FindByID(ctx, 99); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("FindByID after failed update: got %v, want ErrNotFound", err)
	}
}

func TestUpdateDropsDuplicateRosterEntries(t *testing.T) {
	svc, sessions, users := newSessionFixture(t)
	ctx := context.Background()

	user := seedUser(t, users, "alice@example.com")
	other := seedUser(t, users, "bob@example.com")
	session := seedSession(t, sessions)

	updated, err := svc.Update(ctx, session.ID, &entity.Session{
		Name:  session.Name,
		Date:  session.Date,
		Users: []int64{user.ID, other.ID, user.ID, user.ID},
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if diff := cmp.Diff([]int64{user.ID, other.ID}, updated.Users); diff != "" {
		t.Fatalf("roster mismatch (-want +got):\n%s", diff)
	}

	stored, err := sessions.FindByID(ctx, session.ID)
	if err != nil {
		t.Fatalf("FindByID error: %v", err)
	}
	if diff := cmp.Diff([]int64{user.ID, other.ID}, stored.Users); diff != "" {
		t.Fatalf("persisted roster mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateDropsDuplicateRosterEntries(t *testing.T) {
	svc, _, users := newSessionFixture(t)
	ctx := context.Background()

	user := seedUser(t, users, "alice@example.com")

	created, err := svc.Create(ctx, &entity.Session{
		Name:  "Morning Flow",
		Date:  time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
		Users: []int64{user.ID, user.ID},
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if diff := cmp.Diff([]int64{user.ID}, created.Users); diff != "" {
		t.Fatalf("roster mismatch (-want +got):\n%s", diff)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	svc, _, _ := newSessionFixture(t)

	if _, err := svc.GetByID(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestDeleteNotFound(t *testing.T) {
	svc, _, _ := newSessionFixture(t)

	if err := svc.Delete(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestFindAll(t *testing.T) {
	svc, sessions, _ := newSessionFixture(t)

	seedSession(t, sessions)
	seedSession(t, sessions)

	all, err := svc.FindAll(context.Background())
	if err != nil {
		t.Fatalf("FindAll error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("FindAll length: got %d, want 2", len(all))
	}
}
