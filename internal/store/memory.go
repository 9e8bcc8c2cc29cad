package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"studiobook/internal/entity"
)

// MemoryUserStore is a mutex-guarded in-memory UserStore. It backs the tests
// and serves as a development fallback when no database is configured.
type MemoryUserStore struct {
	mu     sync.Mutex
	users  map[int64]entity.User
	nextID int64
}

// NewMemoryUserStore returns an empty MemoryUserStore.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: map[int64]entity.User{}, nextID: 1}
}

func (m *MemoryUserStore) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryUserStore) FindByID(_ context.Context, id int64) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := u
	return &copied, nil
}

func (m *MemoryUserStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryUserStore) Save(_ context.Context, user *entity.User) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	saved := *user
	if saved.ID == 0 {
		saved.ID = m.nextID
		m.nextID++
		saved.CreatedAt = now
	} else {
		existing, ok := m.users[saved.ID]
		if !ok {
			return nil, ErrNotFound
		}
		saved.CreatedAt = existing.CreatedAt
	}
	saved.UpdatedAt = now
	m.users[saved.ID] = saved
	copied := saved
	return &copied, nil
}

func (m *MemoryUserStore) DeleteByID(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return ErrNotFound
	}
	delete(m.users, id)
	return nil
}

// MemoryTeacherStore is an in-memory TeacherStore. Teachers are reference
// data with no write API, so Put is only reachable from wiring and tests.
type MemoryTeacherStore struct {
	mu       sync.Mutex
	teachers map[int64]entity.Teacher
	nextID   int64
}

// NewMemoryTeacherStore returns an empty MemoryTeacherStore.
func NewMemoryTeacherStore() *MemoryTeacherStore {
	return &MemoryTeacherStore{teachers: map[int64]entity.Teacher{}, nextID: 1}
}

// Put seeds a teacher row, assigning an id when the row has none.
func (m *MemoryTeacherStore) Put(teacher entity.Teacher) entity.Teacher {
	m.mu.Lock()
	defer m.mu.Unlock()
	if teacher.ID == 0 {
		teacher.ID = m.nextID
		m.nextID++
	}
	m.teachers[teacher.ID] = teacher
	return teacher
}

func (m *MemoryTeacherStore) FindByID(_ context.Context, id int64) (*entity.Teacher, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.teachers[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := t
	return &copied, nil
}

func (m *MemoryTeacherStore) FindAll(_ context.Context) ([]entity.Teacher, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	teachers := make([]entity.Teacher, 0, len(m.teachers))
	for _, t := range m.teachers {
		teachers = append(teachers, t)
	}
	sort.Slice(teachers, func(i, j int) bool { return teachers[i].ID < teachers[j].ID })
	return teachers, nil
}

// MemorySessionStore is an in-memory SessionStore.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[int64]entity.Session
	nextID   int64
}

// NewMemorySessionStore returns an empty MemorySessionStore.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: map[int64]entity.Session{}, nextID: 1}
}

func (m *MemorySessionStore) FindByID(_ context.Context, id int64) (*entity.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copySession(s), nil
}

func (m *MemorySessionStore) FindAll(_ context.Context) ([]entity.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sessions := make([]entity.Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, *copySession(s))
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].ID < sessions[j].ID })
	return sessions, nil
}

func (m *MemorySessionStore) Save(_ context.Context, session *entity.Session) (*entity.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	saved := *copySession(*session)
	if saved.ID == 0 {
		saved.ID = m.nextID
		m.nextID++
		saved.CreatedAt = now
	} else {
		existing, ok := m.sessions[saved.ID]
		if !ok {
			return nil, ErrNotFound
		}
		saved.CreatedAt = existing.CreatedAt
	}
	saved.UpdatedAt = now
	m.sessions[saved.ID] = saved
	return copySession(saved), nil
}

func (m *MemorySessionStore) DeleteByID(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(m.sessions, id)
	return nil
}

// copySession detaches the roster slice and teacher pointer so callers never
// alias store-owned state.
func copySession(s entity.Session) *entity.Session {
	copied := s
	copied.Users = append([]int64(nil), s.Users...)
	if s.TeacherID != nil {
		teacherID := *s.TeacherID
		copied.TeacherID = &teacherID
	}
	return &copied
}
