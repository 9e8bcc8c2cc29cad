package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"studiobook/internal/entity"
)

// PostgresUserStore implements UserStore over database/sql.
type PostgresUserStore struct {
	db *sql.DB
}

// NewPostgresUserStore returns a UserStore backed by db.
func NewPostgresUserStore(db *sql.DB) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

const userColumns = `id, email, first_name, last_name, password, admin, created_at, updated_at`

func scanUser(row *sql.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Password, &u.Admin, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

func (s *PostgresUserStore) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users WHERE email = $1
	`, email)
	return scanUser(row)
}

func (s *PostgresUserStore) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = $1
	`, id)
	return scanUser(row)
}

func (s *PostgresUserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)
	`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists by email: %w", err)
	}
	return exists, nil
}

func (s *PostgresUserStore) Save(ctx context.Context, user *entity.User) (*entity.User, error) {
	saved := *user
	now := time.Now()
	if saved.ID == 0 {
		err := s.db.QueryRowContext(ctx, `
			INSERT INTO users (email, first_name, last_name, password, admin, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $6)
			RETURNING id, created_at, updated_at
		`, saved.Email, saved.FirstName, saved.LastName, saved.Password, saved.Admin, now).
			Scan(&saved.ID, &saved.CreatedAt, &saved.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("insert user: %w", err)
		}
		return &saved, nil
	}

	err := s.db.QueryRowContext(ctx, `
		UPDATE users
		SET email = $2, first_name = $3, last_name = $4, password = $5, admin = $6, updated_at = $7
		WHERE id = $1
		RETURNING updated_at
	`, saved.ID, saved.Email, saved.FirstName, saved.LastName, saved.Password, saved.Admin, now).
		Scan(&saved.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return &saved, nil
}

func (s *PostgresUserStore) DeleteByID(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// PostgresTeacherStore implements TeacherStore over database/sql.
type PostgresTeacherStore struct {
	db *sql.DB
}

// NewPostgresTeacherStore returns a TeacherStore backed by db.
func NewPostgresTeacherStore(db *sql.DB) *PostgresTeacherStore {
	return &PostgresTeacherStore{db: db}
}

func (s *PostgresTeacherStore) FindByID(ctx context.Context, id int64) (*entity.Teacher, error) {
	var t entity.Teacher
	err := s.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, created_at, updated_at FROM teachers WHERE id = $1
	`, id).Scan(&t.ID, &t.FirstName, &t.LastName, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find teacher: %w", err)
	}
	return &t, nil
}

func (s *PostgresTeacherStore) FindAll(ctx context.Context) ([]entity.Teacher, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, first_name, last_name, created_at, updated_at FROM teachers ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	defer rows.Close()

	teachers := []entity.Teacher{}
	for rows.Next() {
		var t entity.Teacher
		if err := rows.Scan(&t.ID, &t.FirstName, &t.LastName, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan teacher: %w", err)
		}
		teachers = append(teachers, t)
	}
	return teachers, rows.Err()
}

// PostgresSessionStore implements SessionStore over database/sql. The roster
// lives in session_participants, one row per participant, ordered by the
// position column.
type PostgresSessionStore struct {
	db *sql.DB
}

// NewPostgresSessionStore returns a SessionStore backed by db.
func NewPostgresSessionStore(db *sql.DB) *PostgresSessionStore {
	return &PostgresSessionStore{db: db}
}

func (s *PostgresSessionStore) FindByID(ctx context.Context, id int64) (*entity.Session, error) {
	var sess entity.Session
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, date, teacher_id, created_at, updated_at
		FROM sessions WHERE id = $1
	`, id).Scan(&sess.ID, &sess.Name, &sess.Description, &sess.Date, &sess.TeacherID, &sess.CreatedAt, &sess.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}

	sess.Users, err = s.participants(ctx, id)
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *PostgresSessionStore) participants(ctx context.Context, sessionID int64) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id FROM session_participants WHERE session_id = $1 ORDER BY position
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	defer rows.Close()

	users := []int64{}
	for rows.Next() {
		var userID int64
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		users = append(users, userID)
	}
	return users, rows.Err()
}

func (s *PostgresSessionStore) FindAll(ctx context.Context) ([]entity.Session, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, date, teacher_id, created_at, updated_at
		FROM sessions ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	sessions := []entity.Session{}
	index := map[int64]int{}
	for rows.Next() {
		var sess entity.Session
		if err := rows.Scan(&sess.ID, &sess.Name, &sess.Description, &sess.Date, &sess.TeacherID, &sess.CreatedAt, &sess.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sess.Users = []int64{}
		index[sess.ID] = len(sessions)
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	prows, err := s.db.QueryContext(ctx, `
		SELECT session_id, user_id FROM session_participants ORDER BY session_id, position
	`)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	defer prows.Close()

	for prows.Next() {
		var sessionID, userID int64
		if err := prows.Scan(&sessionID, &userID); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		if i, ok := index[sessionID]; ok {
			sessions[i].Users = append(sessions[i].Users, userID)
		}
	}
	return sessions, prows.Err()
}

// Save upserts the session row and rewrites its roster in one transaction.
// The roster rewrite makes Save a full overwrite, matching the last-writer-
// wins semantics the services rely on.
func (s *PostgresSessionStore) Save(ctx context.Context, session *entity.Session) (*entity.Session, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin session save: %w", err)
	}
	defer tx.Rollback()

	saved := *session
	now := time.Now()
	if saved.ID == 0 {
		err = tx.QueryRowContext(ctx, `
			INSERT INTO sessions (name, description, date, teacher_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $5)
			RETURNING id, created_at, updated_at
		`, saved.Name, saved.Description, saved.Date, saved.TeacherID, now).
			Scan(&saved.ID, &saved.CreatedAt, &saved.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("insert session: %w", err)
		}
	} else {
		err = tx.QueryRowContext(ctx, `
			UPDATE sessions
			SET name = $2, description = $3, date = $4, teacher_id = $5, updated_at = $6
			WHERE id = $1
			RETURNING updated_at
		`, saved.ID, saved.Name, saved.Description, saved.Date, saved.TeacherID, now).
			Scan(&saved.UpdatedAt)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("update session: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM session_participants WHERE session_id = $1
	`, saved.ID); err != nil {
		return nil, fmt.Errorf("clear participants: %w", err)
	}
	for position, userID := range saved.Users {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO session_participants (session_id, user_id, position)
			VALUES ($1, $2, $3)
		`, saved.ID, userID, position); err != nil {
			return nil, fmt.Errorf("insert participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit session save: %w", err)
	}
	return &saved, nil
}

func (s *PostgresSessionStore) DeleteByID(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
