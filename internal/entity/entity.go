// Package entity holds the persistent domain records shared by the stores,
// services, and HTTP layer.
package entity

import "time"

// User is a registered account. Password holds the argon2id hash in PHC
// format; it is excluded from every outward-facing JSON payload.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Password  string    `json:"-"`
	Admin     bool      `json:"admin"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Teacher leads sessions. Teachers are reference data: created out of band,
// only read through the API.
type Teacher struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Session is a teacher-led class that users can join. Users holds the
// participant user ids in join order; a given id appears at most once.
type Session struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	TeacherID   *int64    `json:"teacher_id"`
	Users       []int64   `json:"users"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// HasParticipant reports whether userID is already on the session roster.
func (s *Session) HasParticipant(userID int64) bool {
	for _, id := range s.Users {
		if id == userID {
			return true
		}
	}
	return false
}
