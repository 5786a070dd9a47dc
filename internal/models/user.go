// Package models contains data structures for the course platform's domain models.
package models

import "time"

// Roles a user can sign up with.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

// User represents a registered account on the course platform.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Name      string    `json:"name"`
	Role      string    `gorm:"not null;default:student" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Courses   []Course  `gorm:"foreignKey:TeacherID" json:"courses,omitempty"`
}

// DisplayName returns the user's name, or "Anonymous" when none was given.
func (u *User) DisplayName() string {
	if u.Name == "" {
		return "Anonymous"
	}
	return u.Name
}

// UserSummary is the public projection of a user embedded in other resources.
type UserSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// Summary returns the public projection of u.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.DisplayName()}
}
