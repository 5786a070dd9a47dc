package models

import "time"

// Comment is a public discussion message attached to a course.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Comment   string    `gorm:"type:text;not null" json:"comment"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	CourseID  uint      `gorm:"not null;index" json:"courseId"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Feedback is a message addressed to the course's teacher.
type Feedback struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Comment   string    `gorm:"type:text;not null" json:"comment"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	CourseID  uint      `gorm:"not null;index" json:"courseId"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName keeps the plural table name for the uncountable noun.
func (Feedback) TableName() string {
	return "feedbacks"
}
