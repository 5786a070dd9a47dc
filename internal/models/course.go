package models

import "time"

// Course is a unit of content published by a teacher.
type Course struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"not null" json:"description"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	TeacherID   uint       `gorm:"not null;index" json:"teacherId"`
	Teacher     User       `gorm:"foreignKey:TeacherID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Comments    []Comment  `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
	Feedbacks   []Feedback `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
	Likes       []Like     `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
	Ratings     []Rating   `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
}

// CourseSummary is the short form of a course embedded in engagement listings.
type CourseSummary struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

// Summary returns the short form of c.
func (c *Course) Summary() CourseSummary {
	return CourseSummary{ID: c.ID, Title: c.Title}
}
