package models

import (
	"time"

	"gorm.io/datatypes"
)

type Course struct {
	ID             uint   `gorm:"primaryKey"`
	Title          string `gorm:"size:200;not null"`
	Description    *string
	InstructorName string `gorm:"size:100;not null"`
	CreatedAt      time.Time
	Lessons        []Lesson       `gorm:"constraint:OnDelete:CASCADE"`
	Projects       []Project      `gorm:"constraint:OnDelete:CASCADE"`
	Quizzes        []Quiz         `gorm:"constraint:OnDelete:CASCADE"`
	Announcements  []Announcement `gorm:"constraint:OnDelete:CASCADE"`
}

type Lesson struct {
	ID          uint   `gorm:"primaryKey"`
	CourseID    uint   `gorm:"not null;index"`
	Title       string `gorm:"size:200;not null"`
	ContentText *string
	VideoURL    *string            `gorm:"size:200"`
	Order       int                `gorm:"not null"`
	Comments    []Comment          `gorm:"constraint:OnDelete:CASCADE"`
	Attachments []LessonAttachment `gorm:"constraint:OnDelete:CASCADE"`
}

// LessonAttachment.File holds the storage name, not the public URL.
type LessonAttachment struct {
	ID          uint      `gorm:"primaryKey"`
	LessonID    uint      `gorm:"not null;index"`
	DisplayName string    `gorm:"size:255"`
	File        string    `gorm:"size:255;not null"`
	UploadedAt  time.Time `gorm:"autoCreateTime"`
}

type Project struct {
	ID           uint   `gorm:"primaryKey"`
	CourseID     uint   `gorm:"not null;index"`
	Title        string `gorm:"size:200;not null"`
	Instructions *string
	Deadline     *datatypes.Date
	Points       int          `gorm:"not null"`
	Submissions  []Submission `gorm:"constraint:OnDelete:CASCADE"`
}

type Submission struct {
	ID            uint    `gorm:"primaryKey"`
	ProjectID     uint    `gorm:"not null;index"`
	StudentName   string  `gorm:"size:100;not null"`
	GithubLink    *string `gorm:"size:200"`
	SubmittedFile string  `gorm:"size:255"`
	Comments      string
	Grade         *int
	Feedback      string
	SubmittedAt   time.Time `gorm:"autoCreateTime"`
}

type Announcement struct {
	ID       uint      `gorm:"primaryKey"`
	CourseID uint      `gorm:"not null;index"`
	Title    string    `gorm:"size:200;not null"`
	Content  string    `gorm:"not null"`
	PostedAt time.Time `gorm:"autoCreateTime"`
}
