package dto

import (
	"time"

	"eduforge/backend/models"
)

type EnrollmentInput struct {
	Student uint `json:"student" form:"student" validate:"required"`
	Course  uint `json:"course" form:"course" validate:"required"`
}

func EnrollmentInputFrom(m models.Enrollment) EnrollmentInput {
	return EnrollmentInput{Student: m.StudentID, Course: m.CourseID}
}

func (in EnrollmentInput) Apply(m *models.Enrollment) {
	m.StudentID = in.Student
	m.CourseID = in.Course
}

type EnrollmentResponse struct {
	ID          uint      `json:"id"`
	Student     uint      `json:"student"`
	Course      uint      `json:"course"`
	CourseTitle string    `json:"course_title"`
	Progress    int       `json:"progress"`
	EnrolledAt  time.Time `json:"enrolled_at"`
}

// NewEnrollmentResponse expects Course to be preloaded.
func NewEnrollmentResponse(m models.Enrollment, progress int) EnrollmentResponse {
	return EnrollmentResponse{
		ID:          m.ID,
		Student:     m.StudentID,
		Course:      m.CourseID,
		CourseTitle: m.Course.Title,
		Progress:    progress,
		EnrolledAt:  m.EnrolledAt,
	}
}

type MarkCompleteInput struct {
	Student uint `json:"student" form:"student" validate:"required"`
	Course  uint `json:"course" form:"course" validate:"required"`
	Lesson  uint `json:"lesson" form:"lesson" validate:"required"`
}

type MarkCompleteResponse struct {
	Status   string `json:"status"`
	Progress int    `json:"progress"`
}
