package models

import "time"

type Enrollment struct {
	ID         uint      `gorm:"primaryKey"`
	StudentID  uint      `gorm:"not null;uniqueIndex:idx_enrollment_student_course"`
	CourseID   uint      `gorm:"not null;uniqueIndex:idx_enrollment_student_course"`
	Student    User      `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	Course     Course    `gorm:"constraint:OnDelete:CASCADE"`
	EnrolledAt time.Time `gorm:"autoCreateTime"`
}

// EnrollmentLesson records one completed lesson of an enrollment.
type EnrollmentLesson struct {
	EnrollmentID uint       `gorm:"primaryKey;autoIncrement:false"`
	LessonID     uint       `gorm:"primaryKey;autoIncrement:false;index"`
	Enrollment   Enrollment `gorm:"constraint:OnDelete:CASCADE"`
	Lesson       Lesson     `gorm:"constraint:OnDelete:CASCADE"`
	CompletedAt  time.Time  `gorm:"autoCreateTime"`
}

// ProgressPercent returns floor(100 * completed / total), or 0 for a course
// without lessons.
func ProgressPercent(completed, total int64) int {
	if total <= 0 || completed <= 0 {
		return 0
	}
	if completed > total {
		completed = total
	}
	return int(completed * 100 / total)
}
