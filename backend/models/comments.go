package models

import "time"

type Comment struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;index"`
	User      User   `gorm:"constraint:OnDelete:CASCADE"`
	LessonID  *uint  `gorm:"index"`
	Text      string `gorm:"not null"`
	CreatedAt time.Time
}

type Notification struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;index"`
	User      User   `gorm:"constraint:OnDelete:CASCADE"`
	Title     string `gorm:"size:100;not null"`
	Message   string `gorm:"not null"`
	IsRead    bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
}

const (
	DeviceExpo = "expo"
	DeviceFCM  = "fcm"
	DeviceAPNS = "apns"
)

type Device struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     *uint  `gorm:"index"`
	User       *User  `gorm:"constraint:OnDelete:CASCADE"`
	DeviceType string `gorm:"size:20;not null"`
	Token      string `gorm:"size:255;uniqueIndex;not null"`
	CreatedAt  time.Time
}

// All lists every table in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&AuthToken{},
		&Course{},
		&Lesson{},
		&LessonAttachment{},
		&Project{},
		&Submission{},
		&Quiz{},
		&Question{},
		&Choice{},
		&Announcement{},
		&Enrollment{},
		&EnrollmentLesson{},
		&Comment{},
		&Notification{},
		&Device{},
	}
}
