package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// TeacherCode grants staff privileges when supplied at registration.
const TeacherCode = "TEACHER2025"

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"size:150;uniqueIndex;not null"`
	Email        string `gorm:"size:254"`
	FirstName    string `gorm:"size:150"`
	LastName     string `gorm:"size:150"`
	PasswordHash string `gorm:"not null"`
	IsStaff      bool   `gorm:"not null;default:false"`
	CreatedAt    time.Time
}

// SetPassword stores a bcrypt hash of password.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// AuthToken is the single bearer token issued to a user. It is created on
// first register/login and returned unchanged afterwards.
type AuthToken struct {
	Key       string `gorm:"primaryKey;size:512"`
	UserID    uint   `gorm:"uniqueIndex;not null"`
	User      User   `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}
