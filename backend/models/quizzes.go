package models

type Quiz struct {
	ID          uint   `gorm:"primaryKey"`
	CourseID    uint   `gorm:"not null;index"`
	Title       string `gorm:"size:200;not null"`
	Description string
	Questions   []Question `gorm:"constraint:OnDelete:CASCADE"`
}

type Question struct {
	ID      uint     `gorm:"primaryKey"`
	QuizID  uint     `gorm:"not null;index"`
	Text    string   `gorm:"size:500;not null"`
	Choices []Choice `gorm:"constraint:OnDelete:CASCADE"`
}

// Choice carries no "exactly one correct answer" rule; a question may have
// any number of correct choices.
type Choice struct {
	ID         uint   `gorm:"primaryKey"`
	QuestionID uint   `gorm:"not null;index"`
	Text       string `gorm:"size:200;not null"`
	IsCorrect  bool   `gorm:"not null;default:false"`
}
