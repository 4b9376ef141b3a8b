package dto

import (
	"time"

	"eduforge/backend/models"
)

type RegisterInput struct {
	Username    string `json:"username" form:"username" validate:"required,max=150,username"`
	Password    string `json:"password" form:"password" validate:"required"`
	Email       string `json:"email" form:"email" validate:"omitempty,email,max=254"`
	FirstName   string `json:"first_name" form:"first_name" validate:"max=150"`
	LastName    string `json:"last_name" form:"last_name" validate:"max=150"`
	TeacherCode string `json:"teacher_code" form:"teacher_code"`
}

// User builds the account; the password is hashed separately.
func (in RegisterInput) User() models.User {
	return models.User{
		Username:  in.Username,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		IsStaff:   in.TeacherCode == models.TeacherCode,
	}
}

type LoginInput struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type ProfileInput struct {
	Email       string `json:"email" form:"email" validate:"omitempty,email,max=254"`
	FirstName   string `json:"first_name" form:"first_name" validate:"max=150"`
	LastName    string `json:"last_name" form:"last_name" validate:"max=150"`
	OldPassword string `json:"old_password" form:"old_password" validate:"required_with=NewPassword"`
	NewPassword string `json:"new_password" form:"new_password"`
}

func ProfileInputFrom(m models.User) ProfileInput {
	return ProfileInput{Email: m.Email, FirstName: m.FirstName, LastName: m.LastName}
}

func (in ProfileInput) Apply(m *models.User) {
	m.Email = in.Email
	m.FirstName = in.FirstName
	m.LastName = in.LastName
}

type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsStaff  bool   `json:"is_staff"`
}

func NewUserResponse(m models.User) UserResponse {
	return UserResponse{ID: m.ID, Username: m.Username, Email: m.Email, IsStaff: m.IsStaff}
}

// ProfileResponse is the caller's own account, with names.
type ProfileResponse struct {
	UserResponse
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}

func NewProfileResponse(m models.User) ProfileResponse {
	return ProfileResponse{
		UserResponse: NewUserResponse(m),
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		CreatedAt:    m.CreatedAt,
	}
}

type AuthResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
	Token   string       `json:"token"`
}
