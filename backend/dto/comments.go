package dto

import (
	"time"

	"eduforge/backend/models"
)

type CommentInput struct {
	User   uint   `json:"user" form:"user" validate:"required"`
	Lesson *uint  `json:"lesson" form:"lesson"`
	Text   string `json:"text" form:"text" validate:"required"`
}

func CommentInputFrom(m models.Comment) CommentInput {
	return CommentInput{User: m.UserID, Lesson: m.LessonID, Text: m.Text}
}

func (in CommentInput) Apply(m *models.Comment) {
	m.UserID = in.User
	m.LessonID = in.Lesson
	m.Text = in.Text
}

type CommentResponse struct {
	ID        uint      `json:"id"`
	User      uint      `json:"user"`
	Username  string    `json:"username"`
	Lesson    *uint     `json:"lesson"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCommentResponse expects User to be preloaded.
func NewCommentResponse(m models.Comment) CommentResponse {
	return CommentResponse{
		ID:        m.ID,
		User:      m.UserID,
		Username:  m.User.Username,
		Lesson:    m.LessonID,
		Text:      m.Text,
		CreatedAt: m.CreatedAt,
	}
}

type NotificationInput struct {
	User    uint   `json:"user" form:"user" validate:"required"`
	Title   string `json:"title" form:"title" validate:"required,max=100"`
	Message string `json:"message" form:"message" validate:"required"`
	IsRead  bool   `json:"is_read" form:"is_read"`
}

func NotificationInputFrom(m models.Notification) NotificationInput {
	return NotificationInput{User: m.UserID, Title: m.Title, Message: m.Message, IsRead: m.IsRead}
}

func (in NotificationInput) Apply(m *models.Notification) {
	m.UserID = in.User
	m.Title = in.Title
	m.Message = in.Message
	m.IsRead = in.IsRead
}

type NotificationResponse struct {
	ID        uint      `json:"id"`
	User      uint      `json:"user"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func NewNotificationResponse(m models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        m.ID,
		User:      m.UserID,
		Title:     m.Title,
		Message:   m.Message,
		IsRead:    m.IsRead,
		CreatedAt: m.CreatedAt,
	}
}

type DeviceInput struct {
	User       *uint  `json:"user" form:"user"`
	DeviceType string `json:"device_type" form:"device_type" validate:"omitempty,oneof=expo fcm apns"`
	Token      string `json:"token" form:"token" validate:"required,max=255"`
}

func DeviceInputFrom(m models.Device) DeviceInput {
	return DeviceInput{User: m.UserID, DeviceType: m.DeviceType, Token: m.Token}
}

func (in DeviceInput) Apply(m *models.Device) {
	m.UserID = in.User
	m.DeviceType = in.DeviceType
	if m.DeviceType == "" {
		m.DeviceType = models.DeviceExpo
	}
	m.Token = in.Token
}

type DeviceResponse struct {
	ID         uint      `json:"id"`
	User       *uint     `json:"user"`
	DeviceType string    `json:"device_type"`
	Token      string    `json:"token"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewDeviceResponse(m models.Device) DeviceResponse {
	return DeviceResponse{
		ID:         m.ID,
		User:       m.UserID,
		DeviceType: m.DeviceType,
		Token:      m.Token,
		CreatedAt:  m.CreatedAt,
	}
}
