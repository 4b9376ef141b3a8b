package dto

import (
	"time"

	"eduforge/backend/models"
)

const defaultLessonOrder = 1

type CourseInput struct {
	Title          string  `json:"title" form:"title" validate:"required,max=200"`
	Description    *string `json:"description" form:"description"`
	InstructorName string  `json:"instructor_name" form:"instructor_name" validate:"required,max=100"`
}

func CourseInputFrom(m models.Course) CourseInput {
	return CourseInput{Title: m.Title, Description: m.Description, InstructorName: m.InstructorName}
}

func (in *CourseInput) Clean() {
	in.Description = nilIfBlank(in.Description)
}

func (in CourseInput) Apply(m *models.Course) {
	m.Title = in.Title
	m.Description = in.Description
	m.InstructorName = in.InstructorName
}

type CourseResponse struct {
	ID             uint                   `json:"id"`
	Lessons        []LessonResponse       `json:"lessons"`
	Projects       []ProjectResponse      `json:"projects"`
	Quizzes        []QuizResponse         `json:"quizzes"`
	Announcements  []AnnouncementResponse `json:"announcements"`
	Title          string                 `json:"title"`
	Description    *string                `json:"description"`
	InstructorName string                 `json:"instructor_name"`
	CreatedAt      time.Time              `json:"created_at"`
}

// NewCourseResponse expects lessons (with comments and attachments),
// projects, quizzes (with questions and choices) and announcements to be
// preloaded.
func NewCourseResponse(m models.Course, url URLFunc) CourseResponse {
	r := CourseResponse{
		ID:             m.ID,
		Lessons:        make([]LessonResponse, 0, len(m.Lessons)),
		Projects:       make([]ProjectResponse, 0, len(m.Projects)),
		Quizzes:        make([]QuizResponse, 0, len(m.Quizzes)),
		Announcements:  make([]AnnouncementResponse, 0, len(m.Announcements)),
		Title:          m.Title,
		Description:    m.Description,
		InstructorName: m.InstructorName,
		CreatedAt:      m.CreatedAt,
	}
	for _, l := range m.Lessons {
		r.Lessons = append(r.Lessons, NewLessonResponse(l, url))
	}
	for _, p := range m.Projects {
		r.Projects = append(r.Projects, NewProjectResponse(p))
	}
	for _, q := range m.Quizzes {
		r.Quizzes = append(r.Quizzes, NewQuizResponse(q))
	}
	for _, a := range m.Announcements {
		r.Announcements = append(r.Announcements, NewAnnouncementResponse(a))
	}
	return r
}

type LessonInput struct {
	Course      uint    `json:"course" form:"course" validate:"required"`
	Title       string  `json:"title" form:"title" validate:"required,max=200"`
	ContentText *string `json:"content_text" form:"content_text"`
	VideoURL    *string `json:"video_url" form:"video_url" validate:"omitempty,url,max=200"`
	Order       *int    `json:"order" form:"order"`
}

func LessonInputFrom(m models.Lesson) LessonInput {
	return LessonInput{
		Course:      m.CourseID,
		Title:       m.Title,
		ContentText: m.ContentText,
		VideoURL:    m.VideoURL,
		Order:       intPtr(m.Order),
	}
}

func (in *LessonInput) Clean() {
	in.ContentText = nilIfBlank(in.ContentText)
	in.VideoURL = nilIfBlank(in.VideoURL)
}

func (in LessonInput) Apply(m *models.Lesson) {
	m.CourseID = in.Course
	m.Title = in.Title
	m.ContentText = in.ContentText
	m.VideoURL = in.VideoURL
	m.Order = defaultLessonOrder
	if in.Order != nil {
		m.Order = *in.Order
	}
}

type LessonResponse struct {
	ID          uint                 `json:"id"`
	Comments    []CommentResponse    `json:"comments"`
	Attachments []AttachmentResponse `json:"attachments"`
	Course      uint                 `json:"course"`
	Title       string               `json:"title"`
	ContentText *string              `json:"content_text"`
	VideoURL    *string              `json:"video_url"`
	Order       int                  `json:"order"`
}

// NewLessonResponse expects Comments.User and Attachments to be preloaded.
func NewLessonResponse(m models.Lesson, url URLFunc) LessonResponse {
	r := LessonResponse{
		ID:          m.ID,
		Comments:    make([]CommentResponse, 0, len(m.Comments)),
		Attachments: make([]AttachmentResponse, 0, len(m.Attachments)),
		Course:      m.CourseID,
		Title:       m.Title,
		ContentText: m.ContentText,
		VideoURL:    m.VideoURL,
		Order:       m.Order,
	}
	for _, c := range m.Comments {
		r.Comments = append(r.Comments, NewCommentResponse(c))
	}
	for _, a := range m.Attachments {
		r.Attachments = append(r.Attachments, NewAttachmentResponse(a, url))
	}
	return r
}

// AttachmentInput covers the form fields; the file part is read separately.
type AttachmentInput struct {
	Lesson      uint   `json:"lesson" form:"lesson" validate:"required"`
	DisplayName string `json:"display_name" form:"display_name" validate:"max=255"`
}

func AttachmentInputFrom(m models.LessonAttachment) AttachmentInput {
	return AttachmentInput{Lesson: m.LessonID, DisplayName: m.DisplayName}
}

func (in AttachmentInput) Apply(m *models.LessonAttachment) {
	m.LessonID = in.Lesson
	m.DisplayName = in.DisplayName
}

type AttachmentResponse struct {
	ID          uint      `json:"id"`
	Lesson      uint      `json:"lesson"`
	DisplayName string    `json:"display_name"`
	File        *string   `json:"file"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

func NewAttachmentResponse(m models.LessonAttachment, url URLFunc) AttachmentResponse {
	return AttachmentResponse{
		ID:          m.ID,
		Lesson:      m.LessonID,
		DisplayName: m.DisplayName,
		File:        fileURL(m.File, url),
		UploadedAt:  m.UploadedAt,
	}
}

type AnnouncementInput struct {
	Course  uint   `json:"course" form:"course" validate:"required"`
	Title   string `json:"title" form:"title" validate:"required,max=200"`
	Content string `json:"content" form:"content" validate:"required"`
}

func AnnouncementInputFrom(m models.Announcement) AnnouncementInput {
	return AnnouncementInput{Course: m.CourseID, Title: m.Title, Content: m.Content}
}

func (in AnnouncementInput) Apply(m *models.Announcement) {
	m.CourseID = in.Course
	m.Title = in.Title
	m.Content = in.Content
}

type AnnouncementResponse struct {
	ID       uint      `json:"id"`
	Course   uint      `json:"course"`
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	PostedAt time.Time `json:"posted_at"`
}

func NewAnnouncementResponse(m models.Announcement) AnnouncementResponse {
	return AnnouncementResponse{
		ID:       m.ID,
		Course:   m.CourseID,
		Title:    m.Title,
		Content:  m.Content,
		PostedAt: m.PostedAt,
	}
}
