package dto

import (
	"time"

	"eduforge/backend/models"

	"gorm.io/datatypes"
)

const (
	dateLayout    = "2006-01-02"
	defaultPoints = 100
)

type ProjectInput struct {
	Course       uint    `json:"course" form:"course" validate:"required"`
	Title        string  `json:"title" form:"title" validate:"required,max=200"`
	Instructions *string `json:"instructions" form:"instructions"`
	Deadline     *string `json:"deadline" form:"deadline" validate:"omitempty,datetime=2006-01-02"`
	Points       *int    `json:"points" form:"points"`
}

func ProjectInputFrom(m models.Project) ProjectInput {
	return ProjectInput{
		Course:       m.CourseID,
		Title:        m.Title,
		Instructions: m.Instructions,
		Deadline:     formatDate(m.Deadline),
		Points:       intPtr(m.Points),
	}
}

func (in *ProjectInput) Clean() {
	in.Instructions = nilIfBlank(in.Instructions)
	in.Deadline = nilIfBlank(in.Deadline)
}

// Apply assumes the input passed validation, so Deadline parses.
func (in ProjectInput) Apply(m *models.Project) {
	m.CourseID = in.Course
	m.Title = in.Title
	m.Instructions = in.Instructions
	m.Deadline = nil
	if in.Deadline != nil {
		if t, err := time.Parse(dateLayout, *in.Deadline); err == nil {
			d := datatypes.Date(t)
			m.Deadline = &d
		}
	}
	m.Points = defaultPoints
	if in.Points != nil {
		m.Points = *in.Points
	}
}

type ProjectResponse struct {
	ID           uint    `json:"id"`
	Course       uint    `json:"course"`
	Title        string  `json:"title"`
	Instructions *string `json:"instructions"`
	Deadline     *string `json:"deadline"`
	Points       int     `json:"points"`
}

func NewProjectResponse(m models.Project) ProjectResponse {
	return ProjectResponse{
		ID:           m.ID,
		Course:       m.CourseID,
		Title:        m.Title,
		Instructions: m.Instructions,
		Deadline:     formatDate(m.Deadline),
		Points:       m.Points,
	}
}

func formatDate(d *datatypes.Date) *string {
	if d == nil {
		return nil
	}
	return strPtr(time.Time(*d).Format(dateLayout))
}

// SubmissionInput covers the form fields; submitted_file is read separately.
type SubmissionInput struct {
	Project     uint    `json:"project" form:"project" validate:"required"`
	StudentName string  `json:"student_name" form:"student_name" validate:"required,max=100"`
	GithubLink  *string `json:"github_link" form:"github_link" validate:"omitempty,url,max=200"`
	Comments    string  `json:"comments" form:"comments"`
	Grade       *int    `json:"grade" form:"grade"`
	Feedback    string  `json:"feedback" form:"feedback"`
}

func SubmissionInputFrom(m models.Submission) SubmissionInput {
	return SubmissionInput{
		Project:     m.ProjectID,
		StudentName: m.StudentName,
		GithubLink:  m.GithubLink,
		Comments:    m.Comments,
		Grade:       m.Grade,
		Feedback:    m.Feedback,
	}
}

func (in *SubmissionInput) Clean() {
	in.GithubLink = nilIfBlank(in.GithubLink)
}

func (in SubmissionInput) Apply(m *models.Submission) {
	m.ProjectID = in.Project
	m.StudentName = in.StudentName
	m.GithubLink = in.GithubLink
	m.Comments = in.Comments
	m.Grade = in.Grade
	m.Feedback = in.Feedback
}

type SubmissionResponse struct {
	ID            uint      `json:"id"`
	Project       uint      `json:"project"`
	StudentName   string    `json:"student_name"`
	GithubLink    *string   `json:"github_link"`
	SubmittedFile *string   `json:"submitted_file"`
	Comments      string    `json:"comments"`
	Grade         *int      `json:"grade"`
	Feedback      string    `json:"feedback"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

func NewSubmissionResponse(m models.Submission, url URLFunc) SubmissionResponse {
	return SubmissionResponse{
		ID:            m.ID,
		Project:       m.ProjectID,
		StudentName:   m.StudentName,
		GithubLink:    m.GithubLink,
		SubmittedFile: fileURL(m.SubmittedFile, url),
		Comments:      m.Comments,
		Grade:         m.Grade,
		Feedback:      m.Feedback,
		SubmittedAt:   m.SubmittedAt,
	}
}
