package dto

import "eduforge/backend/models"

type QuizInput struct {
	Course      uint   `json:"course" form:"course" validate:"required"`
	Title       string `json:"title" form:"title" validate:"required,max=200"`
	Description string `json:"description" form:"description"`
}

func QuizInputFrom(m models.Quiz) QuizInput {
	return QuizInput{Course: m.CourseID, Title: m.Title, Description: m.Description}
}

func (in QuizInput) Apply(m *models.Quiz) {
	m.CourseID = in.Course
	m.Title = in.Title
	m.Description = in.Description
}

type QuizResponse struct {
	ID          uint               `json:"id"`
	Course      uint               `json:"course"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Questions   []QuestionResponse `json:"questions"`
}

// NewQuizResponse expects Questions.Choices to be preloaded.
func NewQuizResponse(m models.Quiz) QuizResponse {
	r := QuizResponse{
		ID:          m.ID,
		Course:      m.CourseID,
		Title:       m.Title,
		Description: m.Description,
		Questions:   make([]QuestionResponse, 0, len(m.Questions)),
	}
	for _, q := range m.Questions {
		r.Questions = append(r.Questions, NewQuestionResponse(q))
	}
	return r
}

type QuestionInput struct {
	Quiz uint   `json:"quiz" form:"quiz" validate:"required"`
	Text string `json:"text" form:"text" validate:"required,max=500"`
}

func QuestionInputFrom(m models.Question) QuestionInput {
	return QuestionInput{Quiz: m.QuizID, Text: m.Text}
}

func (in QuestionInput) Apply(m *models.Question) {
	m.QuizID = in.Quiz
	m.Text = in.Text
}

type QuestionResponse struct {
	ID      uint             `json:"id"`
	Quiz    uint             `json:"quiz"`
	Text    string           `json:"text"`
	Choices []ChoiceResponse `json:"choices"`
}

func NewQuestionResponse(m models.Question) QuestionResponse {
	r := QuestionResponse{
		ID:      m.ID,
		Quiz:    m.QuizID,
		Text:    m.Text,
		Choices: make([]ChoiceResponse, 0, len(m.Choices)),
	}
	for _, c := range m.Choices {
		r.Choices = append(r.Choices, NewChoiceResponse(c))
	}
	return r
}

type ChoiceInput struct {
	Question  uint   `json:"question" form:"question" validate:"required"`
	Text      string `json:"text" form:"text" validate:"required,max=200"`
	IsCorrect bool   `json:"is_correct" form:"is_correct"`
}

func ChoiceInputFrom(m models.Choice) ChoiceInput {
	return ChoiceInput{Question: m.QuestionID, Text: m.Text, IsCorrect: m.IsCorrect}
}

func (in ChoiceInput) Apply(m *models.Choice) {
	m.QuestionID = in.Question
	m.Text = in.Text
	m.IsCorrect = in.IsCorrect
}

type ChoiceResponse struct {
	ID        uint   `json:"id"`
	Question  uint   `json:"question"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

func NewChoiceResponse(m models.Choice) ChoiceResponse {
	return ChoiceResponse{ID: m.ID, Question: m.QuestionID, Text: m.Text, IsCorrect: m.IsCorrect}
}
