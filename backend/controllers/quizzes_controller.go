package controllers

import (
	"eduforge/backend/dto"
	"eduforge/backend/models"
	"eduforge/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func quizTree(db *gorm.DB) *gorm.DB {
	return db.Preload("Questions", byID).Preload("Questions.Choices", byID)
}

type QuizzesController struct {
	DB *gorm.DB
}

func NewQuizzesController(db *gorm.DB) *QuizzesController {
	return &QuizzesController{DB: db}
}

// List godoc
// @Summary List quizzes
// @Description Returns every quiz with its questions and choices
// @Tags quizzes
// @Produce json
// @Success 200 {array} dto.QuizResponse
// @Router /quizzes [get]
func (qc *QuizzesController) List(c *fiber.Ctx) error {
	var quizzes []models.Quiz
	if err := quizTree(qc.DB.WithContext(c.UserContext())).Order("id").Find(&quizzes).Error; err != nil {
		return err
	}

	result := make([]dto.QuizResponse, 0, len(quizzes))
	for _, quiz := range quizzes {
		result = append(result, dto.NewQuizResponse(quiz))
	}
	return c.JSON(result)
}

func (qc *QuizzesController) Retrieve(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	return qc.render(c, id)
}

func (qc *QuizzesController) Create(c *fiber.Ctx) error {
	var input dto.QuizInput
	if err := bind(c, &input); err != nil {
		return err
	}
	db := qc.DB.WithContext(c.UserContext())
	if err := checkRefs(db, ref{"course", &models.Course{}, input.Course}); err != nil {
		return err
	}

	var quiz models.Quiz
	input.Apply(&quiz)
	if err := db.Omit(clause.Associations).Create(&quiz).Error; err != nil {
		return err
	}
	return utils.Created(c, dto.NewQuizResponse(quiz))
}

func (qc *QuizzesController) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	db := qc.DB.WithContext(c.UserContext())

	var quiz models.Quiz
	if err := db.First(&quiz, id).Error; err != nil {
		return err
	}

	var input dto.QuizInput
	if isPartial(c) {
		input = dto.QuizInputFrom(quiz)
	}
	if err := bind(c, &input); err != nil {
		return err
	}
	if err := checkRefs(db, ref{"course", &models.Course{}, input.Course}); err != nil {
		return err
	}

	input.Apply(&quiz)
	if err := db.Omit(clause.Associations).Save(&quiz).Error; err != nil {
		return err
	}
	return qc.render(c, id)
}

func (qc *QuizzesController) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := deleteByID(qc.DB.WithContext(c.UserContext()), &models.Quiz{}, id); err != nil {
		return err
	}
	return utils.NoContent(c)
}

func (qc *QuizzesController) render(c *fiber.Ctx, id uint) error {
	var quiz models.Quiz
	if err := quizTree(qc.DB.WithContext(c.UserContext())).First(&quiz, id).Error; err != nil {
		return err
	}
	return c.JSON(dto.NewQuizResponse(quiz))
}

type QuestionsController struct {
	DB *gorm.DB
}

func NewQuestionsController(db *gorm.DB) *QuestionsController {
	return &QuestionsController{DB: db}
}

func (qc *QuestionsController) List(c *fiber.Ctx) error {
	var questions []models.Question
	if err := qc.DB.WithContext(c.UserContext()).Preload("Choices", byID).Order("id").Find(&questions).Error; err != nil {
		return err
	}

	result := make([]dto.QuestionResponse, 0, len(questions))
	for _, q := range questions {
		result = append(result, dto.NewQuestionResponse(q))
	}
	return c.JSON(result)
}

func (qc *QuestionsController) Retrieve(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	return qc.render(c, id)
}

func (qc *QuestionsController) Create(c *fiber.Ctx) error {
	var input dto.QuestionInput
	if err := bind(c, &input); err != nil {
		return err
	}
	db := qc.DB.WithContext(c.UserContext())
	if err := checkRefs(db, ref{"quiz", &models.Quiz{}, input.Quiz}); err != nil {
		return err
	}

	var question models.Question
	input.Apply(&question)
	if err := db.Omit(clause.Associations).Create(&question).Error; err != nil {
		return err
	}
	return utils.Created(c, dto.NewQuestionResponse(question))
}

func (qc *QuestionsController) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	db := qc.DB.WithContext(c.UserContext())

	var question models.Question
	if err := db.First(&question, id).Error; err != nil {
		return err
	}

	var input dto.QuestionInput
	if isPartial(c) {
		input = dto.QuestionInputFrom(question)
	}
	if err := bind(c, &input); err != nil {
		return err
	}
	if err := checkRefs(db, ref{"quiz", &models.Quiz{}, input.Quiz}); err != nil {
		return err
	}

	input.Apply(&question)
	if err := db.Omit(clause.Associations).Save(&question).Error; err != nil {
		return err
	}
	return qc.render(c, id)
}

func (qc *QuestionsController) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := deleteByID(qc.DB.WithContext(c.UserContext()), &models.Question{}, id); err != nil {
		return err
	}
	return utils.NoContent(c)
}

func (qc *QuestionsController) render(c *fiber.Ctx, id uint) error {
	var question models.Question
	if err := qc.DB.WithContext(c.UserContext()).Preload("Choices", byID).First(&question, id).Error; err != nil {
		return err
	}
	return c.JSON(dto.NewQuestionResponse(question))
}

type ChoicesController struct {
	DB *gorm.DB
}

func NewChoicesController(db *gorm.DB) *ChoicesController {
	return &ChoicesController{DB: db}
}

func (cc *ChoicesController) List(c *fiber.Ctx) error {
	var choices []models.Choice
	if err := cc.DB.WithContext(c.UserContext()).Order("id").Find(&choices).Error; err != nil {
		return err
	}

	result := make([]dto.ChoiceResponse, 0, len(choices))
	for _, choice := range choices {
		result = append(result, dto.NewChoiceResponse(choice))
	}
	return c.JSON(result)
}

func (cc *ChoicesController) Retrieve(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var choice models.Choice
	if err := cc.DB.WithContext(c.UserContext()).First(&choice, id).Error; err != nil {
		return err
	}
	return c.JSON(dto.NewChoiceResponse(choice))
}

func (cc *ChoicesController) Create(c *fiber.Ctx) error {
	var input dto.ChoiceInput
	if err := bind(c, &input); err != nil {
		return err
	}
	db := cc.DB.WithContext(c.UserContext())
	if err := checkRefs(db, ref{"question", &models.Question{}, input.Question}); err != nil {
		return err
	}

	var choice models.Choice
	input.Apply(&choice)
	if err := db.Omit(clause.Associations).Create(&choice).Error; err != nil {
		return err
	}
	return utils.Created(c, dto.NewChoiceResponse(choice))
}

func (cc *ChoicesController) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	db := cc.DB.WithContext(c.UserContext())

	var choice models.Choice
	if err := db.First(&choice, id).Error; err != nil {
		return err
	}

	var input dto.ChoiceInput
	if isPartial(c) {
		input = dto.ChoiceInputFrom(choice)
	}
	if err := bind(c, &input); err != nil {
		return err
	}
	if err := checkRefs(db, ref{"question", &models.Question{}, input.Question}); err != nil {
		return err
	}

	input.Apply(&choice)
	if err := db.Omit(clause.Associations).Save(&choice).Error; err != nil {
		return err
	}
	return c.JSON(dto.NewChoiceResponse(choice))
}

func (cc *ChoicesController) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := deleteByID(cc.DB.WithContext(c.UserContext()), &models.Choice{}, id); err != nil {
		return err
	}
	return utils.NoContent(c)
}
