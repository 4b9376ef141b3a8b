package controllers

import (
	"errors"

	"eduforge/backend/dto"
	"eduforge/backend/models"
	"eduforge/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const uniqueEnrollmentText = "The fields student, course must make a unique set."

type ProgressController struct {
	DB *gorm.DB
}

func NewProgressController(db *gorm.DB) *ProgressController {
	return &ProgressController{DB: db}
}

// progress counts completed lessons of the enrollment's own course. Lessons
// completed before a course change do not count.
func progress(db *gorm.DB, e models.Enrollment) (int, error) {
	var total, completed int64
	if err := db.Model(&models.Lesson{}).Where("course_id = ?", e.CourseID).Count(&total).Error; err != nil {
		return 0, err
	}
	err := db.Model(&models.EnrollmentLesson{}).
		Joins("JOIN lessons ON lessons.id = enrollment_lessons.lesson_id").
		Where("enrollment_lessons.enrollment_id = ? AND lessons.course_id = ?", e.ID, e.CourseID).
		Count(&completed).Error
	if err != nil {
		return 0, err
	}
	return models.ProgressPercent(completed, total), nil
}

func (pc *ProgressController) List(c *fiber.Ctx) error {
	db := pc.DB.WithContext(c.UserContext())

	var enrollments []models.Enrollment
	if err := db.Preload("Course").Order("id").Find(&enrollments).Error; err != nil {
		return err
	}

	result := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for _, e := range enrollments {
		p, err := progress(db, e)
		if err != nil {
			return err
		}
		result = append(result, dto.NewEnrollmentResponse(e, p))
	}
	return c.JSON(result)
}

func (pc *ProgressController) Retrieve(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	return pc.render(c, id, fiber.StatusOK)
}

func (pc *ProgressController) Create(c *fiber.Ctx) error {
	var input dto.EnrollmentInput
	if err := bind(c, &input); err != nil {
		return err
	}
	db := pc.DB.WithContext(c.UserContext())
	if err := pc.check(db, input, 0); err != nil {
		return err
	}

	var enrollment models.Enrollment
	input.Apply(&enrollment)
	if err := db.Omit(clause.Associations).Create(&enrollment).Error; err != nil {
		return err
	}
	return pc.render(c, enrollment.ID, fiber.StatusCreated)
}

func (pc *ProgressController) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	db := pc.DB.WithContext(c.UserContext())

	var enrollment models.Enrollment
	if err := db.First(&enrollment, id).Error; err != nil {
		return err
	}

	var input dto.EnrollmentInput
	if isPartial(c) {
		input = dto.EnrollmentInputFrom(enrollment)
	}
	if err := bind(c, &input); err != nil {
		return err
	}
	if err := pc.check(db, input, id); err != nil {
		return err
	}

	input.Apply(&enrollment)
	if err := db.Omit(clause.Associations).Save(&enrollment).Error; err != nil {
		return err
	}
	return pc.render(c, id, fiber.StatusOK)
}

func (pc *ProgressController) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := deleteByID(pc.DB.WithContext(c.UserContext()), &models.Enrollment{}, id); err != nil {
		return err
	}
	return utils.NoContent(c)
}

// MarkComplete godoc
// @Summary Mark a lesson complete
// @Description Records the lesson as completed for the student's enrollment and returns the new progress. Repeating the call changes nothing.
// @Tags enrollments
// @Accept json
// @Produce json
// @Param input body dto.MarkCompleteInput true "Student, course and lesson"
// @Success 200 {object} dto.MarkCompleteResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /enrollments/mark_complete [post]
func (pc *ProgressController) MarkComplete(c *fiber.Ctx) error {
	var input dto.MarkCompleteInput
	if err := bind(c, &input); err != nil {
		return err
	}
	db := pc.DB.WithContext(c.UserContext())

	var enrollment models.Enrollment
	err := db.Where(&models.Enrollment{StudentID: input.Student, CourseID: input.Course}).First(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NotFound(c, "Enrollment not found")
	}
	if err != nil {
		return err
	}

	var lesson models.Lesson
	err = db.First(&lesson, input.Lesson).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NotFound(c, "Lesson not found")
	}
	if err != nil {
		return err
	}
	if lesson.CourseID != enrollment.CourseID {
		return utils.NewValidationError("lesson", "Lesson does not belong to this course.")
	}

	done := models.EnrollmentLesson{EnrollmentID: enrollment.ID, LessonID: lesson.ID}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Omit(clause.Associations).Create(&done).Error; err != nil {
		return err
	}

	p, err := progress(db, enrollment)
	if err != nil {
		return err
	}
	return c.JSON(dto.MarkCompleteResponse{Status: "marked complete", Progress: p})
}

// check verifies references and the (student, course) uniqueness, ignoring
// the enrollment being updated.
func (pc *ProgressController) check(db *gorm.DB, input dto.EnrollmentInput, self uint) error {
	if err := checkRefs(db,
		ref{"student", &models.User{}, input.Student},
		ref{"course", &models.Course{}, input.Course},
	); err != nil {
		return err
	}

	taken, err := exists(db, &models.Enrollment{},
		"student_id = ? AND course_id = ? AND id <> ?", input.Student, input.Course, self)
	if err != nil {
		return err
	}
	if taken {
		return utils.NewValidationError(utils.NonFieldErrors, uniqueEnrollmentText)
	}
	return nil
}

func (pc *ProgressController) render(c *fiber.Ctx, id uint, status int) error {
	db := pc.DB.WithContext(c.UserContext())

	var enrollment models.Enrollment
	if err := db.Preload("Course").First(&enrollment, id).Error; err != nil {
		return err
	}
	p, err := progress(db, enrollment)
	if err != nil {
		return err
	}
	return c.Status(status).JSON(dto.NewEnrollmentResponse(enrollment, p))
}
