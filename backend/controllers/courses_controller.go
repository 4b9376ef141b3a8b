package controllers

import (
	"eduforge/backend/dto"
	"eduforge/backend/models"
	"eduforge/backend/storage"
	"eduforge/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// courseTree preloads everything a course representation embeds.
func courseTree(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Lessons", byLessonOrder).
		Preload("Lessons.Comments", byID).
		Preload("Lessons.Comments.User").
		Preload("Lessons.Attachments", byID).
		Preload("Projects", byID).
		Preload("Quizzes", byID).
		Preload("Quizzes.Questions", byID).
		Preload("Quizzes.Questions.Choices", byID).
		Preload("Announcements", byID)
}

func lessonTree(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Comments", byID).
		Preload("Comments.User").
		Preload("Attachments", byID)
}

type CoursesController struct {
	DB    *gorm.DB
	Store storage.FileStore
}

func NewCoursesController(db *gorm.DB, store storage.FileStore) *CoursesController {
	return &CoursesController{DB: db, Store: store}
}

// List godoc
// @Summary List courses
// @Description Returns every course with its lessons, projects, quizzes and announcements
// @Tags courses
// @Produce json
// @Success 200 {array} dto.CourseResponse
// @Router /courses [get]
func (cc *CoursesController) List(c *fiber.Ctx) error {
	var courses []models.Course
	if err := courseTree(cc.DB.WithContext(c.UserContext())).Order("id").Find(&courses).Error; err != nil {
		return err
	}

	url := mediaURL(c, cc.Store)
	result := make([]dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		result = append(result, dto.NewCourseResponse(course, url))
	}
	return c.JSON(result)
}

func (cc *CoursesController) Retrieve(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	return cc.render(c, id, fiber.StatusOK)
}

func (cc *CoursesController) Create(c *fiber.Ctx) error {
	var input dto.CourseInput
	if err := bind(c, &input); err != nil {
		return err
	}

	var course models.Course
	input.Apply(&course)
	if err := cc.DB.WithContext(c.UserContext()).Omit(clause.Associations).Create(&course).Error; err != nil {
		return err
	}
	return utils.Created(c, dto.NewCourseResponse(course, mediaURL(c, cc.Store)))
}

func (cc *CoursesController) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	db := cc.DB.WithContext(c.UserContext())

	var course models.Course
	if err := db.First(&course, id).Error; err != nil {
		return err
	}

	var input dto.CourseInput
	if isPartial(c) {
		input = dto.CourseInputFrom(course)
	}
	if err := bind(c, &input); err != nil {
		return err
	}

	input.Apply(&course)
	if err := db.Omit(clause.Associations).Save(&course).Error; err != nil {
		return err
	}
	return cc.render(c, id, fiber.StatusOK)
}

// Delete removes the course; lessons, projects, quizzes, announcements and
// enrollments go with it through the foreign keys.
func (cc *CoursesController) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := deleteByID(cc.DB.WithContext(c.UserContext()), &models.Course{}, id); err != nil {
		return err
	}
	return utils.NoContent(c)
}

func (cc *CoursesController) render(c *fiber.Ctx, id uint, status int) error {
	var course models.Course
	if err := courseTree(cc.DB.WithContext(c.UserContext())).First(&course, id).Error; err != nil {
		return err
	}
	return c.Status(status).JSON(dto.NewCourseResponse(course, mediaURL(c, cc.Store)))
}

type LessonsController struct {
	DB    *gorm.DB
	Store storage.FileStore
}

func NewLessonsController(db *gorm.DB, store storage.FileStore) *LessonsController {
	return &LessonsController{DB: db, Store: store}
}

func (lc *LessonsController) List(c *fiber.Ctx) error {
	var lessons []models.Lesson
	if err := lessonTree(lc.DB.WithContext(c.UserContext())).Order("id").Find(&lessons).Error; err != nil {
		return err
	}

	url := mediaURL(c, lc.Store)
	result := make([]dto.LessonResponse, 0, len(lessons))
	for _, lesson := range lessons {
		result = append(result, dto.NewLessonResponse(lesson, url))
	}
	return c.JSON(result)
}

func (lc *LessonsController) Retrieve(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	return lc.render(c, id, fiber.StatusOK)
}

func (lc *LessonsController) Create(c *fiber.Ctx) error {
	var input dto.LessonInput
	if err := bind(c, &input); err != nil {
		return err
	}
	db := lc.DB.WithContext(c.UserContext())
	if err := checkRefs(db, ref{"course", &models.Course{}, input.Course}); err != nil {
		return err
	}

	var lesson models.Lesson
	input.Apply(&lesson)
	if err := db.Omit(clause.Associations).Create(&lesson).Error; err != nil {
		return err
	}
	return utils.Created(c, dto.NewLessonResponse(lesson, mediaURL(c, lc.Store)))
}

func (lc *LessonsController) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	db := lc.DB.WithContext(c.UserContext())

	var lesson models.Lesson
	if err := db.First(&lesson, id).Error; err != nil {
		return err
	}

	var input dto.LessonInput
	if isPartial(c) {
		input = dto.LessonInputFrom(lesson)
	}
	if err := bind(c, &input); err != nil {
		return err
	}
	if err := checkRefs(db, ref{"course", &models.Course{}, input.Course}); err != nil {
		return err
	}

	input.Apply(&lesson)
	if err := db.Omit(clause.Associations).Save(&lesson).Error; err != nil {
		return err
	}
	return lc.render(c, id, fiber.StatusOK)
}

func (lc *LessonsController) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := deleteByID(lc.DB.WithContext(c.UserContext()), &models.Lesson{}, id); err != nil {
		return err
	}
	return utils.NoContent(c)
}

func (lc *LessonsController) render(c *fiber.Ctx, id uint, status int) error {
	var lesson models.Lesson
	if err := lessonTree(lc.DB.WithContext(c.UserContext())).First(&lesson, id).Error; err != nil {
		return err
	}
	return c.Status(status).JSON(dto.NewLessonResponse(lesson, mediaURL(c, lc.Store)))
}

type AnnouncementsController struct {
	DB *gorm.DB
}

func NewAnnouncementsController(db *gorm.DB) *AnnouncementsController {
	return &AnnouncementsController{DB: db}
}

func (ac *AnnouncementsController) List(c *fiber.Ctx) error {
	var announcements []models.Announcement
	if err := ac.DB.WithContext(c.UserContext()).Order("id").Find(&announcements).Error; err != nil {
		return err
	}

	result := make([]dto.AnnouncementResponse, 0, len(announcements))
	for _, a := range announcements {
		result = append(result, dto.NewAnnouncementResponse(a))
	}
	return c.JSON(result)
}

func (ac *AnnouncementsController) Retrieve(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var announcement models.Announcement
	if err := ac.DB.WithContext(c.UserContext()).First(&announcement, id).Error; err != nil {
		return err
	}
	return c.JSON(dto.NewAnnouncementResponse(announcement))
}

func (ac *AnnouncementsController) Create(c *fiber.Ctx) error {
	var input dto.AnnouncementInput
	if err := bind(c, &input); err != nil {
		return err
	}
	db := ac.DB.WithContext(c.UserContext())
	if err := checkRefs(db, ref{"course", &models.Course{}, input.Course}); err != nil {
		return err
	}

	var announcement models.Announcement
	input.Apply(&announcement)
	if err := db.Omit(clause.Associations).Create(&announcement).Error; err != nil {
		return err
	}
	return utils.Created(c, dto.NewAnnouncementResponse(announcement))
}

func (ac *AnnouncementsController) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	db := ac.DB.WithContext(c.UserContext())

	var announcement models.Announcement
	if err := db.First(&announcement, id).Error; err != nil {
		return err
	}

	var input dto.AnnouncementInput
	if isPartial(c) {
		input = dto.AnnouncementInputFrom(announcement)
	}
	if err := bind(c, &input); err != nil {
		return err
	}
	if err := checkRefs(db, ref{"course", &models.Course{}, input.Course}); err != nil {
		return err
	}

	input.Apply(&announcement)
	if err := db.Omit(clause.Associations).Save(&announcement).Error; err != nil {
		return err
	}
	return c.JSON(dto.NewAnnouncementResponse(announcement))
}

func (ac *AnnouncementsController) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := deleteByID(ac.DB.WithContext(c.UserContext()), &models.Announcement{}, id); err != nil {
		return err
	}
	return utils.NoContent(c)
}
