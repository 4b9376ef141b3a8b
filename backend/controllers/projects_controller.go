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

type ProjectsController struct {
	DB *gorm.DB
}

func NewProjectsController(db *gorm.DB) *ProjectsController {
	return &ProjectsController{DB: db}
}

func (pc *ProjectsController) List(c *fiber.Ctx) error {
	var projects []models.Project
	if err := pc.DB.WithContext(c.UserContext()).Order("id").Find(&projects).Error; err != nil {
		return err
	}

	result := make([]dto.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		result = append(result, dto.NewProjectResponse(p))
	}
	return c.JSON(result)
}

func (pc *ProjectsController) Retrieve(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var project models.Project
	if err := pc.DB.WithContext(c.UserContext()).First(&project, id).Error; err != nil {
		return err
	}
	return c.JSON(dto.NewProjectResponse(project))
}

func (pc *ProjectsController) Create(c *fiber.Ctx) error {
	var input dto.ProjectInput
	if err := bind(c, &input); err != nil {
		return err
	}
	db := pc.DB.WithContext(c.UserContext())
	if err := checkRefs(db, ref{"course", &models.Course{}, input.Course}); err != nil {
		return err
	}

	var project models.Project
	input.Apply(&project)
	if err := db.Omit(clause.Associations).Create(&project).Error; err != nil {
		return err
	}
	return utils.Created(c, dto.NewProjectResponse(project))
}

func (pc *ProjectsController) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	db := pc.DB.WithContext(c.UserContext())

	var project models.Project
	if err := db.First(&project, id).Error; err != nil {
		return err
	}

	var input dto.ProjectInput
	if isPartial(c) {
		input = dto.ProjectInputFrom(project)
	}
	if err := bind(c, &input); err != nil {
		return err
	}
	if err := checkRefs(db, ref{"course", &models.Course{}, input.Course}); err != nil {
		return err
	}

	input.Apply(&project)
	if err := db.Omit(clause.Associations).Save(&project).Error; err != nil {
		return err
	}
	return c.JSON(dto.NewProjectResponse(project))
}

// Delete removes the project together with its submissions. Uploaded files
// of those submissions stay in the store.
func (pc *ProjectsController) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := deleteByID(pc.DB.WithContext(c.UserContext()), &models.Project{}, id); err != nil {
		return err
	}
	return utils.NoContent(c)
}

// SubmissionsController accepts JSON or multipart bodies; the optional
// submitted_file part is kept in Store.
type SubmissionsController struct {
	DB     *gorm.DB
	Store  storage.FileStore
	Logger *utils.Logger
}

func NewSubmissionsController(db *gorm.DB, store storage.FileStore, logger *utils.Logger) *SubmissionsController {
	return &SubmissionsController{DB: db, Store: store, Logger: logger}
}

func (sc *SubmissionsController) List(c *fiber.Ctx) error {
	var submissions []models.Submission
	if err := sc.DB.WithContext(c.UserContext()).Order("id").Find(&submissions).Error; err != nil {
		return err
	}

	url := mediaURL(c, sc.Store)
	result := make([]dto.SubmissionResponse, 0, len(submissions))
	for _, s := range submissions {
		result = append(result, dto.NewSubmissionResponse(s, url))
	}
	return c.JSON(result)
}

func (sc *SubmissionsController) Retrieve(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var submission models.Submission
	if err := sc.DB.WithContext(c.UserContext()).First(&submission, id).Error; err != nil {
		return err
	}
	return c.JSON(dto.NewSubmissionResponse(submission, mediaURL(c, sc.Store)))
}

func (sc *SubmissionsController) Create(c *fiber.Ctx) error {
	fh, err := formFile(c, "submitted_file")
	if err != nil {
		return err
	}

	var input dto.SubmissionInput
	if err := bind(c, &input); err != nil {
		return err
	}
	db := sc.DB.WithContext(c.UserContext())
	if err := checkRefs(db, ref{"project", &models.Project{}, input.Project}); err != nil {
		return err
	}

	var submission models.Submission
	input.Apply(&submission)
	if fh != nil {
		name, err := sc.Store.Save(c.UserContext(), storage.SubmissionsDir, fh)
		if err != nil {
			return err
		}
		submission.SubmittedFile = name
	}

	if err := db.Omit(clause.Associations).Create(&submission).Error; err != nil {
		sc.discard(c, submission.SubmittedFile)
		return err
	}
	return utils.Created(c, dto.NewSubmissionResponse(submission, mediaURL(c, sc.Store)))
}

// Update replaces the stored file when a new one is uploaded; otherwise the
// current file is kept.
func (sc *SubmissionsController) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	db := sc.DB.WithContext(c.UserContext())

	var submission models.Submission
	if err := db.First(&submission, id).Error; err != nil {
		return err
	}

	fh, err := formFile(c, "submitted_file")
	if err != nil {
		return err
	}

	var input dto.SubmissionInput
	if isPartial(c) {
		input = dto.SubmissionInputFrom(submission)
	}
	if err := bind(c, &input); err != nil {
		return err
	}
	if err := checkRefs(db, ref{"project", &models.Project{}, input.Project}); err != nil {
		return err
	}

	input.Apply(&submission)
	previous := submission.SubmittedFile
	if fh != nil {
		name, err := sc.Store.Save(c.UserContext(), storage.SubmissionsDir, fh)
		if err != nil {
			return err
		}
		submission.SubmittedFile = name
	}

	if err := db.Omit(clause.Associations).Save(&submission).Error; err != nil {
		if fh != nil {
			sc.discard(c, submission.SubmittedFile)
		}
		return err
	}
	if fh != nil {
		sc.discard(c, previous)
	}
	return c.JSON(dto.NewSubmissionResponse(submission, mediaURL(c, sc.Store)))
}

func (sc *SubmissionsController) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	db := sc.DB.WithContext(c.UserContext())

	var submission models.Submission
	if err := db.First(&submission, id).Error; err != nil {
		return err
	}
	if err := db.Delete(&submission).Error; err != nil {
		return err
	}
	sc.discard(c, submission.SubmittedFile)
	return utils.NoContent(c)
}

// discard removes a stored file. Failures only leave an orphan behind, so
// they are logged and not returned.
func (sc *SubmissionsController) discard(c *fiber.Ctx, name string) {
	if name == "" {
		return
	}
	if err := sc.Store.Delete(c.UserContext(), name); err != nil {
		sc.Logger.Warn("failed to delete submission file", "name", name, "error", err)
	}
}
