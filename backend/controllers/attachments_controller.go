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

const noFileText = "No file was submitted."

// AttachmentsController manages files attached to lessons. Create needs a
// multipart "file" part; updates may omit it to keep the current file.
type AttachmentsController struct {
	DB     *gorm.DB
	Store  storage.FileStore
	Logger *utils.Logger
}

func NewAttachmentsController(db *gorm.DB, store storage.FileStore, logger *utils.Logger) *AttachmentsController {
	return &AttachmentsController{DB: db, Store: store, Logger: logger}
}

func (ac *AttachmentsController) List(c *fiber.Ctx) error {
	var attachments []models.LessonAttachment
	if err := ac.DB.WithContext(c.UserContext()).Order("id").Find(&attachments).Error; err != nil {
		return err
	}

	url := mediaURL(c, ac.Store)
	result := make([]dto.AttachmentResponse, 0, len(attachments))
	for _, a := range attachments {
		result = append(result, dto.NewAttachmentResponse(a, url))
	}
	return c.JSON(result)
}

func (ac *AttachmentsController) Retrieve(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var attachment models.LessonAttachment
	if err := ac.DB.WithContext(c.UserContext()).First(&attachment, id).Error; err != nil {
		return err
	}
	return c.JSON(dto.NewAttachmentResponse(attachment, mediaURL(c, ac.Store)))
}

func (ac *AttachmentsController) Create(c *fiber.Ctx) error {
	fh, err := formFile(c, "file")
	if err != nil {
		return err
	}

	var input dto.AttachmentInput
	err = bind(c, &input)
	if fh == nil {
		err = withFieldError(err, "file", noFileText)
	}
	if err != nil {
		return err
	}

	db := ac.DB.WithContext(c.UserContext())
	if err := checkRefs(db, ref{"lesson", &models.Lesson{}, input.Lesson}); err != nil {
		return err
	}

	name, err := ac.Store.Save(c.UserContext(), storage.LessonFilesDir, fh)
	if err != nil {
		return err
	}

	attachment := models.LessonAttachment{File: name}
	input.Apply(&attachment)
	if err := db.Omit(clause.Associations).Create(&attachment).Error; err != nil {
		ac.discard(c, name)
		return err
	}
	return utils.Created(c, dto.NewAttachmentResponse(attachment, mediaURL(c, ac.Store)))
}

func (ac *AttachmentsController) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	db := ac.DB.WithContext(c.UserContext())

	var attachment models.LessonAttachment
	if err := db.First(&attachment, id).Error; err != nil {
		return err
	}

	fh, err := formFile(c, "file")
	if err != nil {
		return err
	}

	var input dto.AttachmentInput
	if isPartial(c) {
		input = dto.AttachmentInputFrom(attachment)
	}
	if err := bind(c, &input); err != nil {
		return err
	}
	if err := checkRefs(db, ref{"lesson", &models.Lesson{}, input.Lesson}); err != nil {
		return err
	}

	input.Apply(&attachment)
	previous := attachment.File
	if fh != nil {
		name, err := ac.Store.Save(c.UserContext(), storage.LessonFilesDir, fh)
		if err != nil {
			return err
		}
		attachment.File = name
	}

	if err := db.Omit(clause.Associations).Save(&attachment).Error; err != nil {
		if fh != nil {
			ac.discard(c, attachment.File)
		}
		return err
	}
	if fh != nil {
		ac.discard(c, previous)
	}
	return c.JSON(dto.NewAttachmentResponse(attachment, mediaURL(c, ac.Store)))
}

func (ac *AttachmentsController) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	db := ac.DB.WithContext(c.UserContext())

	var attachment models.LessonAttachment
	if err := db.First(&attachment, id).Error; err != nil {
		return err
	}
	if err := db.Delete(&attachment).Error; err != nil {
		return err
	}
	ac.discard(c, attachment.File)
	return utils.NoContent(c)
}

func (ac *AttachmentsController) discard(c *fiber.Ctx, name string) {
	if err := ac.Store.Delete(c.UserContext(), name); err != nil {
		ac.Logger.Warn("failed to delete attachment file", "name", name, "error", err)
	}
}
