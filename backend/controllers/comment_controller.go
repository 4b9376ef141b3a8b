package controllers

import (
	"errors"

	"eduforge/backend/dto"
	"eduforge/backend/middleware"
	"eduforge/backend/models"
	"eduforge/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const duplicateTokenText = "device with this token already exists."

type CommentsController struct {
	DB *gorm.DB
}

func NewCommentsController(db *gorm.DB) *CommentsController {
	return &CommentsController{DB: db}
}

func (cc *CommentsController) List(c *fiber.Ctx) error {
	var comments []models.Comment
	if err := cc.DB.WithContext(c.UserContext()).Preload("User").Order("id").Find(&comments).Error; err != nil {
		return err
	}

	result := make([]dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		result = append(result, dto.NewCommentResponse(comment))
	}
	return c.JSON(result)
}

func (cc *CommentsController) Retrieve(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	return cc.render(c, id, fiber.StatusOK)
}

// Create godoc
// @Summary Add a comment
// @Description Adds a comment, optionally attached to a lesson. The author defaults to the caller.
// @Tags comments
// @Accept json
// @Produce json
// @Param input body dto.CommentInput true "Comment data"
// @Success 201 {object} dto.CommentResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /comments [post]
func (cc *CommentsController) Create(c *fiber.Ctx) error {
	var input dto.CommentInput
	if user, ok := middleware.CurrentUser(c); ok {
		input.User = user.ID
	}
	if err := bind(c, &input); err != nil {
		return err
	}
	db := cc.DB.WithContext(c.UserContext())
	if err := cc.check(db, input); err != nil {
		return err
	}

	var comment models.Comment
	input.Apply(&comment)
	if err := db.Omit(clause.Associations).Create(&comment).Error; err != nil {
		return err
	}
	return cc.render(c, comment.ID, fiber.StatusCreated)
}

func (cc *CommentsController) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	db := cc.DB.WithContext(c.UserContext())

	var comment models.Comment
	if err := db.First(&comment, id).Error; err != nil {
		return err
	}

	var input dto.CommentInput
	if isPartial(c) {
		input = dto.CommentInputFrom(comment)
	}
	if err := bind(c, &input); err != nil {
		return err
	}
	if err := cc.check(db, input); err != nil {
		return err
	}

	input.Apply(&comment)
	if err := db.Omit(clause.Associations).Save(&comment).Error; err != nil {
		return err
	}
	return cc.render(c, id, fiber.StatusOK)
}

func (cc *CommentsController) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := deleteByID(cc.DB.WithContext(c.UserContext()), &models.Comment{}, id); err != nil {
		return err
	}
	return utils.NoContent(c)
}

func (cc *CommentsController) check(db *gorm.DB, input dto.CommentInput) error {
	refs := []ref{{"user", &models.User{}, input.User}}
	if input.Lesson != nil {
		refs = append(refs, ref{"lesson", &models.Lesson{}, *input.Lesson})
	}
	return checkRefs(db, refs...)
}

func (cc *CommentsController) render(c *fiber.Ctx, id uint, status int) error {
	var comment models.Comment
	if err := cc.DB.WithContext(c.UserContext()).Preload("User").First(&comment, id).Error; err != nil {
		return err
	}
	return c.Status(status).JSON(dto.NewCommentResponse(comment))
}

type NotificationsController struct {
	DB     *gorm.DB
	Logger *utils.Logger
}

func NewNotificationsController(db *gorm.DB, logger *utils.Logger) *NotificationsController {
	return &NotificationsController{DB: db, Logger: logger}
}

func (nc *NotificationsController) List(c *fiber.Ctx) error {
	var notifications []models.Notification
	if err := nc.DB.WithContext(c.UserContext()).Order("id").Find(&notifications).Error; err != nil {
		return err
	}

	result := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		result = append(result, dto.NewNotificationResponse(n))
	}
	return c.JSON(result)
}

func (nc *NotificationsController) Retrieve(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var notification models.Notification
	if err := nc.DB.WithContext(c.UserContext()).First(&notification, id).Error; err != nil {
		return err
	}
	return c.JSON(dto.NewNotificationResponse(notification))
}

func (nc *NotificationsController) Create(c *fiber.Ctx) error {
	var input dto.NotificationInput
	if err := bind(c, &input); err != nil {
		return err
	}
	db := nc.DB.WithContext(c.UserContext())
	if err := checkRefs(db, ref{"user", &models.User{}, input.User}); err != nil {
		return err
	}

	var notification models.Notification
	input.Apply(&notification)
	if err := db.Omit(clause.Associations).Create(&notification).Error; err != nil {
		return err
	}
	return utils.Created(c, dto.NewNotificationResponse(notification))
}

func (nc *NotificationsController) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	db := nc.DB.WithContext(c.UserContext())

	var notification models.Notification
	if err := db.First(&notification, id).Error; err != nil {
		return err
	}

	var input dto.NotificationInput
	if isPartial(c) {
		input = dto.NotificationInputFrom(notification)
	}
	if err := bind(c, &input); err != nil {
		return err
	}
	if err := checkRefs(db, ref{"user", &models.User{}, input.User}); err != nil {
		return err
	}

	input.Apply(&notification)
	if err := db.Omit(clause.Associations).Save(&notification).Error; err != nil {
		return err
	}
	return c.JSON(dto.NewNotificationResponse(notification))
}

func (nc *NotificationsController) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := deleteByID(nc.DB.WithContext(c.UserContext()), &models.Notification{}, id); err != nil {
		return err
	}
	return utils.NoContent(c)
}

// MarkRead godoc
// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /notifications/{id}/mark_read [post]
func (nc *NotificationsController) MarkRead(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.NotFound(c, "Notification not found")
	}
	db := nc.DB.WithContext(c.UserContext())

	var notification models.Notification
	err = db.First(&notification, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NotFound(c, "Notification not found")
	}
	if err == nil {
		err = db.Model(&notification).Update("is_read", true).Error
	}
	if err != nil {
		nc.Logger.Error("mark notification read", "id", id, "error", err)
		return utils.BadRequest(c, "Could not mark as read")
	}
	return c.JSON(fiber.Map{"status": "marked read"})
}

type DevicesController struct {
	DB *gorm.DB
}

func NewDevicesController(db *gorm.DB) *DevicesController {
	return &DevicesController{DB: db}
}

func (dc *DevicesController) List(c *fiber.Ctx) error {
	var devices []models.Device
	if err := dc.DB.WithContext(c.UserContext()).Order("id").Find(&devices).Error; err != nil {
		return err
	}

	result := make([]dto.DeviceResponse, 0, len(devices))
	for _, d := range devices {
		result = append(result, dto.NewDeviceResponse(d))
	}
	return c.JSON(result)
}

func (dc *DevicesController) Retrieve(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var device models.Device
	if err := dc.DB.WithContext(c.UserContext()).First(&device, id).Error; err != nil {
		return err
	}
	return c.JSON(dto.NewDeviceResponse(device))
}

// Create godoc
// @Summary Register a push device
// @Description Stores a push token. For authenticated callers the device is bound to the caller, whatever the payload says.
// @Tags devices
// @Accept json
// @Produce json
// @Param input body dto.DeviceInput true "Device data"
// @Success 201 {object} dto.DeviceResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /devices [post]
func (dc *DevicesController) Create(c *fiber.Ctx) error {
	var input dto.DeviceInput
	if err := decode(c, &input); err != nil {
		return err
	}
	if user, ok := middleware.CurrentUser(c); ok {
		input.User = &user.ID
	}
	if err := utils.Validate(&input); err != nil {
		return err
	}
	db := dc.DB.WithContext(c.UserContext())
	if err := dc.check(db, input, 0); err != nil {
		return err
	}

	var device models.Device
	input.Apply(&device)
	if err := db.Omit(clause.Associations).Create(&device).Error; err != nil {
		return err
	}
	return utils.Created(c, dto.NewDeviceResponse(device))
}

func (dc *DevicesController) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	db := dc.DB.WithContext(c.UserContext())

	var device models.Device
	if err := db.First(&device, id).Error; err != nil {
		return err
	}

	var input dto.DeviceInput
	if isPartial(c) {
		input = dto.DeviceInputFrom(device)
	}
	if err := bind(c, &input); err != nil {
		return err
	}
	if err := dc.check(db, input, id); err != nil {
		return err
	}

	input.Apply(&device)
	if err := db.Omit(clause.Associations).Save(&device).Error; err != nil {
		return err
	}
	return c.JSON(dto.NewDeviceResponse(device))
}

func (dc *DevicesController) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := deleteByID(dc.DB.WithContext(c.UserContext()), &models.Device{}, id); err != nil {
		return err
	}
	return utils.NoContent(c)
}

// check verifies the owner exists and the token is not registered by
// another device.
func (dc *DevicesController) check(db *gorm.DB, input dto.DeviceInput, self uint) error {
	if input.User != nil {
		if err := checkRefs(db, ref{"user", &models.User{}, *input.User}); err != nil {
			return err
		}
	}
	taken, err := exists(db, &models.Device{}, "token = ? AND id <> ?", input.Token, self)
	if err != nil {
		return err
	}
	if taken {
		return utils.NewValidationError("token", duplicateTokenText)
	}
	return nil
}
