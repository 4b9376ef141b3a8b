package controllers

import (
	"eduforge/backend/dto"
	"eduforge/backend/middleware"
	"eduforge/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// GetProfile godoc
// @Summary Get user profile
// @Description Returns the authenticated user's account
// @Tags auth
// @Produce json
// @Success 200 {object} dto.ProfileResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /auth/me [get]
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return utils.Unauthorized(c, "Authentication credentials were not provided.")
	}
	return c.JSON(dto.NewProfileResponse(*user))
}

// UpdateProfile godoc
// @Summary Update user profile
// @Description Updates email and names; changing the password requires old_password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ProfileInput true "Profile fields"
// @Success 200 {object} dto.ProfileResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /auth/me [put]
func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return utils.Unauthorized(c, "Authentication credentials were not provided.")
	}

	var input dto.ProfileInput
	if isPartial(c) {
		input = dto.ProfileInputFrom(*user)
	}
	if err := bind(c, &input); err != nil {
		return err
	}

	if input.NewPassword != "" {
		if !user.CheckPassword(input.OldPassword) {
			return utils.NewValidationError("old_password", "Wrong password.")
		}
		if err := user.SetPassword(input.NewPassword); err != nil {
			return err
		}
	}
	input.Apply(user)

	if err := uc.DB.WithContext(c.UserContext()).Omit(clause.Associations).Save(user).Error; err != nil {
		return err
	}
	return c.JSON(dto.NewProfileResponse(*user))
}
