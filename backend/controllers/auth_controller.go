package controllers

import (
	"errors"

	"eduforge/backend/config"
	"eduforge/backend/dto"
	"eduforge/backend/models"
	"eduforge/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AuthController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAuthController(db *gorm.DB, cfg *config.Config) *AuthController {
	return &AuthController{DB: db, Cfg: cfg}
}

// Register godoc
// @Summary Register a new user
// @Description Creates an account and returns its token. A valid teacher code grants staff rights.
// @Tags auth
// @Accept json
// @Produce json
// @Param user body dto.RegisterInput true "User registration data"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /auth/register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := bind(c, &input); err != nil {
		return err
	}

	db := ac.DB.WithContext(c.UserContext())

	taken, err := exists(db, &models.User{}, "username = ?", input.Username)
	if err != nil {
		return err
	}
	if taken {
		return utils.NewValidationError("username", "A user with that username already exists.")
	}

	user := input.User()
	if err := user.SetPassword(input.Password); err != nil {
		return err
	}

	var key string
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		key, err = ac.issueToken(tx, user.ID)
		return err
	})
	if err != nil {
		return err
	}

	return c.JSON(dto.AuthResponse{
		Message: "Account created",
		User:    dto.NewUserResponse(user),
		Token:   key,
	})
}

// Login godoc
// @Summary User login
// @Description Authenticate user and return the user's token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginInput true "Login credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := decode(c, &input); err != nil {
		return err
	}

	db := ac.DB.WithContext(c.UserContext())

	var user models.User
	err := db.Where(&models.User{Username: input.Username}).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !user.CheckPassword(input.Password)) {
		return utils.BadRequest(c, "Invalid Credentials")
	}
	if err != nil {
		return err
	}

	key, err := ac.issueToken(db, user.ID)
	if err != nil {
		return err
	}

	return c.JSON(dto.AuthResponse{
		Message: "Login Successful",
		User:    dto.NewUserResponse(user),
		Token:   key,
	})
}

// issueToken returns the user's stored key, creating it on first use.
func (ac *AuthController) issueToken(db *gorm.DB, userID uint) (string, error) {
	var token models.AuthToken
	err := db.Where(&models.AuthToken{UserID: userID}).First(&token).Error
	if err == nil {
		return token.Key, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	key, err := utils.GenerateToken(userID, ac.Cfg.JWTSecret)
	if err != nil {
		return "", err
	}
	token = models.AuthToken{Key: key, UserID: userID}
	if err := db.Omit(clause.Associations).Create(&token).Error; err != nil {
		return "", err
	}
	return key, nil
}
