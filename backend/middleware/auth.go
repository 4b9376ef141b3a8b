package middleware

import (
	"errors"

	"eduforge/backend/config"
	"eduforge/backend/models"
	"eduforge/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const userKey = "user"

// AuthMiddleware resolves the Authorization header to a user and stores it
// on the request. Requests without a header pass through anonymously; a
// header that does not resolve is rejected.
func AuthMiddleware(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return c.Next()
		}

		key, ok := utils.ExtractToken(header)
		if !ok {
			return utils.Unauthorized(c, "Invalid token header.")
		}
		if _, err := utils.ParseToken(key, cfg.JWTSecret); err != nil {
			return utils.Unauthorized(c, "Invalid token.")
		}

		var token models.AuthToken
		err := db.WithContext(c.UserContext()).Preload("User").Where(&models.AuthToken{Key: key}).First(&token).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Unauthorized(c, "Invalid token.")
		}
		if err != nil {
			return err
		}

		c.Locals(userKey, &token.User)
		return c.Next()
	}
}

// RequireAuth rejects anonymous requests. It must run after AuthMiddleware.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := CurrentUser(c); !ok {
			return utils.Unauthorized(c, "Authentication credentials were not provided.")
		}
		return c.Next()
	}
}

// CurrentUser returns the authenticated caller, if any.
func CurrentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(userKey).(*models.User)
	return user, ok && user != nil
}
