package utils

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ErrorResponse структура для ошибок
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Message string      `json:"message,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// Fail writes an error body whose "error" field is message itself. Used where
// clients match on the exact text.
func Fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(ErrorResponse{
		Success: false,
		Error:   message,
	})
}

// ValidationErrorResponse создает JSON ответ для ошибок валидации
func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Success: false,
		Error:   "Validation Error",
		Details: errors,
	})
}

// Created отправляет ответ 201 Created
func Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

// NoContent отправляет ответ 204 No Content
func NoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

// NotFound отправляет ответ 404 Not Found
func NotFound(c *fiber.Ctx, message string) error {
	return Fail(c, fiber.StatusNotFound, message)
}

// BadRequest отправляет ответ 400 Bad Request
func BadRequest(c *fiber.Ctx, message string) error {
	return Fail(c, fiber.StatusBadRequest, message)
}

// Unauthorized отправляет ответ 401 Unauthorized
func Unauthorized(c *fiber.Ctx, message string) error {
	return Fail(c, fiber.StatusUnauthorized, message)
}

// ErrorHandler renders errors returned by handlers. It is installed as the
// fiber app's ErrorHandler, so controllers can simply return domain errors.
func ErrorHandler(logger *Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return ValidationErrorResponse(c, verr.Fields)
		}

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFound(c, "Not found.")
		}

		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ValidationErrorResponse(c, map[string]string{
				NonFieldErrors: "A record with these values already exists.",
			})
		}

		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ValidationErrorResponse(c, map[string]string{
				NonFieldErrors: "A referenced object does not exist.",
			})
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			if fe.Code >= fiber.StatusInternalServerError {
				logger.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
			}
			return Fail(c, fe.Code, fe.Message)
		}

		logger.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
		return Fail(c, fiber.StatusInternalServerError, http.StatusText(fiber.StatusInternalServerError))
	}
}
