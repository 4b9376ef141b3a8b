package middleware

import (
	"net/http/httptest"
	"testing"

	"eduforge/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggingMiddlewareTagsRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := &utils.Logger{SugaredLogger: zap.New(core).Sugar()}

	app := fiber.New()
	app.Use(requestid.New())
	app.Use(LoggingMiddleware(logger))
	app.Get("/missing", func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})

	req := httptest.NewRequest(fiber.MethodGet, "/missing", nil)
	req.Header.Set(fiber.HeaderXRequestID, "req-42")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.Equal(t, "req-42", fields["request_id"])
	assert.Equal(t, "/missing", fields["path"])
	assert.EqualValues(t, fiber.StatusNotFound, fields["status"])
}
