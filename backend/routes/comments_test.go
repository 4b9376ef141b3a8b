package routes_test

import (
	"io"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestCommentDefaultsToCaller(t *testing.T) {
	s := newTestServer(t)
	userID, token := s.register(t, "student", nil)
	otherID, _ := s.register(t, "other", nil)

	comment := s.call(t, fiber.MethodPost, "/api/comments", map[string]interface{}{
		"text": "General question",
	}, token, fiber.StatusCreated)
	assert.Equal(t, float64(userID), comment["user"])
	assert.Equal(t, "student", comment["username"])
	assert.Nil(t, comment["lesson"])

	// an explicit user wins over the caller
	comment = s.call(t, fiber.MethodPost, "/api/comments", map[string]interface{}{
		"user": otherID,
		"text": "On behalf",
	}, token, fiber.StatusCreated)
	assert.Equal(t, "other", comment["username"])

	result := s.call(t, fiber.MethodPost, "/api/comments", map[string]interface{}{
		"text": "Anonymous",
	}, "", fiber.StatusBadRequest)
	assert.Equal(t, "This field is required.", details(t, result)["user"])
}

func TestDeviceDuplicateToken(t *testing.T) {
	s := newTestServer(t)
	_, token := s.register(t, "student", nil)

	device := s.call(t, fiber.MethodPost, "/api/devices", map[string]interface{}{
		"token": "ExponentPushToken[abc]",
	}, "", fiber.StatusCreated)
	assert.Equal(t, "expo", device["device_type"])
	assert.Nil(t, device["user"])

	for _, caller := range []string{"", token} {
		result := s.call(t, fiber.MethodPost, "/api/devices", map[string]interface{}{
			"token":       "ExponentPushToken[abc]",
			"device_type": "fcm",
		}, caller, fiber.StatusBadRequest)
		assert.Equal(t, "device with this token already exists.", details(t, result)["token"])
	}
	assert.Len(t, s.list(t, "/api/devices"), 1)
}

func TestDeviceBoundToCaller(t *testing.T) {
	s := newTestServer(t)
	userID, token := s.register(t, "student", nil)
	otherID, _ := s.register(t, "other", nil)

	device := s.call(t, fiber.MethodPost, "/api/devices", map[string]interface{}{
		"user":        otherID,
		"token":       "apns-token",
		"device_type": "apns",
	}, token, fiber.StatusCreated)
	assert.Equal(t, float64(userID), device["user"])
	assert.Equal(t, "apns", device["device_type"])

	result := s.call(t, fiber.MethodPost, "/api/devices", map[string]interface{}{
		"token":       "x",
		"device_type": "sms",
	}, "", fiber.StatusBadRequest)
	assert.Contains(t, details(t, result), "device_type")
}

func TestNotificationMarkRead(t *testing.T) {
	s := newTestServer(t)
	userID, _ := s.register(t, "student", nil)

	notification := s.call(t, fiber.MethodPost, "/api/notifications", map[string]interface{}{
		"user":    userID,
		"title":   "Graded",
		"message": "Your project was graded",
	}, "", fiber.StatusCreated)
	assert.Equal(t, false, notification["is_read"])
	p := itemPath("/api/notifications", idOf(t, notification))

	result := s.call(t, fiber.MethodPost, p+"/mark_read", nil, "", fiber.StatusOK)
	assert.Equal(t, "marked read", result["status"])

	notification = s.call(t, fiber.MethodGet, p, nil, "", fiber.StatusOK)
	assert.Equal(t, true, notification["is_read"])

	// marking twice is harmless
	s.call(t, fiber.MethodPost, p+"/mark_read", nil, "", fiber.StatusOK)

	result = s.call(t, fiber.MethodPost, "/api/notifications/999/mark_read", nil, "", fiber.StatusNotFound)
	assert.Equal(t, "Notification not found", result["error"])
}

func TestDeleteUserCascades(t *testing.T) {
	s := newTestServer(t)
	userID, token := s.register(t, "student", nil)
	s.call(t, fiber.MethodPost, "/api/notifications", map[string]interface{}{
		"user": userID, "title": "t", "message": "m",
	}, "", fiber.StatusCreated)
	s.call(t, fiber.MethodPost, "/api/devices", map[string]interface{}{"token": "tok"}, token, fiber.StatusCreated)
	s.call(t, fiber.MethodPost, "/api/comments", map[string]interface{}{"text": "hi"}, token, fiber.StatusCreated)

	assert.NoError(t, s.db.Exec("DELETE FROM users WHERE id = ?", userID).Error)

	assert.Empty(t, s.list(t, "/api/notifications"))
	assert.Empty(t, s.list(t, "/api/devices"))
	assert.Empty(t, s.list(t, "/api/comments"))
}

func TestRootAndHealth(t *testing.T) {
	s := newTestServer(t)

	for p, want := range map[string]string{
		"/":       "EduForge Backend is Running!",
		"/health": "ok",
	} {
		resp := s.request(t, fiber.MethodGet, p, nil, "")
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		assert.NoError(t, err)
		assert.Equal(t, want, string(body))
	}
}
