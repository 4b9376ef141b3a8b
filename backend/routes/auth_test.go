package routes_test

import (
	"net/http/httptest"
	"testing"

	"eduforge/backend/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	s := newTestServer(t)

	result := s.call(t, fiber.MethodPost, "/api/auth/register", map[string]interface{}{
		"username": "newuser",
		"email":    "newuser@example.com",
		"password": "password123",
	}, "", fiber.StatusOK)

	assert.Equal(t, "Account created", result["message"])
	assert.NotEmpty(t, result["token"])
	user := result["user"].(map[string]interface{})
	assert.Equal(t, "newuser", user["username"])
	assert.Equal(t, "newuser@example.com", user["email"])
	assert.Equal(t, false, user["is_staff"])
	assert.NotContains(t, user, "password")
}

func TestRegisterTeacherCode(t *testing.T) {
	s := newTestServer(t)

	cases := []struct {
		name  string
		code  string
		staff bool
	}{
		{"valid code", "TEACHER2025", true},
		{"wrong code", "teacher2025", false},
		{"no code", "", false},
	}
	for i, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := s.call(t, fiber.MethodPost, "/api/auth/register", map[string]interface{}{
				"username":     "user" + string(rune('a'+i)),
				"password":     "password123",
				"teacher_code": tc.code,
			}, "", fiber.StatusOK)
			assert.Equal(t, tc.staff, result["user"].(map[string]interface{})["is_staff"])
		})
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "taken", nil)

	result := s.call(t, fiber.MethodPost, "/api/auth/register", map[string]interface{}{
		"username": "taken",
		"password": "other-pass",
	}, "", fiber.StatusBadRequest)

	assert.Equal(t, false, result["success"])
	assert.Equal(t, "A user with that username already exists.", details(t, result)["username"])
	assert.NotContains(t, result, "token")
}

func TestRegisterValidation(t *testing.T) {
	s := newTestServer(t)

	result := s.call(t, fiber.MethodPost, "/api/auth/register", map[string]interface{}{
		"username": "bad name!",
	}, "", fiber.StatusBadRequest)

	d := details(t, result)
	assert.Contains(t, d["username"], "Enter a valid username")
	assert.Equal(t, "This field is required.", d["password"])
}

func TestRegisterAndLoginAliases(t *testing.T) {
	s := newTestServer(t)

	registered := s.call(t, fiber.MethodPost, "/api/register", map[string]interface{}{
		"username": "alias",
		"password": "password123",
	}, "", fiber.StatusOK)
	loggedIn := s.call(t, fiber.MethodPost, "/api/login", map[string]interface{}{
		"username": "alias",
		"password": "password123",
	}, "", fiber.StatusOK)

	assert.Equal(t, registered["token"], loggedIn["token"])
}

func TestLoginReturnsSameToken(t *testing.T) {
	s := newTestServer(t)
	_, token := s.register(t, "student", nil)

	creds := map[string]interface{}{"username": "student", "password": "secret-pass"}
	first := s.call(t, fiber.MethodPost, "/api/auth/login", creds, "", fiber.StatusOK)
	second := s.call(t, fiber.MethodPost, "/api/auth/login", creds, "", fiber.StatusOK)

	assert.Equal(t, "Login Successful", first["message"])
	assert.Equal(t, token, first["token"])
	assert.Equal(t, token, second["token"])
	assert.Equal(t, "student", first["user"].(map[string]interface{})["username"])
}

func TestRepeatedLoginNotThrottledByDefault(t *testing.T) {
	s := newTestServer(t)
	_, token := s.register(t, "student", nil)

	for i := 0; i < 25; i++ {
		result := s.call(t, fiber.MethodPost, "/api/auth/login", map[string]interface{}{
			"username": "student",
			"password": "secret-pass",
		}, "", fiber.StatusOK)
		assert.Equal(t, token, result["token"])
	}
}

func TestAuthRateLimit(t *testing.T) {
	s := newTestServer(t, func(cfg *config.Config) { cfg.AuthRateLimit = 3 })
	creds := map[string]interface{}{"username": "student", "password": "secret-pass"}

	// register and both login routes draw from one budget
	s.register(t, "student", nil)
	s.call(t, fiber.MethodPost, "/api/auth/login", creds, "", fiber.StatusOK)
	s.call(t, fiber.MethodPost, "/api/login", creds, "", fiber.StatusOK)

	result := s.call(t, fiber.MethodPost, "/api/auth/login", creds, "", fiber.StatusTooManyRequests)
	assert.Equal(t, "Request was throttled.", result["error"])
	assert.Nil(t, result["token"])

	// other routes are not limited
	assert.Empty(t, s.list(t, "/api/courses"))
}

func TestLoginInvalidCredentials(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "student", nil)

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "student", "nope"},
		{"unknown user", "ghost", "secret-pass"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := s.call(t, fiber.MethodPost, "/api/auth/login", map[string]interface{}{
				"username": tc.username,
				"password": tc.password,
			}, "", fiber.StatusBadRequest)
			assert.Equal(t, "Invalid Credentials", result["error"])
			assert.NotContains(t, result, "token")
		})
	}
}

func TestGetProfile(t *testing.T) {
	s := newTestServer(t)
	id, token := s.register(t, "testuser", map[string]interface{}{"email": "test@example.com"})

	s.call(t, fiber.MethodGet, "/api/auth/me", nil, "", fiber.StatusUnauthorized)

	result := s.call(t, fiber.MethodGet, "/api/auth/me", nil, token, fiber.StatusOK)
	assert.Equal(t, float64(id), result["id"])
	assert.Equal(t, "testuser", result["username"])
	assert.Equal(t, "test@example.com", result["email"])

	req := httptest.NewRequest(fiber.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestInvalidTokenRejected(t *testing.T) {
	s := newTestServer(t)

	result := s.call(t, fiber.MethodGet, "/api/courses", nil, "not-a-token", fiber.StatusUnauthorized)
	assert.Equal(t, "Invalid token.", result["error"])

	// anonymous access stays open
	assert.Empty(t, s.list(t, "/api/courses"))
}

func TestUpdateProfile(t *testing.T) {
	s := newTestServer(t)
	_, token := s.register(t, "student", map[string]interface{}{"email": "old@example.com"})

	result := s.call(t, fiber.MethodPatch, "/api/auth/me", map[string]interface{}{
		"first_name": "Grace",
	}, token, fiber.StatusOK)
	assert.Equal(t, "Grace", result["first_name"])
	assert.Equal(t, "old@example.com", result["email"])

	result = s.call(t, fiber.MethodPatch, "/api/auth/me", map[string]interface{}{
		"new_password": "fresh-pass",
	}, token, fiber.StatusBadRequest)
	assert.Contains(t, details(t, result), "old_password")

	result = s.call(t, fiber.MethodPatch, "/api/auth/me", map[string]interface{}{
		"old_password": "wrong",
		"new_password": "fresh-pass",
	}, token, fiber.StatusBadRequest)
	assert.Equal(t, "Wrong password.", details(t, result)["old_password"])

	s.call(t, fiber.MethodPatch, "/api/auth/me", map[string]interface{}{
		"old_password": "secret-pass",
		"new_password": "fresh-pass",
	}, token, fiber.StatusOK)

	s.call(t, fiber.MethodPost, "/api/auth/login", map[string]interface{}{
		"username": "student",
		"password": "fresh-pass",
	}, "", fiber.StatusOK)
}
