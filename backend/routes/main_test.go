package routes_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"eduforge/backend/config"
	"eduforge/backend/routes"
	"eduforge/backend/storage"
	"eduforge/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testServer struct {
	app *fiber.App
	db  *gorm.DB
	cfg *config.Config
}

// newTestServer wires the full app against a private in-memory database and
// a temporary media directory. opts adjust the config before the app is built.
func newTestServer(t *testing.T, opts ...func(*config.Config)) *testServer {
	t.Helper()

	cfg := &config.Config{
		DBDriver:     config.DriverSQLite,
		DBPath:       ":memory:",
		JWTSecret:    "testsecret",
		ServerPort:   "8080",
		MediaBackend: config.MediaLocal,
		MediaRoot:    t.TempDir(),
		MediaURL:     "/media",
		LogMode:      "development",
		CORSOrigins:  "*",
	}
	for _, opt := range opts {
		opt(cfg)
	}
	logger := utils.NopLogger()

	db, err := utils.InitDB(cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	store, err := storage.NewLocalStore(cfg.MediaRoot, cfg.MediaURL)
	require.NoError(t, err)

	return &testServer{app: routes.NewApp(db, cfg, store, logger), db: db, cfg: cfg}
}

func (s *testServer) send(t *testing.T, req *http.Request, token string) *http.Response {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (s *testServer) request(t *testing.T, method, path string, body interface{}, token string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.send(t, req, token)
}

// call performs a JSON request, asserts the status and decodes the object
// in the response.
func (s *testServer) call(t *testing.T, method, path string, body interface{}, token string, status int) map[string]interface{} {
	t.Helper()
	resp := s.request(t, method, path, body, token)
	require.Equal(t, status, resp.StatusCode, "%s %s", method, path)
	if status == fiber.StatusNoContent {
		return nil
	}
	var out map[string]interface{}
	decodeBody(t, resp, &out)
	return out
}

func (s *testServer) list(t *testing.T, path string) []interface{} {
	t.Helper()
	resp := s.request(t, fiber.MethodGet, path, nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var out []interface{}
	decodeBody(t, resp, &out)
	return out
}

// multipartRequest builds a form with fields and, when fileField is set, one
// file part.
func multipartRequest(t *testing.T, method, path string, fields map[string]string, fileField, fileName, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileField != "" {
		part, err := w.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func idOf(t *testing.T, m map[string]interface{}) uint {
	t.Helper()
	id, ok := m["id"].(float64)
	require.True(t, ok, "missing id in %v", m)
	return uint(id)
}

func itemPath(prefix string, id uint) string {
	return prefix + "/" + strconv.FormatUint(uint64(id), 10)
}

func details(t *testing.T, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	require.Equal(t, "Validation Error", body["error"])
	d, ok := body["details"].(map[string]interface{})
	require.True(t, ok, "missing details in %v", body)
	return d
}

func (s *testServer) register(t *testing.T, username string, extra map[string]interface{}) (uint, string) {
	t.Helper()
	body := map[string]interface{}{"username": username, "password": "secret-pass"}
	for k, v := range extra {
		body[k] = v
	}
	out := s.call(t, fiber.MethodPost, "/api/auth/register", body, "", fiber.StatusOK)
	user := out["user"].(map[string]interface{})
	return idOf(t, user), out["token"].(string)
}

func (s *testServer) createCourse(t *testing.T, title string) uint {
	t.Helper()
	out := s.call(t, fiber.MethodPost, "/api/courses", map[string]interface{}{
		"title":           title,
		"instructor_name": "Ada Lovelace",
	}, "", fiber.StatusCreated)
	return idOf(t, out)
}

func (s *testServer) createLesson(t *testing.T, courseID uint, title string) uint {
	t.Helper()
	out := s.call(t, fiber.MethodPost, "/api/lessons", map[string]interface{}{
		"course": courseID,
		"title":  title,
	}, "", fiber.StatusCreated)
	return idOf(t, out)
}
