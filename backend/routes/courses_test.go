package routes_test

import (
	"strconv"
	"testing"

	"eduforge/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCourse(t *testing.T) {
	s := newTestServer(t)

	result := s.call(t, fiber.MethodPost, "/api/courses", map[string]interface{}{
		"title":           "Test Course",
		"description":     "Full description",
		"instructor_name": "Ada Lovelace",
	}, "", fiber.StatusCreated)

	assert.Equal(t, "Test Course", result["title"])
	assert.Equal(t, "Full description", result["description"])
	assert.NotEmpty(t, result["created_at"])
	for _, key := range []string{"lessons", "projects", "quizzes", "announcements"} {
		assert.Equal(t, []interface{}{}, result[key], key)
	}
}

func TestCreateCourseValidation(t *testing.T) {
	s := newTestServer(t)

	result := s.call(t, fiber.MethodPost, "/api/courses", map[string]interface{}{
		"description": "no title",
	}, "", fiber.StatusBadRequest)

	assert.Equal(t, false, result["success"])
	d := details(t, result)
	assert.Equal(t, "This field is required.", d["title"])
	assert.Equal(t, "This field is required.", d["instructor_name"])
	assert.Empty(t, s.list(t, "/api/courses"))
}

func TestFieldTypeMismatch(t *testing.T) {
	s := newTestServer(t)

	result := s.call(t, fiber.MethodPost, "/api/lessons", map[string]interface{}{
		"course": "abc",
		"title":  "Intro",
	}, "", fiber.StatusBadRequest)

	assert.Equal(t, "A valid integer is required.", details(t, result)["course"])
}

func TestUnknownReference(t *testing.T) {
	s := newTestServer(t)

	result := s.call(t, fiber.MethodPost, "/api/lessons", map[string]interface{}{
		"course": 999,
		"title":  "Orphan",
	}, "", fiber.StatusBadRequest)

	assert.Equal(t, `Invalid pk "999" - object does not exist.`, details(t, result)["course"])
	assert.Empty(t, s.list(t, "/api/lessons"))
}

func TestRetrieveMissing(t *testing.T) {
	s := newTestServer(t)

	for _, p := range []string{"/api/courses/42", "/api/courses/abc", "/api/quizzes/0"} {
		result := s.call(t, fiber.MethodGet, p, nil, "", fiber.StatusNotFound)
		assert.Equal(t, "Not found.", result["error"], p)
	}
	s.call(t, fiber.MethodDelete, "/api/lessons/42", nil, "", fiber.StatusNotFound)
}

func TestUpdateCourse(t *testing.T) {
	s := newTestServer(t)
	id := s.createCourse(t, "Go 101")
	p := itemPath("/api/courses", id)

	result := s.call(t, fiber.MethodPatch, p, map[string]interface{}{
		"title": "Go 102",
	}, "", fiber.StatusOK)
	assert.Equal(t, "Go 102", result["title"])
	assert.Equal(t, "Ada Lovelace", result["instructor_name"])

	result = s.call(t, fiber.MethodPut, p, map[string]interface{}{
		"title": "Go 103",
	}, "", fiber.StatusBadRequest)
	assert.Equal(t, "This field is required.", details(t, result)["instructor_name"])

	result = s.call(t, fiber.MethodGet, p, nil, "", fiber.StatusOK)
	assert.Equal(t, "Go 102", result["title"])

	result = s.call(t, fiber.MethodPut, p, map[string]interface{}{
		"title":           "Go 103",
		"instructor_name": "Rob Pike",
	}, "", fiber.StatusOK)
	assert.Equal(t, "Go 103", result["title"])
	assert.Equal(t, "Rob Pike", result["instructor_name"])
}

func TestPutResetsOmittedDefaults(t *testing.T) {
	s := newTestServer(t)
	courseID := s.createCourse(t, "Go 101")

	lesson := s.call(t, fiber.MethodPost, "/api/lessons", map[string]interface{}{
		"course":    courseID,
		"title":     "Channels",
		"order":     5,
		"video_url": "https://example.com/v.mp4",
	}, "", fiber.StatusCreated)
	assert.Equal(t, float64(5), lesson["order"])
	p := itemPath("/api/lessons", idOf(t, lesson))

	lesson = s.call(t, fiber.MethodPatch, p, map[string]interface{}{"title": "Select"}, "", fiber.StatusOK)
	assert.Equal(t, float64(5), lesson["order"])
	assert.Equal(t, "https://example.com/v.mp4", lesson["video_url"])

	lesson = s.call(t, fiber.MethodPut, p, map[string]interface{}{
		"course": courseID,
		"title":  "Select",
	}, "", fiber.StatusOK)
	assert.Equal(t, float64(1), lesson["order"])
	assert.Nil(t, lesson["video_url"])
}

func TestProjectDefaults(t *testing.T) {
	s := newTestServer(t)
	courseID := s.createCourse(t, "Go 101")

	project := s.call(t, fiber.MethodPost, "/api/projects", map[string]interface{}{
		"course":   courseID,
		"title":    "Build a CLI",
		"deadline": "2025-06-30",
	}, "", fiber.StatusCreated)
	assert.Equal(t, float64(100), project["points"])
	assert.Equal(t, "2025-06-30", project["deadline"])

	result := s.call(t, fiber.MethodPost, "/api/projects", map[string]interface{}{
		"course":   courseID,
		"title":    "Bad date",
		"deadline": "30/06/2025",
	}, "", fiber.StatusBadRequest)
	assert.Contains(t, details(t, result), "deadline")
}

func TestCourseNestedRepresentation(t *testing.T) {
	s := newTestServer(t)
	_, token := s.register(t, "student", nil)
	courseID := s.createCourse(t, "Go 101")
	lessonID := s.createLesson(t, courseID, "Goroutines")

	s.call(t, fiber.MethodPost, "/api/comments", map[string]interface{}{
		"lesson": lessonID,
		"text":   "Great lesson",
	}, token, fiber.StatusCreated)
	quiz := s.call(t, fiber.MethodPost, "/api/quizzes", map[string]interface{}{
		"course": courseID,
		"title":  "Quiz 1",
	}, "", fiber.StatusCreated)
	question := s.call(t, fiber.MethodPost, "/api/questions", map[string]interface{}{
		"quiz": idOf(t, quiz),
		"text": "What is a channel?",
	}, "", fiber.StatusCreated)
	s.call(t, fiber.MethodPost, "/api/choices", map[string]interface{}{
		"question":   idOf(t, question),
		"text":       "A typed conduit",
		"is_correct": true,
	}, "", fiber.StatusCreated)
	s.call(t, fiber.MethodPost, "/api/projects", map[string]interface{}{
		"course": courseID,
		"title":  "Pipeline",
	}, "", fiber.StatusCreated)
	s.call(t, fiber.MethodPost, "/api/announcements", map[string]interface{}{
		"course":  courseID,
		"title":   "Welcome",
		"content": "Hello class",
	}, "", fiber.StatusCreated)

	course := s.call(t, fiber.MethodGet, itemPath("/api/courses", courseID), nil, "", fiber.StatusOK)

	lessons := course["lessons"].([]interface{})
	require.Len(t, lessons, 1)
	lesson := lessons[0].(map[string]interface{})
	assert.Equal(t, float64(1), lesson["order"])
	comments := lesson["comments"].([]interface{})
	require.Len(t, comments, 1)
	assert.Equal(t, "student", comments[0].(map[string]interface{})["username"])
	assert.Equal(t, []interface{}{}, lesson["attachments"])

	quizzes := course["quizzes"].([]interface{})
	require.Len(t, quizzes, 1)
	questions := quizzes[0].(map[string]interface{})["questions"].([]interface{})
	require.Len(t, questions, 1)
	choices := questions[0].(map[string]interface{})["choices"].([]interface{})
	require.Len(t, choices, 1)
	assert.Equal(t, true, choices[0].(map[string]interface{})["is_correct"])

	assert.Len(t, course["projects"], 1)
	assert.Len(t, course["announcements"], 1)

	// questions embed their choices on their own endpoint too
	q := s.call(t, fiber.MethodGet, itemPath("/api/questions", idOf(t, question)), nil, "", fiber.StatusOK)
	assert.Len(t, q["choices"], 1)
}

func TestDeleteCourseCascades(t *testing.T) {
	s := newTestServer(t)
	studentID, token := s.register(t, "student", nil)
	courseID := s.createCourse(t, "Go 101")
	lessonID := s.createLesson(t, courseID, "Goroutines")

	s.call(t, fiber.MethodPost, "/api/comments", map[string]interface{}{"lesson": lessonID, "text": "hi"}, token, fiber.StatusCreated)
	attachment := s.upload(t, fiber.MethodPost, "/api/lesson-attachments", map[string]string{
		"lesson": strconv.Itoa(int(lessonID)),
	}, "file", "notes.txt", "notes", fiber.StatusCreated)
	require.FileExists(t, s.storedPath(t, attachment["file"].(string)))
	project := s.call(t, fiber.MethodPost, "/api/projects", map[string]interface{}{"course": courseID, "title": "P"}, "", fiber.StatusCreated)
	s.call(t, fiber.MethodPost, "/api/submissions", map[string]interface{}{
		"project":      idOf(t, project),
		"student_name": "Student",
		"github_link":  "https://github.com/student/p",
	}, "", fiber.StatusCreated)
	quiz := s.call(t, fiber.MethodPost, "/api/quizzes", map[string]interface{}{"course": courseID, "title": "Q"}, "", fiber.StatusCreated)
	question := s.call(t, fiber.MethodPost, "/api/questions", map[string]interface{}{"quiz": idOf(t, quiz), "text": "?"}, "", fiber.StatusCreated)
	s.call(t, fiber.MethodPost, "/api/choices", map[string]interface{}{"question": idOf(t, question), "text": "!"}, "", fiber.StatusCreated)
	s.call(t, fiber.MethodPost, "/api/announcements", map[string]interface{}{"course": courseID, "title": "A", "content": "B"}, "", fiber.StatusCreated)
	s.call(t, fiber.MethodPost, "/api/enrollments", map[string]interface{}{"student": studentID, "course": courseID}, "", fiber.StatusCreated)
	s.call(t, fiber.MethodPost, "/api/enrollments/mark_complete", map[string]interface{}{
		"student": studentID, "course": courseID, "lesson": lessonID,
	}, "", fiber.StatusOK)

	s.call(t, fiber.MethodDelete, itemPath("/api/courses", courseID), nil, "", fiber.StatusNoContent)

	for _, model := range []interface{}{
		&models.Course{}, &models.Lesson{}, &models.LessonAttachment{}, &models.Comment{}, &models.Project{},
		&models.Submission{}, &models.Quiz{}, &models.Question{}, &models.Choice{},
		&models.Announcement{}, &models.Enrollment{}, &models.EnrollmentLesson{},
	} {
		var n int64
		require.NoError(t, s.db.Model(model).Count(&n).Error)
		assert.Zero(t, n, "%T", model)
	}

	var users int64
	require.NoError(t, s.db.Model(&models.User{}).Count(&users).Error)
	assert.Equal(t, int64(1), users)
}
