package routes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yit/registration/internal/bootstrap"
	"github.com/yit/registration/internal/config"
	"github.com/yit/registration/internal/store"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Server.Mode = "production"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TokenExpiration = "1h"
	cfg.JWT.Issuer = "test"
	cfg.Logging.Level = "error"

	deps, err := bootstrap.BuildDependencies(cfg, store.NewMemoryStore(), zerolog.Nop())
	require.NoError(t, err)

	return bootstrap.SetupRouter(cfg, deps, zerolog.Nop())
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func registerFaculty(t *testing.T, router *gin.Engine) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/auth/register/faculty", "", gin.H{
		"facultyId":   "FAC2024001",
		"name":        "Dr. Priya Sharma",
		"email":       "priya@yituniversity.edu",
		"password":    "faculty123",
		"department":  "Computer Science",
		"designation": "Professor",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	decode(t, rec, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func registerStudent(t *testing.T, router *gin.Engine, n int) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/auth/register/student", "", gin.H{
		"studentId":  fmt.Sprintf("YIT%d", 2024000+n),
		"name":       "Rahul Verma",
		"email":      fmt.Sprintf("student%d@yituniversity.edu", n),
		"password":   "student123",
		"department": "Computer Science",
		"semester":   3,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	decode(t, rec, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func createCourse(t *testing.T, router *gin.Engine, facultyToken string, seats int) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/courses", facultyToken, gin.H{
		"courseCode": "CS301-S5",
		"courseName": "Database Management Systems",
		"department": "Computer Science",
		"credits":    4,
		"semester":   5,
		"totalSeats": seats,
		"slot":       "C",
		"schedule":   gin.H{"days": []string{"Monday"}, "time": "9:00 AM - 10:00 AM"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var course struct {
		ID string `json:"id"`
	}
	decode(t, rec, &course)
	require.NotEmpty(t, course.ID)
	return course.ID
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCourseCatalogIsPublic(t *testing.T) {
	router := newTestRouter(t)
	facultyToken := registerFaculty(t, router)
	createCourse(t, router, facultyToken, 30)

	rec := doJSON(t, router, http.MethodGet, "/api/courses", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var courses []map[string]interface{}
	decode(t, rec, &courses)
	require.Len(t, courses, 1)
	assert.Equal(t, "CS301-S5", courses[0]["courseCode"])
	// Seats figures are visible to anonymous browsers
	assert.EqualValues(t, 30, courses[0]["availableSeats"])
}

func TestCourseCreationRequiresFacultyRole(t *testing.T) {
	router := newTestRouter(t)
	studentToken := registerStudent(t, router, 1)

	body := gin.H{
		"courseCode": "CS301-S5",
		"courseName": "Database Management Systems",
		"department": "Computer Science",
		"credits":    4,
		"semester":   5,
		"totalSeats": 30,
		"slot":       "C",
	}

	rec := doJSON(t, router, http.MethodPost, "/api/courses", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/courses", studentToken, body)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRegistrationFlow(t *testing.T) {
	router := newTestRouter(t)
	facultyToken := registerFaculty(t, router)
	studentToken := registerStudent(t, router, 1)
	courseID := createCourse(t, router, facultyToken, 2)

	// Register
	rec := doJSON(t, router, http.MethodPost, "/api/registrations/register", studentToken, gin.H{"courseId": courseID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var view struct {
		Status string `json:"status"`
		Course struct {
			CourseCode string `json:"courseCode"`
		} `json:"course"`
	}
	decode(t, rec, &view)
	assert.Equal(t, "registered", view.Status)
	assert.Equal(t, "CS301-S5", view.Course.CourseCode)

	// Seat consumed
	rec = doJSON(t, router, http.MethodGet, "/api/courses/"+courseID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var course struct {
		AvailableSeats int `json:"availableSeats"`
	}
	decode(t, rec, &course)
	assert.Equal(t, 1, course.AvailableSeats)

	// Registering twice is a conflict
	rec = doJSON(t, router, http.MethodPost, "/api/registrations/register", studentToken, gin.H{"courseId": courseID})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// The registration shows up in the student's list
	rec = doJSON(t, router, http.MethodGet, "/api/registrations/my-courses", studentToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []json.RawMessage
	decode(t, rec, &mine)
	assert.Len(t, mine, 1)

	// Drop frees the seat
	rec = doJSON(t, router, http.MethodPost, "/api/registrations/drop", studentToken, gin.H{"courseId": courseID})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/courses/"+courseID, "", nil)
	decode(t, rec, &course)
	assert.Equal(t, 2, course.AvailableSeats)

	// Dropping again is a not-found
	rec = doJSON(t, router, http.MethodPost, "/api/registrations/drop", studentToken, gin.H{"courseId": courseID})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRegisterUnknownCourseReturnsNotFound(t *testing.T) {
	router := newTestRouter(t)
	studentToken := registerStudent(t, router, 1)

	rec := doJSON(t, router, http.MethodPost, "/api/registrations/register", studentToken, gin.H{"courseId": "missing"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFullCourseReturnsConflict(t *testing.T) {
	router := newTestRouter(t)
	facultyToken := registerFaculty(t, router)
	first := registerStudent(t, router, 1)
	second := registerStudent(t, router, 2)
	courseID := createCourse(t, router, facultyToken, 1)

	rec := doJSON(t, router, http.MethodPost, "/api/registrations/register", first, gin.H{"courseId": courseID})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/registrations/register", second, gin.H{"courseId": courseID})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAllRegistrationsIsFacultyOnly(t *testing.T) {
	router := newTestRouter(t)
	facultyToken := registerFaculty(t, router)
	studentToken := registerStudent(t, router, 1)
	courseID := createCourse(t, router, facultyToken, 30)

	rec := doJSON(t, router, http.MethodPost, "/api/registrations/register", studentToken, gin.H{"courseId": courseID})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/registrations/all", studentToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/registrations/all", facultyToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var all []json.RawMessage
	decode(t, rec, &all)
	assert.Len(t, all, 1)
}

func TestRegisterEndpointIsStudentOnly(t *testing.T) {
	router := newTestRouter(t)
	facultyToken := registerFaculty(t, router)
	courseID := createCourse(t, router, facultyToken, 30)

	rec := doJSON(t, router, http.MethodPost, "/api/registrations/register", facultyToken, gin.H{"courseId": courseID})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestValidationErrorsReturnBadRequest(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/auth/register/student", "", gin.H{
		"name": "x",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginEndpoint(t *testing.T) {
	router := newTestRouter(t)
	registerStudent(t, router, 1)

	rec := doJSON(t, router, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "student1@yituniversity.edu",
		"password": "student123",
		"role":     "student",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "student1@yituniversity.edu",
		"password": "wrong-password",
		"role":     "student",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProfileEndpoints(t *testing.T) {
	router := newTestRouter(t)
	studentToken := registerStudent(t, router, 1)

	rec := doJSON(t, router, http.MethodGet, "/api/students/me", studentToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var profile map[string]interface{}
	decode(t, rec, &profile)
	assert.Equal(t, "Rahul Verma", profile["name"])
	// The hash never leaves the server
	assert.NotContains(t, profile, "password")

	rec = doJSON(t, router, http.MethodPut, "/api/students/me", studentToken, gin.H{"phone": "+91 9000000000"})
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &profile)
	assert.Equal(t, "+91 9000000000", profile["phone"])
}

func TestProfileLookupByID(t *testing.T) {
	router := newTestRouter(t)
	facultyToken := registerFaculty(t, router)
	studentToken := registerStudent(t, router, 1)
	courseID := createCourse(t, router, facultyToken, 2)

	rec := doJSON(t, router, http.MethodGet, "/api/students/me", studentToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var profile map[string]interface{}
	decode(t, rec, &profile)
	studentID, _ := profile["id"].(string)
	require.NotEmpty(t, studentID)

	rec = doJSON(t, router, http.MethodPost, "/api/registrations/register", studentToken, gin.H{"courseId": courseID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Any authenticated account can look up a student by id
	rec = doJSON(t, router, http.MethodGet, "/api/students/"+studentID, facultyToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &profile)
	assert.Equal(t, "Rahul Verma", profile["name"])
	assert.NotContains(t, profile, "password")

	rec = doJSON(t, router, http.MethodGet, "/api/students/"+studentID+"/courses", facultyToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var registrations []map[string]interface{}
	decode(t, rec, &registrations)
	require.Len(t, registrations, 1)
	course, ok := registrations[0]["course"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, courseID, course["id"])

	rec = doJSON(t, router, http.MethodGet, "/api/students/no-such-student", facultyToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/students/"+studentID, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestFacultyLookupByID(t *testing.T) {
	router := newTestRouter(t)
	facultyToken := registerFaculty(t, router)
	studentToken := registerStudent(t, router, 1)
	courseID := createCourse(t, router, facultyToken, 5)

	rec := doJSON(t, router, http.MethodGet, "/api/faculty", studentToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var members []map[string]interface{}
	decode(t, rec, &members)
	require.Len(t, members, 1)
	facultyID, _ := members[0]["id"].(string)
	require.NotEmpty(t, facultyID)

	rec = doJSON(t, router, http.MethodGet, "/api/faculty/"+facultyID, studentToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var profile map[string]interface{}
	decode(t, rec, &profile)
	assert.Equal(t, "Dr. Priya Sharma", profile["name"])
	assert.NotContains(t, profile, "password")

	rec = doJSON(t, router, http.MethodGet, "/api/faculty/"+facultyID+"/courses", studentToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var courses []map[string]interface{}
	decode(t, rec, &courses)
	require.Len(t, courses, 1)
	assert.Equal(t, courseID, courses[0]["id"])
}

func TestStudentListIsAuthenticated(t *testing.T) {
	router := newTestRouter(t)
	studentToken := registerStudent(t, router, 1)

	rec := doJSON(t, router, http.MethodGet, "/api/students", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/students", studentToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var students []map[string]interface{}
	decode(t, rec, &students)
	require.Len(t, students, 1)
	assert.NotContains(t, students[0], "password")
}
