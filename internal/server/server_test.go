package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/noah-isme/lms-admin-api/pkg/config"
)

type apiClient struct {
	t       *testing.T
	handler http.Handler
	token   string
}

func newTestServer(t *testing.T) *apiClient {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Env:      "test",
		Database: config.DatabaseConfig{Path: ":memory:"},
		Admin:    config.AdminConfig{Name: "Admin", Email: "admin@lms.local", Password: "admin123"},
		Metrics:  config.MetricsConfig{Enabled: true},
	}
	srv, err := New(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Close() })

	return &apiClient{t: t, handler: srv.Handler()}
}

func (a *apiClient) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var payload []byte
	switch v := body.(type) {
	case nil:
	case string:
		payload = []byte(v)
	default:
		var err error
		payload, err = json.Marshal(v)
		require.NoError(a.t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *apiClient) login() {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "ADMIN@lms.local",
		"password": "admin123",
	})
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())
	var body struct {
		Token string `json:"token"`
	}
	decode(a.t, rec, &body)
	require.NotEmpty(a.t, body.Token)
	a.token = body.Token
}

func (a *apiClient) create(path string, payload interface{}) int64 {
	a.t.Helper()
	rec := a.do(http.MethodPost, path, payload)
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	var body struct {
		ID int64 `json:"id"`
	}
	decode(a.t, rec, &body)
	require.Positive(a.t, body.ID)
	return body.ID
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	decode(t, rec, &body)
	return body.Error
}

func TestHealthIsPublic(t *testing.T) {
	api := newTestServer(t)

	rec := api.do(http.MethodGet, "/api/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestSecuredRoutesRequireSession(t *testing.T) {
	api := newTestServer(t)

	rec := api.do(http.MethodGet, "/api/students", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	api.token = "not-a-token"
	rec = api.do(http.MethodGet, "/api/dashboard", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginMeLogout(t *testing.T) {
	api := newTestServer(t)

	rec := api.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "admin@lms.local", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(http.MethodPost, "/api/auth/login", `{"email":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	api.login()

	rec = api.do(http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me struct {
		Admin struct {
			Email string `json:"email"`
		} `json:"admin"`
	}
	decode(t, rec, &me)
	assert.Equal(t, "admin@lms.local", me.Admin.Email)

	rec = api.do(http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = api.do(http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestStudentLifecycle(t *testing.T) {
	api := newTestServer(t)
	api.login()

	id := api.create("/api/students", map[string]string{"full_name": "Ann Lee"})

	rec := api.do(http.MethodGet, "/api/students/"+itoa(id), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		Student struct {
			FullName string  `json:"full_name"`
			Email    *string `json:"email"`
			Status   string  `json:"status"`
		} `json:"student"`
	}
	decode(t, rec, &got)
	assert.Equal(t, "Ann Lee", got.Student.FullName)
	assert.Nil(t, got.Student.Email)
	assert.Equal(t, "active", got.Student.Status)

	rec = api.do(http.MethodPut, "/api/students/"+itoa(id), map[string]string{"status": "inactive"})
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &got)
	assert.Equal(t, "Ann Lee", got.Student.FullName)
	assert.Equal(t, "inactive", got.Student.Status)

	rec = api.do(http.MethodDelete, "/api/students/"+itoa(id), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(http.MethodGet, "/api/students/"+itoa(id), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Student not found", errorMessage(t, rec))
}

func TestStudentValidationAndConflicts(t *testing.T) {
	api := newTestServer(t)
	api.login()

	api.create("/api/students", map[string]string{"full_name": "Ann Lee", "email": "ann@example.com"})

	rec := api.do(http.MethodPost, "/api/students", map[string]string{"full_name": "Other", "email": "ANN@example.com"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = api.do(http.MethodPost, "/api/students", map[string]string{"full_name": "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodPost, "/api/students", `{"full_name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodGet, "/api/students/abc", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListPagingIsClamped(t *testing.T) {
	api := newTestServer(t)
	api.login()

	for _, name := range []string{"Ann Lee", "Budi Santoso", "Citra Dewi"} {
		api.create("/api/students", map[string]string{"full_name": name})
	}

	rec := api.do(http.MethodGet, "/api/students?page=0&limit=1000", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var page struct {
		Data  []json.RawMessage `json:"data"`
		Total int               `json:"total"`
		Page  int               `json:"page"`
		Limit int               `json:"limit"`
	}
	decode(t, rec, &page)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 100, page.Limit)
	assert.Equal(t, 3, page.Total)
	assert.Len(t, page.Data, 3)

	rec = api.do(http.MethodGet, "/api/students?search=budi&limit=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &page)
	assert.Equal(t, 1, page.Total)
	assert.Len(t, page.Data, 1)
}

func TestEnrollmentAndAttendanceRules(t *testing.T) {
	api := newTestServer(t)
	api.login()

	teacher := api.create("/api/teachers", map[string]string{"full_name": "Dewi Lestari"})
	course := api.create("/api/courses", map[string]interface{}{"name": "Conversation A1", "teacher_id": teacher, "price": 150})
	student := api.create("/api/students", map[string]string{"full_name": "Ann Lee"})

	rec := api.do(http.MethodPost, "/api/attendance", map[string]interface{}{
		"student_id": student, "course_id": course, "attendance_date": "2026-10-01",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	enrollment := api.create("/api/enroll", map[string]interface{}{"student_id": student, "course_id": course})

	rec = api.do(http.MethodGet, "/api/enroll/"+itoa(enrollment), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		Enrollment struct {
			TeacherID   *int64  `json:"teacher_id"`
			StartDate   *string `json:"start_date"`
			Status      string  `json:"status"`
			StudentName string  `json:"student_name"`
			CourseName  string  `json:"course_name"`
		} `json:"enrollment"`
	}
	decode(t, rec, &got)
	require.NotNil(t, got.Enrollment.TeacherID)
	assert.Equal(t, teacher, *got.Enrollment.TeacherID)
	assert.NotNil(t, got.Enrollment.StartDate)
	assert.Equal(t, "active", got.Enrollment.Status)
	assert.Equal(t, "Ann Lee", got.Enrollment.StudentName)
	assert.Equal(t, "Conversation A1", got.Enrollment.CourseName)

	rec = api.do(http.MethodPost, "/api/enroll", map[string]interface{}{"student_id": student, "course_id": course})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = api.do(http.MethodPost, "/api/enroll", map[string]interface{}{"student_id": student + 100, "course_id": course})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	attendance := map[string]interface{}{
		"student_id": student, "course_id": course, "attendance_date": "2026-10-01", "status": "late",
	}
	api.create("/api/attendance", attendance)

	rec = api.do(http.MethodPost, "/api/attendance", attendance)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = api.do(http.MethodGet, "/api/attendance?date=2026-10-01", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var page struct {
		Total int `json:"total"`
	}
	decode(t, rec, &page)
	assert.Equal(t, 1, page.Total)

	rec = api.do(http.MethodGet, "/api/courses/"+itoa(course), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var detail struct {
		Course struct {
			TeacherName   *string `json:"teacher_name"`
			EnrolledCount int     `json:"enrolled_count"`
		} `json:"course"`
		Enrollments []json.RawMessage `json:"enrollments"`
	}
	decode(t, rec, &detail)
	require.NotNil(t, detail.Course.TeacherName)
	assert.Equal(t, "Dewi Lestari", *detail.Course.TeacherName)
	assert.Equal(t, 1, detail.Course.EnrolledCount)
	assert.Len(t, detail.Enrollments, 1)

	rec = api.do(http.MethodDelete, "/api/students/"+itoa(student), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(http.MethodGet, "/api/enroll/"+itoa(enrollment), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDashboardAndMetrics(t *testing.T) {
	api := newTestServer(t)
	api.login()

	api.create("/api/students", map[string]string{"full_name": "Ann Lee"})

	rec := api.do(http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var summary struct {
		Stats struct {
			Students struct {
				Total int `json:"total"`
			} `json:"students"`
		} `json:"stats"`
		RecentStudents []json.RawMessage `json:"recentStudents"`
	}
	decode(t, rec, &summary)
	assert.Equal(t, 1, summary.Stats.Students.Total)
	assert.Len(t, summary.RecentStudents, 1)

	rec = api.do(http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",route="/api/dashboard",status="200"} 1`)
	assert.Contains(t, rec.Body.String(), `auth_login_attempts_total{result="success"} 1`)
}

func TestStudentExport(t *testing.T) {
	api := newTestServer(t)
	api.login()

	api.create("/api/students", map[string]string{"full_name": "Ann Lee", "email": "ann@example.com"})

	rec := api.do(http.MethodGet, "/api/students/export?format=csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/csv"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "students-")
	assert.Contains(t, rec.Body.String(), "ann@example.com")

	rec = api.do(http.MethodGet, "/api/students/export?format=xlsx", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
