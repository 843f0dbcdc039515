package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lms-admin-api/internal/models"
	"github.com/noah-isme/lms-admin-api/internal/service"
	appErrors "github.com/noah-isme/lms-admin-api/pkg/errors"
)

type fakeCourseService struct {
	teacherID int64
	created   service.CreateCourseRequest
	detailErr error
}

func (f *fakeCourseService) List(_ context.Context, query service.ListQuery, teacherID int64) (models.Page[models.CourseDetail], error) {
	f.teacherID = teacherID
	return models.NewPage[models.CourseDetail](nil, 0, query.PageRequest()), nil
}

func (f *fakeCourseService) Detail(_ context.Context, id int64) (*service.CourseWithEnrollments, error) {
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	course := &models.CourseDetail{Course: models.Course{ID: id, Name: "Conversation A1"}, EnrolledCount: 1}
	return &service.CourseWithEnrollments{
		Course:      course,
		Enrollments: []models.EnrollmentDetail{{Enrollment: models.Enrollment{ID: 3, CourseID: id}, StudentName: "Ann Lee"}},
	}, nil
}

func (f *fakeCourseService) Create(_ context.Context, req service.CreateCourseRequest) (*models.CourseDetail, error) {
	f.created = req
	return &models.CourseDetail{Course: models.Course{ID: 5, Name: req.Name}}, nil
}

func (f *fakeCourseService) Update(_ context.Context, id int64, req service.UpdateCourseRequest) (*models.CourseDetail, error) {
	return &models.CourseDetail{Course: models.Course{ID: id}}, nil
}

func (f *fakeCourseService) Delete(context.Context, int64) error { return nil }

func courseRouter(svc *fakeCourseService) http.Handler {
	h := NewCourseHandler(svc)
	r := newRouter()
	r.GET("/courses", h.List)
	r.GET("/courses/:id", h.Get)
	r.POST("/courses", h.Create)
	return r
}

func TestCourseHandlerListTeacherFilter(t *testing.T) {
	svc := &fakeCourseService{}
	r := courseRouter(svc)

	rec := perform(r, http.MethodGet, "/courses?teacher_id=4", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(4), svc.teacherID)
	assert.JSONEq(t, `{"data":[],"total":0,"page":1,"limit":10}`, rec.Body.String())

	perform(r, http.MethodGet, "/courses?teacher_id=x", "")
	assert.Zero(t, svc.teacherID)
}

func TestCourseHandlerGetIncludesEnrollments(t *testing.T) {
	r := courseRouter(&fakeCourseService{})

	rec := perform(r, http.MethodGet, "/courses/2", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Course      models.CourseDetail       `json:"course"`
		Enrollments []models.EnrollmentDetail `json:"enrollments"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, "Conversation A1", body.Course.Name)
	require.Len(t, body.Enrollments, 1)
	assert.Equal(t, "Ann Lee", body.Enrollments[0].StudentName)
}

func TestCourseHandlerGetMissing(t *testing.T) {
	r := courseRouter(&fakeCourseService{detailErr: appErrors.Clone(appErrors.ErrNotFound, "Course not found")})

	rec := perform(r, http.MethodGet, "/courses/2", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Course not found", errorOf(t, rec))
}

func TestCourseHandlerCreate(t *testing.T) {
	svc := &fakeCourseService{}
	r := courseRouter(svc)

	rec := perform(r, http.MethodPost, "/courses", `{"name":"Business English","price":250.5,"teacher_id":0}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Business English", svc.created.Name)
	require.NotNil(t, svc.created.Price)
	assert.InDelta(t, 250.5, *svc.created.Price, 0.001)
	require.NotNil(t, svc.created.TeacherID)
	assert.Zero(t, *svc.created.TeacherID)
}
