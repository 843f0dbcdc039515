package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lms-admin-api/internal/dto"
	"github.com/noah-isme/lms-admin-api/internal/models"
)

type fakeDashboardService struct {
	summary *dto.DashboardResponse
	err     error
}

func (f *fakeDashboardService) Summary(context.Context) (*dto.DashboardResponse, error) {
	return f.summary, f.err
}

func TestDashboardHandlerSummary(t *testing.T) {
	svc := &fakeDashboardService{summary: &dto.DashboardResponse{
		Stats:          models.DashboardCounts{Students: models.EntityCount{Total: 3, Active: 2}},
		AttendanceRate: 75,
		RecentStudents: []models.Student{},
		TopCourses:     []dto.TopCourse{{ID: 1, Name: "Conversation A1", Enrolled: 3, Capacity: 20, Progress: 15}},
	}}
	r := newRouter()
	r.GET("/dashboard", NewDashboardHandler(svc).Summary)

	rec := perform(r, http.MethodGet, "/dashboard", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body dto.DashboardResponse
	decodeBody(t, rec, &body)
	assert.Equal(t, 3, body.Stats.Students.Total)
	assert.Equal(t, 75, body.AttendanceRate)
	require.Len(t, body.TopCourses, 1)
	assert.Equal(t, 20, body.TopCourses[0].Capacity)
}

func TestDashboardHandlerHidesInternalErrors(t *testing.T) {
	r := newRouter()
	r.GET("/dashboard", NewDashboardHandler(&fakeDashboardService{err: errors.New("disk I/O error")}).Summary)

	rec := perform(r, http.MethodGet, "/dashboard", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "disk")
}

func TestHealth(t *testing.T) {
	r := newRouter()
	r.GET("/health", NewMetricsHandler(nil).Health)

	rec := perform(r, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
