package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lms-admin-api/internal/models"
)

type fakeDashboardRepo struct {
	counts      models.DashboardCounts
	totals      models.AttendanceTotals
	recent      []models.Student
	top         []models.CourseEnrollmentCount
	recentLimit int
	topLimit    int
	countsErr   error
}

func (f *fakeDashboardRepo) Counts(ctx context.Context) (models.DashboardCounts, error) {
	return f.counts, f.countsErr
}

func (f *fakeDashboardRepo) AttendanceTotals(ctx context.Context) (models.AttendanceTotals, error) {
	return f.totals, nil
}

func (f *fakeDashboardRepo) RecentStudents(ctx context.Context, limit int) ([]models.Student, error) {
	f.recentLimit = limit
	return f.recent, nil
}

func (f *fakeDashboardRepo) TopCourses(ctx context.Context, limit int) ([]models.CourseEnrollmentCount, error) {
	f.topLimit = limit
	return f.top, nil
}

func TestAttendanceRate(t *testing.T) {
	assert.Equal(t, 70, AttendanceRate(models.AttendanceTotals{Total: 10, Attended: 7}))
	assert.Equal(t, 0, AttendanceRate(models.AttendanceTotals{}))
	assert.Equal(t, 67, AttendanceRate(models.AttendanceTotals{Total: 3, Attended: 2}))
	assert.Equal(t, 100, AttendanceRate(models.AttendanceTotals{Total: 4, Attended: 4}))
}

func TestCourseCapacity(t *testing.T) {
	cases := []struct {
		enrolled int
		capacity int
		progress float64
	}{
		{0, 10, 0},
		{4, 10, 0.4},
		{5, 10, 0.5},
		{6, 11, 6.0 / 11},
		{30, 36, 30.0 / 36},
		{26, 32, 26.0 / 32},
	}
	for _, tc := range cases {
		capacity, progress := CourseCapacity(tc.enrolled)
		assert.Equal(t, tc.capacity, capacity, "enrolled=%d", tc.enrolled)
		assert.InDelta(t, tc.progress, progress, 1e-9, "enrolled=%d", tc.enrolled)
		assert.LessOrEqual(t, progress, 1.0)
	}
}

func TestDashboardServiceSummary(t *testing.T) {
	repo := &fakeDashboardRepo{
		counts: models.DashboardCounts{Students: models.EntityCount{Total: 12, Active: 10}},
		totals: models.AttendanceTotals{Total: 10, Attended: 7},
		top: []models.CourseEnrollmentCount{
			{ID: 1, Name: "Go 101", Enrolled: 6},
			{ID: 2, Name: "Rust", Enrolled: 0},
		},
	}
	svc := NewDashboardService(repo, nil)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, repo.recentLimit)
	assert.Equal(t, 3, repo.topLimit)
	assert.Equal(t, 70, summary.AttendanceRate)
	assert.Equal(t, 12, summary.Stats.Students.Total)
	assert.NotNil(t, summary.RecentStudents)
	require.Len(t, summary.TopCourses, 2)
	assert.Equal(t, 11, summary.TopCourses[0].Capacity)
	assert.Equal(t, 10, summary.TopCourses[1].Capacity)
	assert.Zero(t, summary.TopCourses[1].Progress)
}

func TestDashboardServiceFailure(t *testing.T) {
	svc := NewDashboardService(&fakeDashboardRepo{countsErr: errors.New("boom")}, nil)

	_, err := svc.Summary(context.Background())
	requireAppError(t, err, http.StatusInternalServerError, "")
}
