package service

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lms-admin-api/internal/models"
	appErrors "github.com/noah-isme/lms-admin-api/pkg/errors"
)

type fakeAttendanceRepo struct {
	records    map[int64]models.AttendanceRecord
	lastFilter models.AttendanceFilter
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceDetail, int, error) {
	f.lastFilter = filter
	return nil, 0, nil
}

func (f *fakeAttendanceRepo) FindByID(ctx context.Context, id int64) (*models.AttendanceDetail, error) {
	r, ok := f.records[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &models.AttendanceDetail{AttendanceRecord: r}, nil
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, record *models.AttendanceRecord) error {
	for _, r := range f.records {
		if r.StudentID == record.StudentID && r.CourseID == record.CourseID && r.AttendanceDate == record.AttendanceDate {
			return fmt.Errorf("create attendance: %w", appErrors.ErrDuplicateKey)
		}
	}
	record.ID = int64(len(f.records) + 1)
	f.records[record.ID] = *record
	return nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, record *models.AttendanceRecord) error {
	if _, ok := f.records[record.ID]; !ok {
		return sql.ErrNoRows
	}
	f.records[record.ID] = *record
	return nil
}

func (f *fakeAttendanceRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.records[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.records, id)
	return nil
}

type fakeEnrollmentChecker map[[2]int64]bool

func (f fakeEnrollmentChecker) Exists(ctx context.Context, studentID, courseID int64) (bool, error) {
	return f[[2]int64{studentID, courseID}], nil
}

func newAttendanceService() (*AttendanceService, *fakeAttendanceRepo) {
	repo := &fakeAttendanceRepo{records: map[int64]models.AttendanceRecord{}}
	svc := NewAttendanceService(repo, fakeEnrollmentChecker{{1, 10}: true}, nil, nil)
	svc.now = func() time.Time { return time.Date(2025, 9, 15, 8, 0, 0, 0, time.UTC) }
	return svc, repo
}

func TestAttendanceServiceCreate(t *testing.T) {
	svc, _ := newAttendanceService()

	record, err := svc.Create(context.Background(), CreateAttendanceRequest{StudentID: 1, CourseID: 10, Status: "unknown", Notes: strPtr(" ")})
	require.NoError(t, err)
	assert.Equal(t, "2025-09-15", record.AttendanceDate)
	assert.Equal(t, models.AttendanceStatusPresent, record.Status)
	assert.Nil(t, record.Notes)

	late, err := svc.Create(context.Background(), CreateAttendanceRequest{StudentID: 1, CourseID: 10, AttendanceDate: "2025-09-16", Status: "Late"})
	require.NoError(t, err)
	assert.Equal(t, models.AttendanceStatusLate, late.Status)
}

func TestAttendanceServiceRequiresEnrollment(t *testing.T) {
	svc, repo := newAttendanceService()

	_, err := svc.Create(context.Background(), CreateAttendanceRequest{StudentID: 2, CourseID: 10, AttendanceDate: "2025-09-15"})
	requireAppError(t, err, http.StatusBadRequest, "Student is not enrolled in this course.")
	assert.Empty(t, repo.records)
}

func TestAttendanceServiceDuplicateDate(t *testing.T) {
	svc, _ := newAttendanceService()
	req := CreateAttendanceRequest{StudentID: 1, CourseID: 10, AttendanceDate: "2025-09-15"}

	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), req)
	requireAppError(t, err, http.StatusConflict, "Attendance already recorded for this date.")
}

func TestAttendanceServiceRejectsBadDate(t *testing.T) {
	svc, _ := newAttendanceService()

	_, err := svc.Create(context.Background(), CreateAttendanceRequest{StudentID: 1, CourseID: 10, AttendanceDate: "2025-13-01"})
	requireAppError(t, err, http.StatusBadRequest, "attendance_date must be a date in YYYY-MM-DD format.")
}

func TestAttendanceServiceUpdateAndDelete(t *testing.T) {
	svc, repo := newAttendanceService()
	record, err := svc.Create(context.Background(), CreateAttendanceRequest{StudentID: 1, CourseID: 10, Notes: strPtr("bus delay")})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), record.ID, UpdateAttendanceRequest{Status: strPtr("excused")})
	require.NoError(t, err)
	assert.Equal(t, models.AttendanceStatusExcused, updated.Status)
	assert.Equal(t, "bus delay", *updated.Notes)

	updated, err = svc.Update(context.Background(), record.ID, UpdateAttendanceRequest{Status: strPtr("gone"), Notes: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, models.AttendanceStatusExcused, updated.Status)
	assert.Nil(t, updated.Notes)

	require.NoError(t, svc.Delete(context.Background(), record.ID))
	assert.Empty(t, repo.records)
	requireAppError(t, svc.Delete(context.Background(), record.ID), http.StatusNotFound, "Attendance record not found")
}

func TestAttendanceServiceListFilters(t *testing.T) {
	svc, repo := newAttendanceService()

	_, err := svc.List(context.Background(), AttendanceListQuery{ListQuery: ListQuery{Status: "absent"}, CourseID: 10, Date: " 2025-09-15 "})
	require.NoError(t, err)
	assert.Equal(t, "2025-09-15", repo.lastFilter.Date)
	assert.Equal(t, int64(10), repo.lastFilter.CourseID)
	assert.Equal(t, models.AttendanceStatusAbsent, repo.lastFilter.Status)
}
