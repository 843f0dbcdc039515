package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lms-admin-api/internal/models"
	appErrors "github.com/noah-isme/lms-admin-api/pkg/errors"
)

func TestAttendanceRepositoryListByDate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	rows := sqlmock.NewRows([]string{"id", "student_id", "course_id", "attendance_date", "status", "notes", "created_at", "student_name", "course_name"}).
		AddRow(1, 1, 1, "2025-09-08", "late", "bus", time.Now(), "Ann Lee", "Piano")
	mock.ExpectQuery(regexp.QuoteMeta("WHERE a.attendance_date = ? ORDER BY a.attendance_date DESC, a.id DESC LIMIT 100 OFFSET 0")).
		WithArgs("2025-09-08").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM attendance_records a WHERE a.attendance_date = ?")).
		WithArgs("2025-09-08").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	list, total, err := repo.List(context.Background(), models.AttendanceFilter{Date: "2025-09-08", PageRequest: models.NewPageRequest(1, 1000)})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.AttendanceStatusLate, list[0].Status)
	assert.Equal(t, "bus", *list[0].Notes)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryCreateDuplicateDay(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO attendance_records (student_id, course_id, attendance_date, status, notes) VALUES (?, ?, ?, ?, ?)")).
		WithArgs(int64(1), int64(2), "2025-09-08", models.AttendanceStatusPresent, nil).
		WillReturnError(errors.New("UNIQUE constraint failed: attendance_records.student_id"))

	err := repo.Create(context.Background(), &models.AttendanceRecord{StudentID: 1, CourseID: 2, AttendanceDate: "2025-09-08", Status: models.AttendanceStatusPresent})
	assert.ErrorIs(t, err, appErrors.ErrDuplicateKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryDeleteMissing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM attendance_records WHERE id = ?")).
		WithArgs(int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 8), sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
