package repository

import (
	"context"
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

var enrollmentRowColumns = []string{"id", "student_id", "course_id", "teacher_id", "start_date", "status", "grade", "created_at", "updated_at", "student_name", "course_name", "teacher_name"}

func TestEnrollmentRepositoryListFilters(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	rows := sqlmock.NewRows(enrollmentRowColumns).
		AddRow(1, 2, 3, nil, "2025-09-01", "completed", "A", time.Now(), time.Now(), "Ann Lee", "Piano", nil)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE e.student_id = ? AND e.course_id = ? AND e.status = ? ORDER BY e.created_at DESC, e.id DESC LIMIT 10 OFFSET 10")).
		WithArgs(int64(2), int64(3), models.EnrollmentStatusCompleted).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM enrollments e WHERE e.student_id = ? AND e.course_id = ? AND e.status = ?")).
		WithArgs(int64(2), int64(3), models.EnrollmentStatusCompleted).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))

	filter := models.EnrollmentFilter{StudentID: 2, CourseID: 3, Status: models.EnrollmentStatusCompleted, PageRequest: models.NewPageRequest(2, 10)}
	list, total, err := repo.List(context.Background(), filter)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "A", *list[0].Grade)
	assert.Equal(t, "Ann Lee", list[0].StudentName)
	assert.Equal(t, 11, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryExists(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	query := regexp.QuoteMeta("SELECT 1 FROM enrollments WHERE student_id = ? AND course_id = ? LIMIT 1")
	mock.ExpectQuery(query).WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery(query).WithArgs(int64(1), int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	exists, err := repo.Exists(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryCreateDuplicatePair(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	start := "2025-09-01"
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO enrollments (student_id, course_id, teacher_id, start_date, status, grade) VALUES (?, ?, ?, ?, ?, ?)")).
		WithArgs(int64(1), int64(2), nil, "2025-09-01", models.EnrollmentStatusActive, nil).
		WillReturnError(errors.New("UNIQUE constraint failed: enrollments.student_id, enrollments.course_id"))

	err := repo.Create(context.Background(), &models.Enrollment{StudentID: 1, CourseID: 2, StartDate: &start, Status: models.EnrollmentStatusActive})
	assert.ErrorIs(t, err, appErrors.ErrDuplicateKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryListByCourse(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE e.course_id = ? ORDER BY s.full_name COLLATE NOCASE ASC, e.id ASC")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(enrollmentRowColumns).
			AddRow(1, 2, 5, 4, "2025-09-01", "active", nil, time.Now(), time.Now(), "Ann Lee", "Intro to Python", "Daniel Kim"))

	list, err := repo.ListByCourse(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Daniel Kim", *list[0].TeacherName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
