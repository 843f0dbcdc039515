package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lms-admin-api/internal/models"
)

func TestDashboardRepositoryCounts(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewDashboardRepository(db)

	for i, table := range []string{"students", "teachers", "courses", "enrollments"} {
		mock.ExpectQuery(regexp.QuoteMeta("AS active FROM " + table)).
			WillReturnRows(sqlmock.NewRows([]string{"total", "active"}).AddRow(10+i, i))
	}

	counts, err := repo.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.EntityCount{Total: 10, Active: 0}, counts.Students)
	assert.Equal(t, models.EntityCount{Total: 13, Active: 3}, counts.Enrollments)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardRepositoryAttendanceTotals(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewDashboardRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("CASE WHEN status IN (?, ?, ?)")).
		WithArgs(models.AttendanceStatusPresent, models.AttendanceStatusLate, models.AttendanceStatusExcused).
		WillReturnRows(sqlmock.NewRows([]string{"total", "attended"}).AddRow(10, 7))

	totals, err := repo.AttendanceTotals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.AttendanceTotals{Total: 10, Attended: 7}, totals)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardRepositoryTopCourses(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewDashboardRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY enrolled DESC, c.name COLLATE NOCASE ASC")).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "level", "status", "teacher_name", "enrolled"}).
			AddRow(1, "English Foundations", "Beginner", "active", "Laila Haddad", 5).
			AddRow(3, "Algebra Essentials", nil, "active", nil, 5))

	courses, err := repo.TopCourses(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, 5, courses[1].Enrolled)
	assert.Nil(t, courses[1].Level)
	assert.NoError(t, mock.ExpectationsWereMet())
}
