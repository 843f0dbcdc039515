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

var courseRowColumns = []string{"id", "name", "level", "price", "duration", "teacher_id", "status", "created_at", "updated_at", "teacher_name", "enrolled_count"}

func TestCourseRepositoryListByTeacher(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	rows := sqlmock.NewRows(courseRowColumns).
		AddRow(1, "English Foundations", "Beginner", 120.0, "8 weeks", 1, "active", time.Now(), time.Now(), "Laila Haddad", 4)
	mock.ExpectQuery(regexp.QuoteMeta("LEFT JOIN teachers t ON t.id = c.teacher_id WHERE c.teacher_id = ? ORDER BY c.name COLLATE NOCASE ASC, c.id ASC LIMIT 10 OFFSET 0")).
		WithArgs(int64(1)).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM courses c LEFT JOIN teachers t ON t.id = c.teacher_id WHERE c.teacher_id = ?")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	courses, total, err := repo.List(context.Background(), models.CourseFilter{TeacherID: 1, PageRequest: models.NewPageRequest(1, 10)})
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, 4, courses[0].EnrolledCount)
	assert.Equal(t, "Laila Haddad", *courses[0].TeacherName)
	assert.Equal(t, int64(1), *courses[0].TeacherID)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	rows := sqlmock.NewRows(courseRowColumns).
		AddRow(6, "Business Writing", "Intermediate", 160.0, "6 weeks", nil, "archived", time.Now(), time.Now(), nil, 0)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE c.id = ?")).
		WithArgs(int64(6)).
		WillReturnRows(rows)

	course, err := repo.FindByID(context.Background(), 6)
	require.NoError(t, err)
	assert.Nil(t, course.TeacherID)
	assert.Nil(t, course.TeacherName)
	assert.Equal(t, models.CourseStatusArchived, course.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryCreateDuplicateName(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO courses (name, level, price, duration, teacher_id, status) VALUES (?, ?, ?, ?, ?, ?)")).
		WithArgs("Piano", nil, 99.5, nil, nil, models.CourseStatusActive).
		WillReturnError(errors.New("UNIQUE constraint failed: courses.name"))

	err := repo.Create(context.Background(), &models.Course{Name: "Piano", Price: 99.5, Status: models.CourseStatusActive})
	assert.ErrorIs(t, err, appErrors.ErrDuplicateKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryUpdateUnknownTeacher(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	teacherID := int64(42)
	mock.ExpectExec("UPDATE courses SET").
		WithArgs("Piano", nil, 0.0, nil, int64(42), models.CourseStatusActive, int64(1)).
		WillReturnError(errors.New("FOREIGN KEY constraint failed"))

	err := repo.Update(context.Background(), &models.Course{ID: 1, Name: "Piano", TeacherID: &teacherID, Status: models.CourseStatusActive})
	assert.ErrorIs(t, err, appErrors.ErrForeignKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}
