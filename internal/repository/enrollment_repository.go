package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/lms-admin-api/internal/models"
)

const enrollmentDetailSelect = `SELECT e.id, e.student_id, e.course_id, e.teacher_id, e.start_date, e.status, e.grade, e.created_at, e.updated_at,
        s.full_name AS student_name, c.name AS course_name, t.full_name AS teacher_name
        FROM enrollments e
        JOIN students s ON s.id = e.student_id
        JOIN courses c ON c.id = e.course_id
        LEFT JOIN teachers t ON t.id = e.teacher_id`

// EnrollmentRepository handles persistence of enrollments.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// List returns enrollments filtered by the provided criteria, newest first.
func (r *EnrollmentRepository) List(ctx context.Context, filter models.EnrollmentFilter) ([]models.EnrollmentDetail, int, error) {
	var conditions []string
	var args []interface{}
	if filter.StudentID > 0 {
		conditions = append(conditions, "e.student_id = ?")
		args = append(args, filter.StudentID)
	}
	if filter.CourseID > 0 {
		conditions = append(conditions, "e.course_id = ?")
		args = append(args, filter.CourseID)
	}
	if filter.Status != "" {
		conditions = append(conditions, "e.status = ?")
		args = append(args, filter.Status)
	}
	clause := whereClause(conditions)

	query := fmt.Sprintf(`%s%s ORDER BY e.created_at DESC, e.id DESC LIMIT %d OFFSET %d`,
		enrollmentDetailSelect, clause, filter.Limit, filter.Offset())
	var enrollments []models.EnrollmentDetail
	if err := r.db.SelectContext(ctx, &enrollments, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list enrollments: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM enrollments e"+clause, args...); err != nil {
		return nil, 0, fmt.Errorf("count enrollments: %w", err)
	}
	return enrollments, total, nil
}

// ListByCourse returns every enrollment of a course ordered by student name.
func (r *EnrollmentRepository) ListByCourse(ctx context.Context, courseID int64) ([]models.EnrollmentDetail, error) {
	query := enrollmentDetailSelect + ` WHERE e.course_id = ? ORDER BY s.full_name COLLATE NOCASE ASC, e.id ASC`
	var enrollments []models.EnrollmentDetail
	if err := r.db.SelectContext(ctx, &enrollments, query, courseID); err != nil {
		return nil, fmt.Errorf("list course enrollments: %w", err)
	}
	return enrollments, nil
}

// FindByID returns an enrollment with display names.
func (r *EnrollmentRepository) FindByID(ctx context.Context, id int64) (*models.EnrollmentDetail, error) {
	var detail models.EnrollmentDetail
	if err := r.db.GetContext(ctx, &detail, enrollmentDetailSelect+" WHERE e.id = ?", id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Exists reports whether the student is enrolled in the course.
func (r *EnrollmentRepository) Exists(ctx context.Context, studentID, courseID int64) (bool, error) {
	const query = `SELECT 1 FROM enrollments WHERE student_id = ? AND course_id = ? LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, studentID, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check enrollment: %w", err)
	}
	return true, nil
}

// Create persists a new enrollment and sets its ID.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	const query = `INSERT INTO enrollments (student_id, course_id, teacher_id, start_date, status, grade) VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, enrollment.StudentID, enrollment.CourseID, nullableID(enrollment.TeacherID),
		enrollment.StartDate, enrollment.Status, enrollment.Grade)
	if err != nil {
		return classifyWriteError("create enrollment", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create enrollment: %w", err)
	}
	enrollment.ID = id
	return nil
}

// Update overwrites teacher, start date, status and grade.
func (r *EnrollmentRepository) Update(ctx context.Context, enrollment *models.Enrollment) error {
	const query = `UPDATE enrollments SET teacher_id = ?, start_date = ?, status = ?, grade = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, nullableID(enrollment.TeacherID), enrollment.StartDate, enrollment.Status, enrollment.Grade, enrollment.ID)
	if err != nil {
		return classifyWriteError("update enrollment", err)
	}
	return requireAffected("update enrollment", res)
}

// Delete removes an enrollment.
func (r *EnrollmentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM enrollments WHERE id = ?`, id)
	if err != nil {
		return classifyWriteError("delete enrollment", err)
	}
	return requireAffected("delete enrollment", res)
}
