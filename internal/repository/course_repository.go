package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/lms-admin-api/internal/models"
)

const courseDetailSelect = `SELECT c.id, c.name, c.level, c.price, c.duration, c.teacher_id, c.status, c.created_at, c.updated_at,
        t.full_name AS teacher_name,
        (SELECT COUNT(*) FROM enrollments e WHERE e.course_id = c.id) AS enrolled_count
        FROM courses c
        LEFT JOIN teachers t ON t.id = c.teacher_id`

// CourseRepository manages persistence for courses.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs a CourseRepository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns courses with teacher name and enrollment count, alphabetically.
func (r *CourseRepository) List(ctx context.Context, filter models.CourseFilter) ([]models.CourseDetail, int, error) {
	var conditions []string
	var args []interface{}
	if filter.Search != "" {
		conditions = append(conditions, searchCondition("c.name", "c.level", "t.full_name"))
		args = append(args, repeatArg(likePattern(filter.Search), 3)...)
	}
	if filter.Status != "" {
		conditions = append(conditions, "c.status = ?")
		args = append(args, filter.Status)
	}
	if filter.TeacherID > 0 {
		conditions = append(conditions, "c.teacher_id = ?")
		args = append(args, filter.TeacherID)
	}
	clause := whereClause(conditions)

	query := fmt.Sprintf(`%s%s ORDER BY c.name COLLATE NOCASE ASC, c.id ASC LIMIT %d OFFSET %d`,
		courseDetailSelect, clause, filter.Limit, filter.Offset())
	var courses []models.CourseDetail
	if err := r.db.SelectContext(ctx, &courses, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list courses: %w", err)
	}

	countQuery := "SELECT COUNT(*) FROM courses c LEFT JOIN teachers t ON t.id = c.teacher_id" + clause
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count courses: %w", err)
	}
	return courses, total, nil
}

// FindByID returns a course with its teacher name and enrollment count.
func (r *CourseRepository) FindByID(ctx context.Context, id int64) (*models.CourseDetail, error) {
	var course models.CourseDetail
	if err := r.db.GetContext(ctx, &course, courseDetailSelect+" WHERE c.id = ?", id); err != nil {
		return nil, err
	}
	return &course, nil
}

// Create inserts a course and sets its ID.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	const query = `INSERT INTO courses (name, level, price, duration, teacher_id, status) VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, course.Name, course.Level, course.Price, course.Duration, nullableID(course.TeacherID), course.Status)
	if err != nil {
		return classifyWriteError("create course", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	course.ID = id
	return nil
}

// Update overwrites the mutable fields of a course.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	const query = `UPDATE courses SET name = ?, level = ?, price = ?, duration = ?, teacher_id = ?, status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, course.Name, course.Level, course.Price, course.Duration, nullableID(course.TeacherID), course.Status, course.ID)
	if err != nil {
		return classifyWriteError("update course", err)
	}
	return requireAffected("update course", res)
}

// Delete removes a course together with its enrollments and attendance.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE id = ?`, id)
	if err != nil {
		return classifyWriteError("delete course", err)
	}
	return requireAffected("delete course", res)
}
