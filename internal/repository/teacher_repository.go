package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/lms-admin-api/internal/models"
)

const teacherColumns = `id, full_name, phone, specialty, status, created_at, updated_at`

// TeacherRepository manages persistence for teachers.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository constructs a TeacherRepository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// List returns teachers matching filters along with total count.
func (r *TeacherRepository) List(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, int, error) {
	var conditions []string
	var args []interface{}
	if filter.Search != "" {
		conditions = append(conditions, searchCondition("full_name", "phone", "specialty"))
		args = append(args, repeatArg(likePattern(filter.Search), 3)...)
	}
	if filter.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, filter.Status)
	}
	clause := whereClause(conditions)

	query := fmt.Sprintf(`SELECT %s FROM teachers%s ORDER BY created_at DESC, id DESC LIMIT %d OFFSET %d`,
		teacherColumns, clause, filter.Limit, filter.Offset())
	var teachers []models.Teacher
	if err := r.db.SelectContext(ctx, &teachers, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list teachers: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM teachers"+clause, args...); err != nil {
		return nil, 0, fmt.Errorf("count teachers: %w", err)
	}
	return teachers, total, nil
}

// FindByID returns a teacher by ID.
func (r *TeacherRepository) FindByID(ctx context.Context, id int64) (*models.Teacher, error) {
	query := `SELECT ` + teacherColumns + ` FROM teachers WHERE id = ?`
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, id); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// Create inserts a teacher and sets its ID.
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	const query = `INSERT INTO teachers (full_name, phone, specialty, status) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, teacher.FullName, teacher.Phone, teacher.Specialty, teacher.Status)
	if err != nil {
		return classifyWriteError("create teacher", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create teacher: %w", err)
	}
	teacher.ID = id
	return nil
}

// Update overwrites the mutable fields of a teacher.
func (r *TeacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	const query = `UPDATE teachers SET full_name = ?, phone = ?, specialty = ?, status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, teacher.FullName, teacher.Phone, teacher.Specialty, teacher.Status, teacher.ID)
	if err != nil {
		return classifyWriteError("update teacher", err)
	}
	return requireAffected("update teacher", res)
}

// Delete removes a teacher; courses and enrollments keep their rows with the
// teacher reference cleared.
func (r *TeacherRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM teachers WHERE id = ?`, id)
	if err != nil {
		return classifyWriteError("delete teacher", err)
	}
	return requireAffected("delete teacher", res)
}
