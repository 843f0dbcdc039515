package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/lms-admin-api/internal/models"
)

const studentColumns = `id, full_name, email, phone, status, created_at, updated_at`

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

func studentConditions(filter models.StudentFilter) ([]string, []interface{}) {
	var conditions []string
	var args []interface{}
	if filter.Search != "" {
		conditions = append(conditions, searchCondition("full_name", "email", "phone"))
		args = append(args, repeatArg(likePattern(filter.Search), 3)...)
	}
	if filter.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, filter.Status)
	}
	return conditions, args
}

// List returns one page of students matching filter, newest first.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, int, error) {
	conditions, args := studentConditions(filter)
	clause := whereClause(conditions)

	query := fmt.Sprintf(`SELECT %s FROM students%s ORDER BY created_at DESC, id DESC LIMIT %d OFFSET %d`,
		studentColumns, clause, filter.Limit, filter.Offset())
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list students: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM students"+clause, args...); err != nil {
		return nil, 0, fmt.Errorf("count students: %w", err)
	}
	return students, total, nil
}

// ListAll returns every student matching filter ordered by name; paging is ignored.
func (r *StudentRepository) ListAll(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	conditions, args := studentConditions(filter)
	query := fmt.Sprintf(`SELECT %s FROM students%s ORDER BY full_name COLLATE NOCASE ASC, id ASC`, studentColumns, whereClause(conditions))
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, fmt.Errorf("list all students: %w", err)
	}
	return students, nil
}

// FindByID fetches a student by ID.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = ?`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// Create inserts a new student and sets its ID.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	const query = `INSERT INTO students (full_name, email, phone, status) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, student.FullName, student.Email, student.Phone, student.Status)
	if err != nil {
		return classifyWriteError("create student", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	student.ID = id
	return nil
}

// Update overwrites the mutable fields of a student.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	const query = `UPDATE students SET full_name = ?, email = ?, phone = ?, status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, student.FullName, student.Email, student.Phone, student.Status, student.ID)
	if err != nil {
		return classifyWriteError("update student", err)
	}
	return requireAffected("update student", res)
}

// Delete removes a student; enrollments and attendance cascade.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM students WHERE id = ?`, id)
	if err != nil {
		return classifyWriteError("delete student", err)
	}
	return requireAffected("delete student", res)
}
