package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/lms-admin-api/internal/models"
)

const attendanceDetailSelect = `SELECT a.id, a.student_id, a.course_id, a.attendance_date, a.status, a.notes, a.created_at,
        s.full_name AS student_name, c.name AS course_name
        FROM attendance_records a
        JOIN students s ON s.id = a.student_id
        JOIN courses c ON c.id = a.course_id`

// AttendanceRepository persists attendance records.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs an AttendanceRepository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// List returns attendance ordered by most recent date first.
func (r *AttendanceRepository) List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceDetail, int, error) {
	var conditions []string
	var args []interface{}
	if filter.StudentID > 0 {
		conditions = append(conditions, "a.student_id = ?")
		args = append(args, filter.StudentID)
	}
	if filter.CourseID > 0 {
		conditions = append(conditions, "a.course_id = ?")
		args = append(args, filter.CourseID)
	}
	if filter.Date != "" {
		conditions = append(conditions, "a.attendance_date = ?")
		args = append(args, filter.Date)
	}
	if filter.Status != "" {
		conditions = append(conditions, "a.status = ?")
		args = append(args, filter.Status)
	}
	clause := whereClause(conditions)

	query := fmt.Sprintf(`%s%s ORDER BY a.attendance_date DESC, a.id DESC LIMIT %d OFFSET %d`,
		attendanceDetailSelect, clause, filter.Limit, filter.Offset())
	var records []models.AttendanceDetail
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list attendance: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM attendance_records a"+clause, args...); err != nil {
		return nil, 0, fmt.Errorf("count attendance: %w", err)
	}
	return records, total, nil
}

// FindByID returns an attendance record with display names.
func (r *AttendanceRepository) FindByID(ctx context.Context, id int64) (*models.AttendanceDetail, error) {
	var record models.AttendanceDetail
	if err := r.db.GetContext(ctx, &record, attendanceDetailSelect+" WHERE a.id = ?", id); err != nil {
		return nil, err
	}
	return &record, nil
}

// Create inserts an attendance record and sets its ID.
func (r *AttendanceRepository) Create(ctx context.Context, record *models.AttendanceRecord) error {
	const query = `INSERT INTO attendance_records (student_id, course_id, attendance_date, status, notes) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, record.StudentID, record.CourseID, record.AttendanceDate, record.Status, record.Notes)
	if err != nil {
		return classifyWriteError("create attendance", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create attendance: %w", err)
	}
	record.ID = id
	return nil
}

// Update changes the status and notes of a record.
func (r *AttendanceRepository) Update(ctx context.Context, record *models.AttendanceRecord) error {
	const query = `UPDATE attendance_records SET status = ?, notes = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, record.Status, record.Notes, record.ID)
	if err != nil {
		return classifyWriteError("update attendance", err)
	}
	return requireAffected("update attendance", res)
}

// Delete removes an attendance record.
func (r *AttendanceRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM attendance_records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}
	return requireAffected("delete attendance", res)
}
