package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/lms-admin-api/internal/models"
)

// DashboardRepository runs the aggregate queries behind the admin dashboard.
type DashboardRepository struct {
	db *sqlx.DB
}

// NewDashboardRepository constructs a DashboardRepository.
func NewDashboardRepository(db *sqlx.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// Counts returns total and active counts for every entity type.
func (r *DashboardRepository) Counts(ctx context.Context) (models.DashboardCounts, error) {
	var counts models.DashboardCounts
	targets := []struct {
		table string
		dest  *models.EntityCount
	}{
		{"students", &counts.Students},
		{"teachers", &counts.Teachers},
		{"courses", &counts.Courses},
		{"enrollments", &counts.Enrollments},
	}
	for _, target := range targets {
		query := fmt.Sprintf(`SELECT COUNT(*) AS total, COALESCE(SUM(CASE WHEN status = 'active' THEN 1 ELSE 0 END), 0) AS active FROM %s`, target.table)
		if err := r.db.GetContext(ctx, target.dest, query); err != nil {
			return counts, fmt.Errorf("count %s: %w", target.table, err)
		}
	}
	return counts, nil
}

// AttendanceTotals counts all attendance rows and those marked attended.
func (r *DashboardRepository) AttendanceTotals(ctx context.Context) (models.AttendanceTotals, error) {
	args := make([]interface{}, len(models.AttendedStatuses))
	for i, status := range models.AttendedStatuses {
		args[i] = status
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(args)), ", ")
	query := fmt.Sprintf(`SELECT COUNT(*) AS total,
        COALESCE(SUM(CASE WHEN status IN (%s) THEN 1 ELSE 0 END), 0) AS attended
        FROM attendance_records`, placeholders)
	var totals models.AttendanceTotals
	if err := r.db.GetContext(ctx, &totals, query, args...); err != nil {
		return totals, fmt.Errorf("attendance totals: %w", err)
	}
	return totals, nil
}

// RecentStudents returns the most recently created students.
func (r *DashboardRepository) RecentStudents(ctx context.Context, limit int) ([]models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students ORDER BY created_at DESC, id DESC LIMIT ?`
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, limit); err != nil {
		return nil, fmt.Errorf("recent students: %w", err)
	}
	return students, nil
}

// TopCourses ranks courses by enrollment count, breaking ties by name.
func (r *DashboardRepository) TopCourses(ctx context.Context, limit int) ([]models.CourseEnrollmentCount, error) {
	const query = `SELECT c.id, c.name, c.level, c.status, t.full_name AS teacher_name, COUNT(e.id) AS enrolled
        FROM courses c
        LEFT JOIN teachers t ON t.id = c.teacher_id
        LEFT JOIN enrollments e ON e.course_id = c.id
        GROUP BY c.id
        ORDER BY enrolled DESC, c.name COLLATE NOCASE ASC
        LIMIT ?`
	var courses []models.CourseEnrollmentCount
	if err := r.db.SelectContext(ctx, &courses, query, limit); err != nil {
		return nil, fmt.Errorf("top courses: %w", err)
	}
	return courses, nil
}
