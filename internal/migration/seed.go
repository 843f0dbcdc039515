package migration

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/noah-isme/lms-admin-api/internal/crypto"
	"github.com/noah-isme/lms-admin-api/internal/models"
	"github.com/noah-isme/lms-admin-api/pkg/config"
)

const (
	defaultAdminName = "Admin"
	seedTimeLayout   = "2006-01-02 15:04:05"
	seedDateLayout   = "2006-01-02"
)

// seedAdmin creates the configured admin account when no admin exists yet.
// It reports whether an account was created.
func seedAdmin(ctx context.Context, q execQuerier, cfg config.AdminConfig) (bool, error) {
	var count int
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM admin_users`).Scan(&count); err != nil {
		return false, fmt.Errorf("count admins: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	email := strings.ToLower(strings.TrimSpace(cfg.Email))
	if email == "" || cfg.Password == "" {
		return false, fmt.Errorf("admin email and password are required to seed the first account")
	}
	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = defaultAdminName
	}

	hash, err := crypto.HashPassword(cfg.Password)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}
	if _, err := q.ExecContext(ctx, `INSERT INTO admin_users (name, email, password_hash) VALUES (?, ?, ?)`, name, email, hash); err != nil {
		return false, fmt.Errorf("insert admin: %w", err)
	}
	return true, nil
}

type seedTeacher struct {
	name      string
	phone     string
	specialty string
	status    models.TeacherStatus
}

type seedCourse struct {
	name      string
	level     string
	price     float64
	duration  string
	teacherID int64
	status    models.CourseStatus
}

var demoTeachers = []seedTeacher{
	{"Laila Haddad", "+1-555-0201", "English", models.TeacherStatusActive},
	{"Marco Bianchi", "+1-555-0202", "Mathematics", models.TeacherStatusActive},
	{"Sofia Alvarez", "+1-555-0203", "Spanish", models.TeacherStatusActive},
	{"Daniel Kim", "+1-555-0204", "Computer Science", models.TeacherStatusActive},
	{"Grace Okafor", "+1-555-0205", "Business Communication", models.TeacherStatusInactive},
}

var demoCourses = []seedCourse{
	{"English Foundations", "Beginner", 120, "8 weeks", 1, models.CourseStatusActive},
	{"IELTS Preparation", "Advanced", 240, "10 weeks", 1, models.CourseStatusActive},
	{"Algebra Essentials", "Intermediate", 150, "12 weeks", 2, models.CourseStatusActive},
	{"Conversational Spanish", "Beginner", 130, "8 weeks", 3, models.CourseStatusActive},
	{"Intro to Python", "Beginner", 180, "6 weeks", 4, models.CourseStatusActive},
	{"Business Writing", "Intermediate", 160, "6 weeks", 0, models.CourseStatusArchived},
}

var demoStudents = []string{
	"Aisha Rahman", "Ben Carter", "Chloe Nguyen", "David Mensah",
	"Elena Petrova", "Farid Hassan", "Grace Liu", "Hugo Martin",
	"Isabel Costa", "Jonas Weber", "Keiko Tanaka", "Liam Murphy",
}

var demoGrades = []string{"A", "A-", "B+", "B"}

// demoCourseCycle is how many leading courses take enrollments; the last
// course is archived and stays empty.
const demoCourseCycle = 5

var (
	demoStudentBase    = time.Date(2025, time.September, 1, 9, 0, 0, 0, time.UTC)
	demoAttendanceBase = time.Date(2025, time.September, 8, 0, 0, 0, 0, time.UTC)
)

// seedDemoData fills a freshly created schema with a deterministic sample
// institute. Every row is derived from its index so reruns are identical.
func seedDemoData(ctx context.Context, q execQuerier) error {
	for i, t := range demoTeachers {
		if _, err := q.ExecContext(ctx,
			`INSERT INTO teachers (id, full_name, phone, specialty, status) VALUES (?, ?, ?, ?, ?)`,
			i+1, t.name, t.phone, t.specialty, string(t.status)); err != nil {
			return fmt.Errorf("insert teacher %q: %w", t.name, err)
		}
	}

	for i, c := range demoCourses {
		var teacherID interface{}
		if c.teacherID > 0 {
			teacherID = c.teacherID
		}
		if _, err := q.ExecContext(ctx,
			`INSERT INTO courses (id, name, level, price, duration, teacher_id, status) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			i+1, c.name, c.level, c.price, c.duration, teacherID, string(c.status)); err != nil {
			return fmt.Errorf("insert course %q: %w", c.name, err)
		}
	}

	for i, name := range demoStudents {
		status := models.StudentStatusActive
		if i%6 == 5 {
			status = models.StudentStatusInactive
		}
		created := demoStudentBase.Add(time.Duration(i) * time.Hour).Format(seedTimeLayout)
		if _, err := q.ExecContext(ctx,
			`INSERT INTO students (id, full_name, email, phone, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			i+1, name, demoEmail(name), fmt.Sprintf("+1-555-01%02d", i+1), string(status), created, created); err != nil {
			return fmt.Errorf("insert student %q: %w", name, err)
		}
	}

	for i := range demoStudents {
		courses := []int{i % demoCourseCycle}
		if i%3 != 2 {
			courses = append(courses, (i+2)%demoCourseCycle)
		}
		status := demoEnrollmentStatus(i)
		for _, course := range courses {
			if err := seedEnrollment(ctx, q, i, course, status); err != nil {
				return err
			}
		}
	}
	return nil
}

func seedEnrollment(ctx context.Context, q execQuerier, student, course int, status models.EnrollmentStatus) error {
	studentID, courseID := student+1, course+1
	var grade interface{}
	if status == models.EnrollmentStatusCompleted {
		grade = demoGrades[student%len(demoGrades)]
	}
	start := demoStudentBase.AddDate(0, 0, student).Format(seedDateLayout)
	if _, err := q.ExecContext(ctx,
		`INSERT INTO enrollments (student_id, course_id, teacher_id, start_date, status, grade)
		 VALUES (?, ?, (SELECT teacher_id FROM courses WHERE id = ?), ?, ?, ?)`,
		studentID, courseID, courseID, start, string(status), grade); err != nil {
		return fmt.Errorf("insert enrollment %d/%d: %w", studentID, courseID, err)
	}

	if status != models.EnrollmentStatusActive {
		return nil
	}
	for week := 0; week < 4; week++ {
		date := demoAttendanceBase.AddDate(0, 0, 7*week).Format(seedDateLayout)
		if _, err := q.ExecContext(ctx,
			`INSERT INTO attendance_records (student_id, course_id, attendance_date, status) VALUES (?, ?, ?, ?)`,
			studentID, courseID, date, string(demoAttendanceStatus(student+week))); err != nil {
			return fmt.Errorf("insert attendance %d/%d/%s: %w", studentID, courseID, date, err)
		}
	}
	return nil
}

func demoEnrollmentStatus(student int) models.EnrollmentStatus {
	switch {
	case student%7 == 6:
		return models.EnrollmentStatusDropped
	case student%5 == 4:
		return models.EnrollmentStatusCompleted
	default:
		return models.EnrollmentStatusActive
	}
}

func demoAttendanceStatus(n int) models.AttendanceStatus {
	switch n % 10 {
	case 7:
		return models.AttendanceStatusLate
	case 8:
		return models.AttendanceStatusAbsent
	case 9:
		return models.AttendanceStatusExcused
	default:
		return models.AttendanceStatusPresent
	}
}

func demoEmail(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com"
}
