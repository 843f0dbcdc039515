package models

import "time"

// Enrollment captures a student's registration to a course.
type Enrollment struct {
	ID        int64            `db:"id" json:"id"`
	StudentID int64            `db:"student_id" json:"student_id"`
	CourseID  int64            `db:"course_id" json:"course_id"`
	TeacherID *int64           `db:"teacher_id" json:"teacher_id"`
	StartDate *string          `db:"start_date" json:"start_date"`
	Status    EnrollmentStatus `db:"status" json:"status"`
	Grade     *string          `db:"grade" json:"grade"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt time.Time        `db:"updated_at" json:"updated_at"`
}

// EnrollmentDetail enriches Enrollment with display names.
type EnrollmentDetail struct {
	Enrollment
	StudentName string  `db:"student_name" json:"student_name"`
	CourseName  string  `db:"course_name" json:"course_name"`
	TeacherName *string `db:"teacher_name" json:"teacher_name"`
}

// EnrollmentFilter provides filters for listing enrollments.
type EnrollmentFilter struct {
	StudentID int64
	CourseID  int64
	Status    EnrollmentStatus
	PageRequest
}
