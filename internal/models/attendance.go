package models

import "time"

// AttendanceRecord is a per-date presence marker for a student in a course.
type AttendanceRecord struct {
	ID             int64            `db:"id" json:"id"`
	StudentID      int64            `db:"student_id" json:"student_id"`
	CourseID       int64            `db:"course_id" json:"course_id"`
	AttendanceDate string           `db:"attendance_date" json:"attendance_date"`
	Status         AttendanceStatus `db:"status" json:"status"`
	Notes          *string          `db:"notes" json:"notes"`
	CreatedAt      time.Time        `db:"created_at" json:"created_at"`
}

// AttendanceDetail adds display names to an attendance record.
type AttendanceDetail struct {
	AttendanceRecord
	StudentName string `db:"student_name" json:"student_name"`
	CourseName  string `db:"course_name" json:"course_name"`
}

// AttendanceFilter provides filters for listing attendance.
type AttendanceFilter struct {
	StudentID int64
	CourseID  int64
	Date      string
	Status    AttendanceStatus
	PageRequest
}
