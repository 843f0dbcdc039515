package models

import "strings"

// StudentStatus is the lifecycle state of a student.
type StudentStatus string

const (
	StudentStatusActive   StudentStatus = "active"
	StudentStatusInactive StudentStatus = "inactive"
)

// TeacherStatus is the lifecycle state of a teacher.
type TeacherStatus string

const (
	TeacherStatusActive   TeacherStatus = "active"
	TeacherStatusInactive TeacherStatus = "inactive"
)

// CourseStatus is the lifecycle state of a course.
type CourseStatus string

const (
	CourseStatusActive   CourseStatus = "active"
	CourseStatusArchived CourseStatus = "archived"
)

// EnrollmentStatus represents the lifecycle of an enrollment.
type EnrollmentStatus string

const (
	EnrollmentStatusActive    EnrollmentStatus = "active"
	EnrollmentStatusCompleted EnrollmentStatus = "completed"
	EnrollmentStatusDropped   EnrollmentStatus = "dropped"
)

// AttendanceStatus is the presence marker stored on an attendance record.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "present"
	AttendanceStatusAbsent  AttendanceStatus = "absent"
	AttendanceStatusLate    AttendanceStatus = "late"
	AttendanceStatusExcused AttendanceStatus = "excused"
)

var (
	studentStatuses    = []StudentStatus{StudentStatusActive, StudentStatusInactive}
	teacherStatuses    = []TeacherStatus{TeacherStatusActive, TeacherStatusInactive}
	courseStatuses     = []CourseStatus{CourseStatusActive, CourseStatusArchived}
	enrollmentStatuses = []EnrollmentStatus{EnrollmentStatusActive, EnrollmentStatusCompleted, EnrollmentStatusDropped}
	attendanceStatuses = []AttendanceStatus{AttendanceStatusPresent, AttendanceStatusAbsent, AttendanceStatusLate, AttendanceStatusExcused}
)

// AttendedStatuses count towards the attendance rate.
var AttendedStatuses = []AttendanceStatus{AttendanceStatusPresent, AttendanceStatusLate, AttendanceStatusExcused}

// NormalizeStudentStatus maps raw input onto a known status or fallback.
func NormalizeStudentStatus(raw string, fallback StudentStatus) StudentStatus {
	return normalize(raw, studentStatuses, fallback)
}

// NormalizeTeacherStatus maps raw input onto a known status or fallback.
func NormalizeTeacherStatus(raw string, fallback TeacherStatus) TeacherStatus {
	return normalize(raw, teacherStatuses, fallback)
}

// NormalizeCourseStatus maps raw input onto a known status or fallback.
func NormalizeCourseStatus(raw string, fallback CourseStatus) CourseStatus {
	return normalize(raw, courseStatuses, fallback)
}

// NormalizeEnrollmentStatus maps raw input onto a known status or fallback.
func NormalizeEnrollmentStatus(raw string, fallback EnrollmentStatus) EnrollmentStatus {
	return normalize(raw, enrollmentStatuses, fallback)
}

// NormalizeAttendanceStatus maps raw input onto a known status or fallback.
func NormalizeAttendanceStatus(raw string, fallback AttendanceStatus) AttendanceStatus {
	return normalize(raw, attendanceStatuses, fallback)
}

func normalize[T ~string](raw string, allowed []T, fallback T) T {
	candidate := T(strings.ToLower(strings.TrimSpace(raw)))
	for _, status := range allowed {
		if status == candidate {
			return status
		}
	}
	return fallback
}
