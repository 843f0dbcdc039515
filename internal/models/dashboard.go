package models

// EntityCount holds the total and active counts of one entity type.
type EntityCount struct {
	Total  int `db:"total" json:"total"`
	Active int `db:"active" json:"active"`
}

// AttendanceTotals counts attendance rows and those marked attended.
type AttendanceTotals struct {
	Total    int `db:"total" json:"total"`
	Attended int `db:"attended" json:"attended"`
}

// CourseEnrollmentCount is a course ranked by enrollments.
type CourseEnrollmentCount struct {
	ID          int64        `db:"id"`
	Name        string       `db:"name"`
	Level       *string      `db:"level"`
	Status      CourseStatus `db:"status"`
	TeacherName *string      `db:"teacher_name"`
	Enrolled    int          `db:"enrolled"`
}

// DashboardCounts groups the per-entity counts shown on the dashboard.
type DashboardCounts struct {
	Students    EntityCount `json:"students"`
	Teachers    EntityCount `json:"teachers"`
	Courses     EntityCount `json:"courses"`
	Enrollments EntityCount `json:"enrollments"`
}
