package models

import "time"

// Course is a priced program taught by at most one teacher.
type Course struct {
	ID        int64        `db:"id" json:"id"`
	Name      string       `db:"name" json:"name"`
	Level     *string      `db:"level" json:"level"`
	Price     float64      `db:"price" json:"price"`
	Duration  *string      `db:"duration" json:"duration"`
	TeacherID *int64       `db:"teacher_id" json:"teacher_id"`
	Status    CourseStatus `db:"status" json:"status"`
	CreatedAt time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt time.Time    `db:"updated_at" json:"updated_at"`
}

// CourseDetail enriches Course with its teacher name and enrollment count.
type CourseDetail struct {
	Course
	TeacherName   *string `db:"teacher_name" json:"teacher_name"`
	EnrolledCount int     `db:"enrolled_count" json:"enrolled_count"`
}

// CourseFilter defines supported list filters.
type CourseFilter struct {
	Search    string
	Status    CourseStatus
	TeacherID int64
	PageRequest
}
