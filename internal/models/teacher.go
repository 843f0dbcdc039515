package models

import "time"

// Teacher represents an instructor.
type Teacher struct {
	ID        int64         `db:"id" json:"id"`
	FullName  string        `db:"full_name" json:"full_name"`
	Phone     *string       `db:"phone" json:"phone"`
	Specialty *string       `db:"specialty" json:"specialty"`
	Status    TeacherStatus `db:"status" json:"status"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt time.Time     `db:"updated_at" json:"updated_at"`
}

// TeacherFilter defines supported list filters.
type TeacherFilter struct {
	Search string
	Status TeacherStatus
	PageRequest
}
