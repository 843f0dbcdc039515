package models

import "time"

// Student represents a learner registered in the institute.
type Student struct {
	ID        int64         `db:"id" json:"id"`
	FullName  string        `db:"full_name" json:"full_name"`
	Email     *string       `db:"email" json:"email"`
	Phone     *string       `db:"phone" json:"phone"`
	Status    StudentStatus `db:"status" json:"status"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt time.Time     `db:"updated_at" json:"updated_at"`
}

// StudentFilter encapsulates allowed search parameters for listing students.
type StudentFilter struct {
	Search string
	Status StudentStatus
	PageRequest
}
