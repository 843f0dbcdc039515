package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPageRequestClamps(t *testing.T) {
	cases := []struct {
		name        string
		page, limit int
		want        PageRequest
	}{
		{"defaults", 0, 0, PageRequest{Page: 1, Limit: 10}},
		{"limit above max", 2, 1000, PageRequest{Page: 2, Limit: 100}},
		{"negative limit", 1, -5, PageRequest{Page: 1, Limit: 1}},
		{"negative page", -3, 25, PageRequest{Page: 1, Limit: 25}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NewPageRequest(tc.page, tc.limit))
		})
	}
}

func TestPageRequestOffset(t *testing.T) {
	assert.Equal(t, 0, NewPageRequest(1, 10).Offset())
	assert.Equal(t, 40, NewPageRequest(3, 20).Offset())
}

func TestNewPageNeverNull(t *testing.T) {
	page := NewPage[Student](nil, 0, NewPageRequest(1, 10))
	assert.NotNil(t, page.Data)
	assert.Len(t, page.Data, 0)
}

func TestNormalizeStatuses(t *testing.T) {
	assert.Equal(t, StudentStatusInactive, NormalizeStudentStatus(" Inactive ", StudentStatusActive))
	assert.Equal(t, StudentStatusActive, NormalizeStudentStatus("graduated", StudentStatusActive))
	assert.Equal(t, CourseStatusArchived, NormalizeCourseStatus("ARCHIVED", CourseStatusActive))
	assert.Equal(t, EnrollmentStatus(""), NormalizeEnrollmentStatus("unknown", ""))
	assert.Equal(t, AttendanceStatusLate, NormalizeAttendanceStatus("late", AttendanceStatusPresent))
	assert.Equal(t, AttendanceStatusPresent, NormalizeAttendanceStatus("", AttendanceStatusPresent))
	assert.Equal(t, TeacherStatusActive, NormalizeTeacherStatus("retired", TeacherStatusActive))
}
