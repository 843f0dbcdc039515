package dto

import "github.com/noah-isme/lms-admin-api/internal/models"

// DashboardResponse captures the aggregated admin dashboard payload.
type DashboardResponse struct {
	Stats          models.DashboardCounts  `json:"stats"`
	AttendanceRate int                     `json:"attendanceRate"`
	Attendance     models.AttendanceTotals `json:"attendance"`
	RecentStudents []models.Student        `json:"recentStudents"`
	TopCourses     []TopCourse             `json:"topCourses"`
}

// TopCourse is a course ranked by enrollments with a capacity estimate.
type TopCourse struct {
	ID          int64               `json:"id"`
	Name        string              `json:"name"`
	Level       *string             `json:"level"`
	Status      models.CourseStatus `json:"status"`
	TeacherName *string             `json:"teacherName"`
	Enrolled    int                 `json:"enrolled"`
	Capacity    int                 `json:"capacity"`
	Progress    float64             `json:"progress"`
}
