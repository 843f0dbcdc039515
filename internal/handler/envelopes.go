package handler

import "github.com/noah-isme/lms-admin-api/internal/models"

// Response bodies, named so the API docs can describe them.

type healthResponse struct {
	Status string `json:"status"`
}

type meResponse struct {
	Admin models.AdminInfo `json:"admin"`
}

type studentEnvelope struct {
	Student *models.Student `json:"student"`
}

type studentCreated struct {
	ID      int64           `json:"id"`
	Student *models.Student `json:"student"`
}

type teacherEnvelope struct {
	Teacher *models.Teacher `json:"teacher"`
}

type teacherCreated struct {
	ID      int64           `json:"id"`
	Teacher *models.Teacher `json:"teacher"`
}

type courseEnvelope struct {
	Course *models.CourseDetail `json:"course"`
}

type courseCreated struct {
	ID     int64                `json:"id"`
	Course *models.CourseDetail `json:"course"`
}

type enrollmentEnvelope struct {
	Enrollment *models.EnrollmentDetail `json:"enrollment"`
}

type enrollmentCreated struct {
	ID         int64                    `json:"id"`
	Enrollment *models.EnrollmentDetail `json:"enrollment"`
}

type attendanceEnvelope struct {
	Attendance *models.AttendanceDetail `json:"attendance"`
}

type attendanceCreated struct {
	ID         int64                    `json:"id"`
	Attendance *models.AttendanceDetail `json:"attendance"`
}
