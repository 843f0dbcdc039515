package handler

import "github.com/gin-gonic/gin"

// Handlers groups every HTTP handler mounted under /api.
type Handlers struct {
	Auth        *AuthHandler
	Students    *StudentHandler
	Teachers    *TeacherHandler
	Courses     *CourseHandler
	Enrollments *EnrollmentHandler
	Attendance  *AttendanceHandler
	Dashboard   *DashboardHandler
	System      *MetricsHandler
}

// RegisterRoutes mounts the API on api. Everything except health and login
// runs behind authenticate.
func RegisterRoutes(api *gin.RouterGroup, h Handlers, authenticate gin.HandlerFunc) {
	api.GET("/health", h.System.Health)
	api.POST("/auth/login", h.Auth.Login)

	secured := api.Group("")
	secured.Use(authenticate)

	secured.POST("/auth/logout", h.Auth.Logout)
	secured.GET("/auth/me", h.Auth.Me)

	students := secured.Group("/students")
	students.GET("", h.Students.List)
	students.GET("/export", h.Students.Export)
	students.GET("/:id", h.Students.Get)
	students.POST("", h.Students.Create)
	students.PUT("/:id", h.Students.Update)
	students.DELETE("/:id", h.Students.Delete)

	teachers := secured.Group("/teachers")
	teachers.GET("", h.Teachers.List)
	teachers.GET("/:id", h.Teachers.Get)
	teachers.POST("", h.Teachers.Create)
	teachers.PUT("/:id", h.Teachers.Update)
	teachers.DELETE("/:id", h.Teachers.Delete)

	courses := secured.Group("/courses")
	courses.GET("", h.Courses.List)
	courses.GET("/:id", h.Courses.Get)
	courses.POST("", h.Courses.Create)
	courses.PUT("/:id", h.Courses.Update)
	courses.DELETE("/:id", h.Courses.Delete)

	enroll := secured.Group("/enroll")
	enroll.GET("", h.Enrollments.List)
	enroll.GET("/:id", h.Enrollments.Get)
	enroll.POST("", h.Enrollments.Create)
	enroll.PUT("/:id", h.Enrollments.Update)
	enroll.DELETE("/:id", h.Enrollments.Delete)

	attendance := secured.Group("/attendance")
	attendance.GET("", h.Attendance.List)
	attendance.GET("/:id", h.Attendance.Get)
	attendance.POST("", h.Attendance.Create)
	attendance.PUT("/:id", h.Attendance.Update)
	attendance.DELETE("/:id", h.Attendance.Delete)

	secured.GET("/dashboard", h.Dashboard.Summary)
}
