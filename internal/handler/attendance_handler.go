package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lms-admin-api/internal/models"
	"github.com/noah-isme/lms-admin-api/internal/service"
	"github.com/noah-isme/lms-admin-api/pkg/response"
)

type attendanceService interface {
	List(ctx context.Context, query service.AttendanceListQuery) (models.Page[models.AttendanceDetail], error)
	Get(ctx context.Context, id int64) (*models.AttendanceDetail, error)
	Create(ctx context.Context, req service.CreateAttendanceRequest) (*models.AttendanceDetail, error)
	Update(ctx context.Context, id int64, req service.UpdateAttendanceRequest) (*models.AttendanceDetail, error)
	Delete(ctx context.Context, id int64) error
}

// AttendanceHandler exposes attendance endpoints.
type AttendanceHandler struct {
	attendance attendanceService
}

// NewAttendanceHandler constructs AttendanceHandler.
func NewAttendanceHandler(attendance attendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

// List godoc
// @Summary List attendance records
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param student_id query int false "Filter by student"
// @Param course_id query int false "Filter by course"
// @Param date query string false "Exact date (YYYY-MM-DD)"
// @Param status query string false "present, absent, late or excused"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size (max 100)" default(10)
// @Success 200 {object} models.Page[models.AttendanceDetail]
// @Router /attendance [get]
func (h *AttendanceHandler) List(c *gin.Context) {
	page, err := h.attendance.List(c.Request.Context(), service.AttendanceListQuery{
		ListQuery: listQuery(c),
		StudentID: queryID(c, "student_id"),
		CourseID:  queryID(c, "course_id"),
		Date:      c.Query("date"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page)
}

// Get godoc
// @Summary Get attendance record
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param id path int true "Attendance ID"
// @Success 200 {object} attendanceEnvelope
// @Failure 404 {object} response.ErrorBody
// @Router /attendance/{id} [get]
func (h *AttendanceHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "Attendance record")
	if !ok {
		return
	}
	record, err := h.attendance.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, attendanceEnvelope{Attendance: record})
}

// Create godoc
// @Summary Record attendance
// @Description The student must be enrolled in the course. status defaults to present and attendance_date to today.
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CreateAttendanceRequest true "Attendance payload"
// @Success 201 {object} attendanceCreated
// @Failure 400 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Router /attendance [post]
func (h *AttendanceHandler) Create(c *gin.Context) {
	var req service.CreateAttendanceRequest
	if !bindJSON(c, &req) {
		return
	}
	record, err := h.attendance.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, attendanceCreated{ID: record.ID, Attendance: record})
}

// Update godoc
// @Summary Update attendance status or notes
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Attendance ID"
// @Param payload body service.UpdateAttendanceRequest true "Attendance payload"
// @Success 200 {object} attendanceEnvelope
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /attendance/{id} [put]
func (h *AttendanceHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "Attendance record")
	if !ok {
		return
	}
	var req service.UpdateAttendanceRequest
	if !bindJSON(c, &req) {
		return
	}
	record, err := h.attendance.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, attendanceEnvelope{Attendance: record})
}

// Delete godoc
// @Summary Delete attendance record
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param id path int true "Attendance ID"
// @Success 200 {object} response.Success
// @Failure 404 {object} response.ErrorBody
// @Router /attendance/{id} [delete]
func (h *AttendanceHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "Attendance record")
	if !ok {
		return
	}
	if err := h.attendance.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c)
}
