package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/lms-admin-api/internal/models"
	appErrors "github.com/noah-isme/lms-admin-api/pkg/errors"
)

const attendanceConflict = "Attendance already recorded for this date."

type attendanceRepository interface {
	List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceDetail, int, error)
	FindByID(ctx context.Context, id int64) (*models.AttendanceDetail, error)
	Create(ctx context.Context, record *models.AttendanceRecord) error
	Update(ctx context.Context, record *models.AttendanceRecord) error
	Delete(ctx context.Context, id int64) error
}

type enrollmentChecker interface {
	Exists(ctx context.Context, studentID, courseID int64) (bool, error)
}

// CreateAttendanceRequest records attendance for an enrolled student.
type CreateAttendanceRequest struct {
	StudentID      int64   `json:"student_id" validate:"required,gt=0"`
	CourseID       int64   `json:"course_id" validate:"required,gt=0"`
	AttendanceDate string  `json:"attendance_date" validate:"required,datetime=2006-01-02"`
	Status         string  `json:"status"`
	Notes          *string `json:"notes" validate:"omitempty,max=1000"`
}

// UpdateAttendanceRequest changes the status or notes of a record.
type UpdateAttendanceRequest struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

// AttendanceListQuery adds attendance filters to the common list query.
type AttendanceListQuery struct {
	ListQuery
	StudentID int64
	CourseID  int64
	Date      string
}

// AttendanceService records attendance against enrollments.
type AttendanceService struct {
	repo        attendanceRepository
	enrollments enrollmentChecker
	validator   *validator.Validate
	logger      *zap.Logger
	now         func() time.Time
}

// NewAttendanceService constructs an AttendanceService.
func NewAttendanceService(repo attendanceRepository, enrollments enrollmentChecker, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{
		repo:        repo,
		enrollments: enrollments,
		validator:   validate,
		logger:      logger,
		now:         time.Now,
	}
}

// List returns a page of attendance records.
func (s *AttendanceService) List(ctx context.Context, query AttendanceListQuery) (models.Page[models.AttendanceDetail], error) {
	filter := models.AttendanceFilter{
		StudentID:   query.StudentID,
		CourseID:    query.CourseID,
		Date:        strings.TrimSpace(query.Date),
		Status:      models.NormalizeAttendanceStatus(query.Status, ""),
		PageRequest: query.PageRequest(),
	}
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return models.Page[models.AttendanceDetail]{}, appErrors.Internal(err, "failed to list attendance")
	}
	return models.NewPage(items, total, filter.PageRequest), nil
}

// Get returns an attendance record.
func (s *AttendanceService) Get(ctx context.Context, id int64) (*models.AttendanceDetail, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("Attendance record")
		}
		return nil, appErrors.Internal(err, "failed to load attendance")
	}
	return record, nil
}

// Create records attendance. The student must be enrolled in the course.
func (s *AttendanceService) Create(ctx context.Context, req CreateAttendanceRequest) (*models.AttendanceDetail, error) {
	req.AttendanceDate = strings.TrimSpace(req.AttendanceDate)
	if req.AttendanceDate == "" {
		req.AttendanceDate = today(s.now)
	}
	req.Notes = trimOptional(req.Notes)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	enrolled, err := s.enrollments.Exists(ctx, req.StudentID, req.CourseID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to check enrollment")
	}
	if !enrolled {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Student is not enrolled in this course.")
	}

	record := &models.AttendanceRecord{
		StudentID:      req.StudentID,
		CourseID:       req.CourseID,
		AttendanceDate: req.AttendanceDate,
		Status:         models.NormalizeAttendanceStatus(req.Status, models.AttendanceStatusPresent),
		Notes:          req.Notes,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, writeError(err, "record attendance", attendanceConflict, "Student is not enrolled in this course.")
	}
	return s.Get(ctx, record.ID)
}

// Update changes the status or notes of a record.
func (s *AttendanceService) Update(ctx context.Context, id int64, req UpdateAttendanceRequest) (*models.AttendanceDetail, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	record := current.AttendanceRecord
	if req.Status != nil {
		record.Status = models.NormalizeAttendanceStatus(*req.Status, current.Status)
	}
	if req.Notes != nil {
		record.Notes = trimOptional(req.Notes)
		if record.Notes != nil {
			if err := s.validator.Var(*record.Notes, "max=1000"); err != nil {
				return nil, appErrors.Validation(err, "notes must be at most 1000 characters.")
			}
		}
	}
	if err := s.repo.Update(ctx, &record); err != nil {
		if isNotFound(err) {
			return nil, notFound("Attendance record")
		}
		return nil, appErrors.Internal(err, "failed to update attendance")
	}
	return s.Get(ctx, id)
}

// Delete removes an attendance record.
func (s *AttendanceService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return notFound("Attendance record")
		}
		return appErrors.Internal(err, "failed to delete attendance")
	}
	return nil
}
