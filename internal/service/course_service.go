package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/lms-admin-api/internal/models"
	appErrors "github.com/noah-isme/lms-admin-api/pkg/errors"
)

const (
	courseNameConflict = "A course with this name already exists."
	teacherMissing     = "Teacher does not exist."
)

type courseRepository interface {
	List(ctx context.Context, filter models.CourseFilter) ([]models.CourseDetail, int, error)
	FindByID(ctx context.Context, id int64) (*models.CourseDetail, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id int64) error
}

type courseEnrollmentLister interface {
	ListByCourse(ctx context.Context, courseID int64) ([]models.EnrollmentDetail, error)
}

// CreateCourseRequest is the payload for adding a course. A teacher_id of 0
// means no teacher.
type CreateCourseRequest struct {
	Name      string   `json:"name" validate:"required,max=200"`
	Level     *string  `json:"level" validate:"omitempty,max=100"`
	Price     *float64 `json:"price" validate:"omitempty,gte=0"`
	Duration  *string  `json:"duration" validate:"omitempty,max=100"`
	TeacherID *int64   `json:"teacher_id" validate:"omitempty,gt=0"`
	Status    string   `json:"status"`
}

// UpdateCourseRequest is a partial course update; teacher_id 0 unassigns the
// teacher.
type UpdateCourseRequest struct {
	Name      *string  `json:"name"`
	Level     *string  `json:"level"`
	Price     *float64 `json:"price"`
	Duration  *string  `json:"duration"`
	TeacherID *int64   `json:"teacher_id"`
	Status    *string  `json:"status"`
}

// CourseWithEnrollments is the course detail view.
type CourseWithEnrollments struct {
	Course      *models.CourseDetail      `json:"course"`
	Enrollments []models.EnrollmentDetail `json:"enrollments"`
}

// CourseService manages courses.
type CourseService struct {
	repo        courseRepository
	enrollments courseEnrollmentLister
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewCourseService constructs a CourseService.
func NewCourseService(repo courseRepository, enrollments courseEnrollmentLister, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, enrollments: enrollments, validator: validate, logger: logger}
}

func optionalTeacher(id *int64) *int64 {
	if id == nil || *id == 0 {
		return nil
	}
	return id
}

// List returns a page of courses with teacher names and enrollment counts.
func (s *CourseService) List(ctx context.Context, query ListQuery, teacherID int64) (models.Page[models.CourseDetail], error) {
	filter := models.CourseFilter{
		Search:      strings.TrimSpace(query.Search),
		Status:      models.NormalizeCourseStatus(query.Status, ""),
		TeacherID:   teacherID,
		PageRequest: query.PageRequest(),
	}
	courses, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return models.Page[models.CourseDetail]{}, appErrors.Internal(err, "failed to list courses")
	}
	return models.NewPage(courses, total, filter.PageRequest), nil
}

// Get returns a course.
func (s *CourseService) Get(ctx context.Context, id int64) (*models.CourseDetail, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("Course")
		}
		return nil, appErrors.Internal(err, "failed to load course")
	}
	return course, nil
}

// Detail returns a course together with its enrollments.
func (s *CourseService) Detail(ctx context.Context, id int64) (*CourseWithEnrollments, error) {
	course, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	enrollments, err := s.enrollments.ListByCourse(ctx, id)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load course enrollments")
	}
	if enrollments == nil {
		enrollments = []models.EnrollmentDetail{}
	}
	return &CourseWithEnrollments{Course: course, Enrollments: enrollments}, nil
}

// Create adds a course.
func (s *CourseService) Create(ctx context.Context, req CreateCourseRequest) (*models.CourseDetail, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Level = trimOptional(req.Level)
	req.Duration = trimOptional(req.Duration)
	req.TeacherID = optionalTeacher(req.TeacherID)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	course := &models.Course{
		Name:      req.Name,
		Level:     req.Level,
		Price:     pick(req.Price, 0),
		Duration:  req.Duration,
		TeacherID: req.TeacherID,
		Status:    models.NormalizeCourseStatus(req.Status, models.CourseStatusActive),
	}
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, writeError(err, "create course", courseNameConflict, teacherMissing)
	}
	return s.Get(ctx, course.ID)
}

// Update applies a partial update.
func (s *CourseService) Update(ctx context.Context, id int64, req UpdateCourseRequest) (*models.CourseDetail, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	merged := CreateCourseRequest{
		Name:      strings.TrimSpace(pick(req.Name, current.Name)),
		Level:     current.Level,
		Price:     &current.Price,
		Duration:  current.Duration,
		TeacherID: current.TeacherID,
	}
	if req.Level != nil {
		merged.Level = trimOptional(req.Level)
	}
	if req.Price != nil {
		merged.Price = req.Price
	}
	if req.Duration != nil {
		merged.Duration = trimOptional(req.Duration)
	}
	if req.TeacherID != nil {
		merged.TeacherID = optionalTeacher(req.TeacherID)
	}
	if err := s.validator.Struct(merged); err != nil {
		return nil, validationError(err)
	}

	course := current.Course
	course.Name = merged.Name
	course.Level = merged.Level
	course.Price = *merged.Price
	course.Duration = merged.Duration
	course.TeacherID = merged.TeacherID
	if req.Status != nil {
		course.Status = models.NormalizeCourseStatus(*req.Status, current.Status)
	}
	if err := s.repo.Update(ctx, &course); err != nil {
		if isNotFound(err) {
			return nil, notFound("Course")
		}
		return nil, writeError(err, "update course", courseNameConflict, teacherMissing)
	}
	return s.Get(ctx, id)
}

// Delete removes a course with its enrollments and attendance.
func (s *CourseService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return notFound("Course")
		}
		return appErrors.Internal(err, "failed to delete course")
	}
	return nil
}
