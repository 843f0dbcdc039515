package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/lms-admin-api/internal/models"
	appErrors "github.com/noah-isme/lms-admin-api/pkg/errors"
)

const enrollmentConflict = "Student is already enrolled in this course."

type enrollmentRepository interface {
	List(ctx context.Context, filter models.EnrollmentFilter) ([]models.EnrollmentDetail, int, error)
	FindByID(ctx context.Context, id int64) (*models.EnrollmentDetail, error)
	Exists(ctx context.Context, studentID, courseID int64) (bool, error)
	Create(ctx context.Context, enrollment *models.Enrollment) error
	Update(ctx context.Context, enrollment *models.Enrollment) error
	Delete(ctx context.Context, id int64) error
}

type studentReader interface {
	FindByID(ctx context.Context, id int64) (*models.Student, error)
}

type courseReader interface {
	FindByID(ctx context.Context, id int64) (*models.CourseDetail, error)
}

// CreateEnrollmentRequest enrolls a student into a course.
type CreateEnrollmentRequest struct {
	StudentID int64   `json:"student_id" validate:"required,gt=0"`
	CourseID  int64   `json:"course_id" validate:"required,gt=0"`
	TeacherID *int64  `json:"teacher_id" validate:"omitempty,gt=0"`
	StartDate *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	Status    string  `json:"status"`
	Grade     *string `json:"grade" validate:"omitempty,max=20"`
}

// UpdateEnrollmentRequest changes the mutable parts of an enrollment.
type UpdateEnrollmentRequest struct {
	TeacherID *int64  `json:"teacher_id"`
	StartDate *string `json:"start_date"`
	Status    *string `json:"status"`
	Grade     *string `json:"grade"`
}

// EnrollmentListQuery adds enrollment filters to the common list query.
type EnrollmentListQuery struct {
	ListQuery
	StudentID int64
	CourseID  int64
}

// EnrollmentService manages enrollments.
type EnrollmentService struct {
	repo      enrollmentRepository
	students  studentReader
	courses   courseReader
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewEnrollmentService constructs an EnrollmentService.
func NewEnrollmentService(repo enrollmentRepository, students studentReader, courses courseReader, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{
		repo:      repo,
		students:  students,
		courses:   courses,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// List returns a page of enrollments.
func (s *EnrollmentService) List(ctx context.Context, query EnrollmentListQuery) (models.Page[models.EnrollmentDetail], error) {
	filter := models.EnrollmentFilter{
		StudentID:   query.StudentID,
		CourseID:    query.CourseID,
		Status:      models.NormalizeEnrollmentStatus(query.Status, ""),
		PageRequest: query.PageRequest(),
	}
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return models.Page[models.EnrollmentDetail]{}, appErrors.Internal(err, "failed to list enrollments")
	}
	return models.NewPage(items, total, filter.PageRequest), nil
}

// Get returns an enrollment.
func (s *EnrollmentService) Get(ctx context.Context, id int64) (*models.EnrollmentDetail, error) {
	enrollment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("Enrollment")
		}
		return nil, appErrors.Internal(err, "failed to load enrollment")
	}
	return enrollment, nil
}

// Create enrolls a student. Both the student and the course must exist; the
// course's teacher is used when none is given.
func (s *EnrollmentService) Create(ctx context.Context, req CreateEnrollmentRequest) (*models.EnrollmentDetail, error) {
	req.TeacherID = optionalTeacher(req.TeacherID)
	req.StartDate = trimOptional(req.StartDate)
	req.Grade = trimOptional(req.Grade)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	if _, err := s.students.FindByID(ctx, req.StudentID); err != nil {
		if isNotFound(err) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "Student not found.")
		}
		return nil, appErrors.Internal(err, "failed to load student")
	}
	course, err := s.courses.FindByID(ctx, req.CourseID)
	if err != nil {
		if isNotFound(err) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "Course not found.")
		}
		return nil, appErrors.Internal(err, "failed to load course")
	}

	teacherID := req.TeacherID
	if teacherID == nil {
		teacherID = course.TeacherID
	}
	startDate := req.StartDate
	if startDate == nil {
		d := today(s.now)
		startDate = &d
	}
	enrollment := &models.Enrollment{
		StudentID: req.StudentID,
		CourseID:  req.CourseID,
		TeacherID: teacherID,
		StartDate: startDate,
		Status:    models.NormalizeEnrollmentStatus(req.Status, models.EnrollmentStatusActive),
		Grade:     req.Grade,
	}
	if err := s.repo.Create(ctx, enrollment); err != nil {
		return nil, writeError(err, "create enrollment", enrollmentConflict, teacherMissing)
	}
	s.logger.Info("student enrolled",
		zap.Int64("enrollment_id", enrollment.ID),
		zap.Int64("student_id", enrollment.StudentID),
		zap.Int64("course_id", enrollment.CourseID),
	)
	return s.Get(ctx, enrollment.ID)
}

// Update applies a partial update to an enrollment.
func (s *EnrollmentService) Update(ctx context.Context, id int64, req UpdateEnrollmentRequest) (*models.EnrollmentDetail, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	merged := CreateEnrollmentRequest{
		StudentID: current.StudentID,
		CourseID:  current.CourseID,
		TeacherID: current.TeacherID,
		StartDate: current.StartDate,
		Grade:     current.Grade,
	}
	if req.TeacherID != nil {
		merged.TeacherID = optionalTeacher(req.TeacherID)
	}
	if req.StartDate != nil {
		merged.StartDate = trimOptional(req.StartDate)
	}
	if req.Grade != nil {
		merged.Grade = trimOptional(req.Grade)
	}
	if err := s.validator.Struct(merged); err != nil {
		return nil, validationError(err)
	}

	enrollment := current.Enrollment
	enrollment.TeacherID = merged.TeacherID
	enrollment.StartDate = merged.StartDate
	enrollment.Grade = merged.Grade
	if req.Status != nil {
		enrollment.Status = models.NormalizeEnrollmentStatus(*req.Status, current.Status)
	}
	if err := s.repo.Update(ctx, &enrollment); err != nil {
		if isNotFound(err) {
			return nil, notFound("Enrollment")
		}
		return nil, writeError(err, "update enrollment", enrollmentConflict, teacherMissing)
	}
	return s.Get(ctx, id)
}

// Delete removes an enrollment.
func (s *EnrollmentService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return notFound("Enrollment")
		}
		return appErrors.Internal(err, "failed to delete enrollment")
	}
	return nil
}
