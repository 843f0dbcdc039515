package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/lms-admin-api/internal/models"
	appErrors "github.com/noah-isme/lms-admin-api/pkg/errors"
)

const studentEmailConflict = "A student with this email already exists."

type studentRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, int, error)
	ListAll(ctx context.Context, filter models.StudentFilter) ([]models.Student, error)
	FindByID(ctx context.Context, id int64) (*models.Student, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
}

// CreateStudentRequest holds payload for creating students.
type CreateStudentRequest struct {
	FullName string  `json:"full_name" validate:"required,max=200"`
	Email    *string `json:"email" validate:"omitempty,email,max=254"`
	Phone    *string `json:"phone" validate:"omitempty,max=50"`
	Status   string  `json:"status"`
}

// UpdateStudentRequest holds a partial student update. Omitted fields keep
// their value; an empty string clears an optional field.
type UpdateStudentRequest struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Status   *string `json:"status"`
}

// StudentService handles student use-cases.
type StudentService struct {
	repo      studentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, validator: validate, logger: logger}
}

func studentFilter(query ListQuery) models.StudentFilter {
	return models.StudentFilter{
		Search:      strings.TrimSpace(query.Search),
		Status:      models.NormalizeStudentStatus(query.Status, ""),
		PageRequest: query.PageRequest(),
	}
}

// List returns a page of students.
func (s *StudentService) List(ctx context.Context, query ListQuery) (models.Page[models.Student], error) {
	filter := studentFilter(query)
	students, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return models.Page[models.Student]{}, appErrors.Internal(err, "failed to list students")
	}
	return models.NewPage(students, total, filter.PageRequest), nil
}

// Roster returns every student matching the query, ignoring paging.
func (s *StudentService) Roster(ctx context.Context, query ListQuery) ([]models.Student, error) {
	students, err := s.repo.ListAll(ctx, studentFilter(query))
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load student roster")
	}
	return students, nil
}

// Get returns a single student.
func (s *StudentService) Get(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("Student")
		}
		return nil, appErrors.Internal(err, "failed to load student")
	}
	return student, nil
}

// Create registers a new student.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = lowerOptional(req.Email)
	req.Phone = trimOptional(req.Phone)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	student := &models.Student{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Status:   models.NormalizeStudentStatus(req.Status, models.StudentStatusActive),
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, writeError(err, "create student", studentEmailConflict, "")
	}
	s.logger.Info("student created", zap.Int64("student_id", student.ID))
	return s.Get(ctx, student.ID)
}

// Update applies a partial update to a student.
func (s *StudentService) Update(ctx context.Context, id int64, req UpdateStudentRequest) (*models.Student, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := CreateStudentRequest{
		FullName: strings.TrimSpace(pick(req.FullName, current.FullName)),
		Email:    current.Email,
		Phone:    current.Phone,
	}
	if req.Email != nil {
		merged.Email = lowerOptional(req.Email)
	}
	if req.Phone != nil {
		merged.Phone = trimOptional(req.Phone)
	}
	if err := s.validator.Struct(merged); err != nil {
		return nil, validationError(err)
	}

	student := *current
	student.FullName = merged.FullName
	student.Email = merged.Email
	student.Phone = merged.Phone
	if req.Status != nil {
		student.Status = models.NormalizeStudentStatus(*req.Status, current.Status)
	}
	if err := s.repo.Update(ctx, &student); err != nil {
		if isNotFound(err) {
			return nil, notFound("Student")
		}
		return nil, writeError(err, "update student", studentEmailConflict, "")
	}
	return s.Get(ctx, id)
}

// Delete removes a student; enrollments and attendance cascade in the store.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return notFound("Student")
		}
		return appErrors.Internal(err, "failed to delete student")
	}
	s.logger.Info("student deleted", zap.Int64("student_id", id))
	return nil
}
