package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/lms-admin-api/internal/models"
	appErrors "github.com/noah-isme/lms-admin-api/pkg/errors"
)

type teacherRepository interface {
	List(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, int, error)
	FindByID(ctx context.Context, id int64) (*models.Teacher, error)
	Create(ctx context.Context, teacher *models.Teacher) error
	Update(ctx context.Context, teacher *models.Teacher) error
	Delete(ctx context.Context, id int64) error
}

// CreateTeacherRequest is the payload for adding a teacher.
type CreateTeacherRequest struct {
	FullName  string  `json:"full_name" validate:"required,max=200"`
	Phone     *string `json:"phone" validate:"omitempty,max=50"`
	Specialty *string `json:"specialty" validate:"omitempty,max=200"`
	Status    string  `json:"status"`
}

// UpdateTeacherRequest is a partial teacher update.
type UpdateTeacherRequest struct {
	FullName  *string `json:"full_name"`
	Phone     *string `json:"phone"`
	Specialty *string `json:"specialty"`
	Status    *string `json:"status"`
}

// TeacherService manages teachers.
type TeacherService struct {
	repo      teacherRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeacherService constructs a TeacherService.
func NewTeacherService(repo teacherRepository, validate *validator.Validate, logger *zap.Logger) *TeacherService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{repo: repo, validator: validate, logger: logger}
}

// List returns a page of teachers.
func (s *TeacherService) List(ctx context.Context, query ListQuery) (models.Page[models.Teacher], error) {
	filter := models.TeacherFilter{
		Search:      strings.TrimSpace(query.Search),
		Status:      models.NormalizeTeacherStatus(query.Status, ""),
		PageRequest: query.PageRequest(),
	}
	teachers, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return models.Page[models.Teacher]{}, appErrors.Internal(err, "failed to list teachers")
	}
	return models.NewPage(teachers, total, filter.PageRequest), nil
}

// Get returns a teacher by id.
func (s *TeacherService) Get(ctx context.Context, id int64) (*models.Teacher, error) {
	teacher, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("Teacher")
		}
		return nil, appErrors.Internal(err, "failed to load teacher")
	}
	return teacher, nil
}

// Create adds a teacher.
func (s *TeacherService) Create(ctx context.Context, req CreateTeacherRequest) (*models.Teacher, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Phone = trimOptional(req.Phone)
	req.Specialty = trimOptional(req.Specialty)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	teacher := &models.Teacher{
		FullName:  req.FullName,
		Phone:     req.Phone,
		Specialty: req.Specialty,
		Status:    models.NormalizeTeacherStatus(req.Status, models.TeacherStatusActive),
	}
	if err := s.repo.Create(ctx, teacher); err != nil {
		return nil, appErrors.Internal(err, "failed to create teacher")
	}
	return s.Get(ctx, teacher.ID)
}

// Update applies a partial update.
func (s *TeacherService) Update(ctx context.Context, id int64, req UpdateTeacherRequest) (*models.Teacher, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	merged := CreateTeacherRequest{
		FullName:  strings.TrimSpace(pick(req.FullName, current.FullName)),
		Phone:     current.Phone,
		Specialty: current.Specialty,
	}
	if req.Phone != nil {
		merged.Phone = trimOptional(req.Phone)
	}
	if req.Specialty != nil {
		merged.Specialty = trimOptional(req.Specialty)
	}
	if err := s.validator.Struct(merged); err != nil {
		return nil, validationError(err)
	}

	teacher := *current
	teacher.FullName = merged.FullName
	teacher.Phone = merged.Phone
	teacher.Specialty = merged.Specialty
	if req.Status != nil {
		teacher.Status = models.NormalizeTeacherStatus(*req.Status, current.Status)
	}
	if err := s.repo.Update(ctx, &teacher); err != nil {
		if isNotFound(err) {
			return nil, notFound("Teacher")
		}
		return nil, appErrors.Internal(err, "failed to update teacher")
	}
	return s.Get(ctx, id)
}

// Delete removes a teacher. Courses and enrollments keep their rows with the
// teacher reference cleared by the store.
func (s *TeacherService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return notFound("Teacher")
		}
		return appErrors.Internal(err, "failed to delete teacher")
	}
	return nil
}
