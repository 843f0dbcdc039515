package service

import (
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/lms-admin-api/internal/models"
	appErrors "github.com/noah-isme/lms-admin-api/pkg/errors"
)

const dateLayout = "2006-01-02"

// ListQuery carries the raw list parameters shared by every resource.
type ListQuery struct {
	Page   int
	Limit  int
	Search string
	Status string
}

// PageRequest clamps the raw paging parameters.
func (q ListQuery) PageRequest() models.PageRequest {
	return models.NewPageRequest(q.Page, q.Limit)
}

// NewValidator returns a validator that reports fields by their JSON names.
func NewValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}

// validationError turns validator output into a client-facing 400.
func validationError(err error) *appErrors.Error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return appErrors.Validation(err, appErrors.ErrValidation.Message)
	}
	fe := fieldErrs[0]
	var message string
	switch fe.Tag() {
	case "required":
		message = fmt.Sprintf("%s is required.", fe.Field())
	case "email":
		message = fmt.Sprintf("%s must be a valid email address.", fe.Field())
	case "datetime":
		message = fmt.Sprintf("%s must be a date in YYYY-MM-DD format.", fe.Field())
	case "max":
		message = fmt.Sprintf("%s must be at most %s characters.", fe.Field(), fe.Param())
	case "gt":
		message = fmt.Sprintf("%s must be a positive number.", fe.Field())
	case "gte":
		message = fmt.Sprintf("%s must not be negative.", fe.Field())
	default:
		message = fmt.Sprintf("%s is invalid.", fe.Field())
	}
	return appErrors.Validation(err, message)
}

func notFound(entity string) *appErrors.Error {
	return appErrors.Clone(appErrors.ErrNotFound, entity+" not found")
}

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// trimOptional trims s and maps blank input to nil.
func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func lowerOptional(s *string) *string {
	s = trimOptional(s)
	if s == nil {
		return nil
	}
	lowered := strings.ToLower(*s)
	return &lowered
}

// pick returns override when it is set and current otherwise.
func pick[T any](override *T, current T) T {
	if override == nil {
		return current
	}
	return *override
}

// writeError maps classified repository write errors onto client errors.
// Duplicate keys become a 409 with conflictMsg, foreign key failures a 400
// with fkMsg when one is given.
func writeError(err error, op, conflictMsg, fkMsg string) *appErrors.Error {
	switch {
	case errors.Is(err, appErrors.ErrDuplicateKey):
		return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, conflictMsg)
	case fkMsg != "" && errors.Is(err, appErrors.ErrForeignKey):
		return appErrors.Validation(err, fkMsg)
	default:
		return appErrors.Internal(err, "failed to "+op)
	}
}

func today(now func() time.Time) string {
	return now().Format(dateLayout)
}
