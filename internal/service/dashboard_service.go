package service

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/noah-isme/lms-admin-api/internal/dto"
	"github.com/noah-isme/lms-admin-api/internal/models"
	appErrors "github.com/noah-isme/lms-admin-api/pkg/errors"
)

const (
	recentStudentsLimit = 4
	topCoursesLimit     = 3
)

type dashboardRepository interface {
	Counts(ctx context.Context) (models.DashboardCounts, error)
	AttendanceTotals(ctx context.Context) (models.AttendanceTotals, error)
	RecentStudents(ctx context.Context, limit int) ([]models.Student, error)
	TopCourses(ctx context.Context, limit int) ([]models.CourseEnrollmentCount, error)
}

// DashboardService composes the admin dashboard.
type DashboardService struct {
	repo   dashboardRepository
	logger *zap.Logger
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(repo dashboardRepository, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{repo: repo, logger: logger}
}

// AttendanceRate returns attended/total as a rounded percentage, 0 when there
// are no records.
func AttendanceRate(totals models.AttendanceTotals) int {
	if totals.Total <= 0 {
		return 0
	}
	return int(math.Round(float64(totals.Attended) * 100 / float64(totals.Total)))
}

// CourseCapacity estimates seats for a course with the given enrollment and
// returns the fill ratio clamped to 1.
func CourseCapacity(enrolled int) (int, float64) {
	headroom := int(math.Ceil(float64(enrolled) * 0.2))
	if headroom < 5 {
		headroom = 5
	}
	capacity := enrolled + headroom
	if capacity < 10 {
		capacity = 10
	}
	progress := float64(enrolled) / float64(capacity)
	if progress > 1 {
		progress = 1
	}
	return capacity, progress
}

// Summary builds the dashboard payload.
func (s *DashboardService) Summary(ctx context.Context) (*dto.DashboardResponse, error) {
	counts, err := s.repo.Counts(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to count entities")
	}
	totals, err := s.repo.AttendanceTotals(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load attendance totals")
	}
	recent, err := s.repo.RecentStudents(ctx, recentStudentsLimit)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load recent students")
	}
	ranked, err := s.repo.TopCourses(ctx, topCoursesLimit)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load top courses")
	}

	if recent == nil {
		recent = []models.Student{}
	}
	top := make([]dto.TopCourse, 0, len(ranked))
	for _, course := range ranked {
		capacity, progress := CourseCapacity(course.Enrolled)
		top = append(top, dto.TopCourse{
			ID:          course.ID,
			Name:        course.Name,
			Level:       course.Level,
			Status:      course.Status,
			TeacherName: course.TeacherName,
			Enrolled:    course.Enrolled,
			Capacity:    capacity,
			Progress:    progress,
		})
	}

	return &dto.DashboardResponse{
		Stats:          counts,
		AttendanceRate: AttendanceRate(totals),
		Attendance:     totals,
		RecentStudents: recent,
		TopCourses:     top,
	}, nil
}
