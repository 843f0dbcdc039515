package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/lms-admin-api/api/swagger"
	"github.com/noah-isme/lms-admin-api/internal/handler"
	"github.com/noah-isme/lms-admin-api/internal/middleware"
	"github.com/noah-isme/lms-admin-api/internal/migration"
	"github.com/noah-isme/lms-admin-api/internal/repository"
	"github.com/noah-isme/lms-admin-api/internal/service"
	"github.com/noah-isme/lms-admin-api/pkg/config"
	"github.com/noah-isme/lms-admin-api/pkg/database"
	"github.com/noah-isme/lms-admin-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/lms-admin-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/lms-admin-api/pkg/middleware/requestid"
)

const shutdownTimeout = 10 * time.Second

// Server owns the store handle and the HTTP engine built on top of it.
type Server struct {
	cfg     *config.Config
	logger  *zap.Logger
	db      *sqlx.DB
	engine  *gin.Engine
	metrics *service.MetricsService
}

// New opens the store, applies migrations and assembles the HTTP engine.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := database.NewSQLite(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	migrator, err := migration.New(db.DB, migration.Options{
		Admin:        cfg.Admin,
		SeedDemoData: cfg.Seed.DemoData,
		Logger:       log.Named("migration"),
	})
	if err == nil {
		err = migrator.Up(ctx)
	}
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &Server{cfg: cfg, logger: log, db: db}
	if cfg.Metrics.Enabled {
		s.metrics = service.NewMetricsService()
	}
	s.engine = s.buildEngine()
	return s, nil
}

func (s *Server) buildEngine() *gin.Engine {
	validate := service.NewValidator()

	admins := repository.NewAdminRepository(s.db)
	studentRepo := repository.NewStudentRepository(s.db)
	teacherRepo := repository.NewTeacherRepository(s.db)
	courseRepo := repository.NewCourseRepository(s.db)
	enrollmentRepo := repository.NewEnrollmentRepository(s.db)
	attendanceRepo := repository.NewAttendanceRepository(s.db)
	dashboardRepo := repository.NewDashboardRepository(s.db)

	authSvc := service.NewAuthService(admins, validate, s.logger.Named("auth"), s.metrics)
	studentSvc := service.NewStudentService(studentRepo, validate, s.logger.Named("students"))
	teacherSvc := service.NewTeacherService(teacherRepo, validate, s.logger.Named("teachers"))
	courseSvc := service.NewCourseService(courseRepo, enrollmentRepo, validate, s.logger.Named("courses"))
	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, studentRepo, courseRepo, validate, s.logger.Named("enrollments"))
	attendanceSvc := service.NewAttendanceService(attendanceRepo, enrollmentRepo, validate, s.logger.Named("attendance"))
	dashboardSvc := service.NewDashboardService(dashboardRepo, s.logger.Named("dashboard"))
	exportSvc := service.NewExportService(studentSvc, s.logger.Named("export"))

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(s.logger))
	r.Use(middleware.Metrics(s.metrics))
	r.Use(corsmiddleware.New(s.cfg.CORS.AllowedOrigins))

	system := handler.NewMetricsHandler(s.metrics)
	handler.RegisterRoutes(r.Group("/api"), handler.Handlers{
		Auth:        handler.NewAuthHandler(authSvc),
		Students:    handler.NewStudentHandler(studentSvc, exportSvc),
		Teachers:    handler.NewTeacherHandler(teacherSvc),
		Courses:     handler.NewCourseHandler(courseSvc),
		Enrollments: handler.NewEnrollmentHandler(enrollmentSvc),
		Attendance:  handler.NewAttendanceHandler(attendanceSvc),
		Dashboard:   handler.NewDashboardHandler(dashboardSvc),
		System:      system,
	}, middleware.Session(authSvc))

	if s.metrics != nil {
		r.GET("/metrics", system.Prometheus)
	}
	if s.cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	return r
}

// Handler returns the HTTP handler serving the API.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", s.cfg.Env))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Close releases the store handle.
func (s *Server) Close() error {
	return s.db.Close()
}
