package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/lms-admin-api/internal/crypto"
	"github.com/noah-isme/lms-admin-api/internal/models"
	appErrors "github.com/noah-isme/lms-admin-api/pkg/errors"
)

// SessionTTL is the fixed lifetime of a session; it does not slide on use.
const SessionTTL = 24 * time.Hour

type adminRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	CreateSession(ctx context.Context, session *models.AdminSession) error
	FindSession(ctx context.Context, token string) (*models.AdminIdentity, error)
	DeleteSession(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// AuthService provides admin login and session validation.
type AuthService struct {
	repo      adminRepository
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
	now       func() time.Time
	newToken  func() (string, error)
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(repo adminRepository, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	return &AuthService{
		repo:      repo,
		validator: validate,
		logger:    logger,
		metrics:   metrics,
		now:       time.Now,
		newToken:  crypto.NewSessionToken,
	}
}

// Login verifies credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "Email and password are required.")
	}

	admin, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if isNotFound(err) {
			s.metrics.RecordLogin(LoginResultInvalid)
			return nil, appErrors.ErrInvalidCredentials
		}
		s.metrics.RecordLogin(LoginResultError)
		return nil, appErrors.Internal(err, "failed to load admin")
	}
	if !crypto.VerifyPassword(req.Password, admin.PasswordHash) {
		s.metrics.RecordLogin(LoginResultInvalid)
		return nil, appErrors.ErrInvalidCredentials
	}

	now := s.now().UTC().Truncate(time.Second)
	if purged, err := s.repo.DeleteExpired(ctx, now); err != nil {
		s.logger.Warn("failed to purge expired sessions", zap.Error(err))
	} else {
		s.metrics.RecordSessionsPurged(purged)
	}

	token, err := s.newToken()
	if err != nil {
		s.metrics.RecordLogin(LoginResultError)
		return nil, appErrors.Internal(err, "failed to generate session token")
	}
	session := &models.AdminSession{
		Token:     token,
		AdminID:   admin.ID,
		ExpiresAt: now.Add(SessionTTL),
		CreatedAt: now,
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		s.metrics.RecordLogin(LoginResultError)
		return nil, appErrors.Internal(err, "failed to persist session")
	}

	s.metrics.RecordLogin(LoginResultSuccess)
	s.logger.Info("admin logged in", zap.Int64("admin_id", admin.ID))

	return &models.LoginResponse{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		Admin:     models.AdminInfo{ID: admin.ID, Name: admin.Name, Email: admin.Email},
	}, nil
}

// Authenticate resolves a bearer token to its admin. Expired sessions are
// deleted on sight.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.AdminIdentity, error) {
	if !crypto.IsSessionToken(token) {
		return nil, appErrors.ErrUnauthorized
	}
	identity, err := s.repo.FindSession(ctx, token)
	if err != nil {
		if isNotFound(err) {
			return nil, appErrors.ErrUnauthorized
		}
		return nil, appErrors.Internal(err, "failed to load session")
	}
	if !s.now().Before(identity.ExpiresAt) {
		if err := s.repo.DeleteSession(ctx, token); err != nil {
			s.logger.Warn("failed to delete expired session", zap.Error(err))
		}
		return nil, appErrors.ErrSessionExpired
	}
	return identity, nil
}

// Logout revokes the given session token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.repo.DeleteSession(ctx, token); err != nil {
		return appErrors.Internal(err, "failed to delete session")
	}
	return nil
}
