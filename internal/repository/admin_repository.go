package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/lms-admin-api/internal/models"
)

// AdminRepository persists admin accounts and their sessions.
type AdminRepository struct {
	db *sqlx.DB
}

// NewAdminRepository constructs an AdminRepository.
func NewAdminRepository(db *sqlx.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// FindByEmail returns the admin with the given lower-cased email.
func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	const query = `SELECT id, name, email, password_hash, created_at FROM admin_users WHERE email = ?`
	var admin models.AdminUser
	if err := r.db.GetContext(ctx, &admin, query, email); err != nil {
		return nil, err
	}
	return &admin, nil
}

// CreateSession stores a freshly issued session token.
func (r *AdminRepository) CreateSession(ctx context.Context, session *models.AdminSession) error {
	const query = `INSERT INTO admin_sessions (admin_id, token, expires_at) VALUES (?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, session.AdminID, session.Token, sqliteTime(session.ExpiresAt)); err != nil {
		return classifyWriteError("create session", err)
	}
	return nil
}

// FindSession resolves a token to the admin that owns it.
func (r *AdminRepository) FindSession(ctx context.Context, token string) (*models.AdminIdentity, error) {
	const query = `SELECT a.id, a.name, a.email, s.token, s.expires_at
        FROM admin_sessions s
        JOIN admin_users a ON a.id = s.admin_id
        WHERE s.token = ?`
	var identity models.AdminIdentity
	if err := r.db.GetContext(ctx, &identity, query, token); err != nil {
		return nil, err
	}
	return &identity, nil
}

// DeleteSession removes a session; deleting an unknown token is not an error.
func (r *AdminRepository) DeleteSession(ctx context.Context, token string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM admin_sessions WHERE token = ?`, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired purges every session that expired at or before now.
func (r *AdminRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM admin_sessions WHERE expires_at <= ?`, sqliteTime(now))
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	purged, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	return purged, nil
}
