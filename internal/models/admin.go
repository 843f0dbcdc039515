package models

import "time"

// AdminUser is an institute staff account allowed to use the API.
type AdminUser struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// AdminSession is a bearer token issued at login.
type AdminSession struct {
	Token     string    `db:"token" json:"-"`
	AdminID   int64     `db:"admin_id" json:"admin_id"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// AdminIdentity is the authenticated admin resolved from a session token.
type AdminIdentity struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Token     string    `db:"token" json:"-"`
	ExpiresAt time.Time `db:"expires_at" json:"-"`
}

// AdminInfo is the public view of an admin in responses.
type AdminInfo struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Info strips session details from the identity.
func (a *AdminIdentity) Info() AdminInfo {
	return AdminInfo{ID: a.ID, Name: a.Name, Email: a.Email}
}

// LoginRequest holds credentials for authenticating an admin.
type LoginRequest struct {
	Email    string `json:"email" binding:"required" validate:"required"`
	Password string `json:"password" binding:"required" validate:"required"`
}

// LoginResponse returns the issued session token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Admin     AdminInfo `json:"admin"`
}
