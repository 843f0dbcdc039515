package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lms-admin-api/internal/models"
	appErrors "github.com/noah-isme/lms-admin-api/pkg/errors"
)

type fakeAuthService struct {
	loginReq   models.LoginRequest
	loginErr   error
	loggedOut  string
	loginCalls int
}

func (f *fakeAuthService) Login(_ context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	f.loginCalls++
	f.loginReq = req
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &models.LoginResponse{
		Token:     "tok",
		ExpiresAt: time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC),
		Admin:     models.AdminInfo{ID: 1, Name: "Admin", Email: req.Email},
	}, nil
}

func (f *fakeAuthService) Logout(_ context.Context, token string) error {
	f.loggedOut = token
	return nil
}

func TestAuthHandlerLogin(t *testing.T) {
	svc := &fakeAuthService{}
	r := newRouter()
	r.POST("/auth/login", NewAuthHandler(svc).Login)

	rec := perform(r, http.MethodPost, "/auth/login", `{"email":"admin@lms.local","password":"secret"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "secret", svc.loginReq.Password)
	assert.JSONEq(t, `{"token":"tok","expiresAt":"2026-10-16T08:00:00Z","admin":{"id":1,"name":"Admin","email":"admin@lms.local"}}`, rec.Body.String())
}

func TestAuthHandlerLoginRejectsMissingFields(t *testing.T) {
	svc := &fakeAuthService{}
	r := newRouter()
	r.POST("/auth/login", NewAuthHandler(svc).Login)

	rec := perform(r, http.MethodPost, "/auth/login", `{"email":"admin@lms.local"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email and password are required.", errorOf(t, rec))
	assert.Zero(t, svc.loginCalls)
}

func TestAuthHandlerLoginInvalidCredentials(t *testing.T) {
	svc := &fakeAuthService{loginErr: appErrors.ErrInvalidCredentials}
	r := newRouter()
	r.POST("/auth/login", NewAuthHandler(svc).Login)

	rec := perform(r, http.MethodPost, "/auth/login", `{"email":"a@b.c","password":"x"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandlerMeAndLogout(t *testing.T) {
	svc := &fakeAuthService{}
	h := NewAuthHandler(svc)
	admin := &models.AdminIdentity{ID: 7, Name: "Admin", Email: "admin@lms.local", Token: "abc"}

	r := newRouter()
	r.GET("/auth/me", withAdmin(admin), h.Me)
	r.POST("/auth/logout", withAdmin(admin), h.Logout)
	r.GET("/anonymous/me", h.Me)

	rec := perform(r, http.MethodGet, "/auth/me", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"admin":{"id":7,"name":"Admin","email":"admin@lms.local"}}`, rec.Body.String())

	rec = perform(r, http.MethodPost, "/auth/logout", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc", svc.loggedOut)

	rec = perform(r, http.MethodGet, "/anonymous/me", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
