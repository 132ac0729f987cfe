package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hireai/waitlist-manager/internal/auth/jwt"
	"github.com/hireai/waitlist-manager/internal/auth/policy"
	"github.com/hireai/waitlist-manager/internal/dependency/mocks"
	"github.com/hireai/waitlist-manager/internal/entity"
	gerr "github.com/hireai/waitlist-manager/internal/errors"
	"github.com/hireai/waitlist-manager/internal/form"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	jwtSecret = "hehe"

	adminID     = "6d2b1c4e-1f7a-4c55-9a57-0d3c2b1a0e11"
	email       = "ops@hireai.dev"
	password    = "testPassword"
	newPassword = "newPassword"
)

func newServer(t *testing.T) (*Server, *mocks.Admin) {
	t.Helper()
	as := mocks.NewAdmin(t)
	srv, err := New(&Config{
		JWTSecret:  jwtSecret,
		JWTTTL:     time.Hour,
		BcryptCost: bcrypt.MinCost,
	}, as)
	require.NoError(t, err)
	srv.now = func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC) }
	return srv, as
}

func testAdmin(t *testing.T, srv *Server, role entity.AdminRole) *entity.Admin {
	t.Helper()
	hash, err := srv.HashPassword(password)
	require.NoError(t, err)
	return &entity.Admin{
		ID: adminID,
		AdminInsert: entity.AdminInsert{
			Email:        email,
			Name:         "Ops",
			PasswordHash: hash,
			Role:         role,
		},
		IsActive: true,
	}
}

func TestNew(t *testing.T) {
	_, err := New(&Config{}, mocks.NewAdmin(t))
	assert.Error(t, err)

	srv, err := New(&Config{JWTSecret: jwtSecret}, mocks.NewAdmin(t))
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, srv.jwtTTL)
	assert.Equal(t, bcrypt.DefaultCost, srv.cost)

	_, err = New(&Config{JWTSecret: jwtSecret, BcryptCost: 99}, mocks.NewAdmin(t))
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	srv, as := newServer(t)
	a := testAdmin(t, srv, entity.AdminRoleAdmin)

	as.EXPECT().GetAdminByEmail(ctx, email).Return(a, nil)
	as.EXPECT().SetLastLogin(ctx, adminID, srv.now()).Return(nil).Once()

	resp, err := srv.Login(ctx, &form.LoginRequest{Email: "  OPS@hireai.dev ", Password: password})
	require.NoError(t, err)
	assert.Equal(t, email, resp.Admin.Email)
	require.NotNil(t, resp.Admin.LastLoginAt)

	claims, err := jwt.VerifyToken(srv.JwtAuth, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, adminID, claims.Subject)
	assert.Equal(t, "admin", claims.Role)

	_, err = srv.Login(ctx, &form.LoginRequest{Email: email, Password: "wrong-password"})
	assert.ErrorIs(t, err, gerr.ErrBadCredentials)
}

func TestLoginFailures(t *testing.T) {
	ctx := context.Background()
	srv, as := newServer(t)

	_, err := srv.Login(ctx, &form.LoginRequest{Email: "nope"})
	assert.Equal(t, gerr.KindValidationFailed, gerr.KindOf(err))

	as.EXPECT().GetAdminByEmail(ctx, "ghost@hireai.dev").Return(nil, gerr.ErrAdminNotFound).Once()
	_, err = srv.Login(ctx, &form.LoginRequest{Email: "ghost@hireai.dev", Password: password})
	assert.ErrorIs(t, err, gerr.ErrBadCredentials)

	inactive := testAdmin(t, srv, entity.AdminRoleAdmin)
	inactive.IsActive = false
	as.EXPECT().GetAdminByEmail(ctx, email).Return(inactive, nil).Once()
	_, err = srv.Login(ctx, &form.LoginRequest{Email: email, Password: password})
	assert.ErrorIs(t, err, gerr.ErrAccountDeactivated)
}

func TestWithAuth(t *testing.T) {
	srv, as := newServer(t)
	a := testAdmin(t, srv, entity.AdminRoleAdmin)

	token, err := jwt.NewTokenWithClaims(srv.JwtAuth, time.Hour, jwt.Claims{Subject: adminID, Role: "admin"})
	require.NoError(t, err)

	var seen *entity.Admin
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = AdminFromContext(r.Context())
		w.Write([]byte("OK"))
	})
	handlerAuth := srv.WithAuth(nextHandler)

	as.EXPECT().GetAdminByID(mock.Anything, adminID).Return(a, nil).Once()
	req := httptest.NewRequest(http.MethodGet, "http://testing", nil)
	req.Header.Set(AuthHeaderKey, fmt.Sprintf("Bearer %s", token))
	rec := httptest.NewRecorder()
	handlerAuth.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, adminID, seen.ID)

	// bad token case
	req.Header.Set(AuthHeaderKey, "Bearer bad token")
	rec = httptest.NewRecorder()
	handlerAuth.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// missing header
	req.Header.Del(AuthHeaderKey)
	rec = httptest.NewRecorder()
	handlerAuth.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// expired
	expired, err := jwt.NewTokenWithClaims(srv.JwtAuth, -time.Minute, jwt.Claims{Subject: adminID})
	require.NoError(t, err)
	req.Header.Set(AuthHeaderKey, "Bearer "+expired)
	rec = httptest.NewRecorder()
	handlerAuth.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// deactivated after the token was issued
	inactive := *a
	inactive.IsActive = false
	as.EXPECT().GetAdminByID(mock.Anything, adminID).Return(&inactive, nil).Once()
	req.Header.Set(AuthHeaderKey, "Bearer "+token)
	rec = httptest.NewRecorder()
	handlerAuth.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthorize(t *testing.T) {
	srv, _ := newServer(t)
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })

	serve := func(a *entity.Admin, action policy.Action) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if a != nil {
			req = req.WithContext(withAdmin(req.Context(), a))
		}
		rec := httptest.NewRecorder()
		Authorize(action)(ok).ServeHTTP(rec, req)
		return rec.Code
	}

	admin := testAdmin(t, srv, entity.AdminRoleAdmin)
	super := testAdmin(t, srv, entity.AdminRoleSuperAdmin)

	assert.Equal(t, http.StatusNoContent, serve(admin, policy.AnalyticsExport))
	assert.Equal(t, http.StatusForbidden, serve(admin, policy.AdminManage))
	assert.Equal(t, http.StatusNoContent, serve(super, policy.AdminManage))
	assert.Equal(t, http.StatusUnauthorized, serve(nil, policy.AnalyticsRead))
}

func TestChangePassword(t *testing.T) {
	srv, as := newServer(t)
	a := testAdmin(t, srv, entity.AdminRoleAdmin)
	ctx := withAdmin(context.Background(), a)

	err := srv.ChangePassword(ctx, &form.ChangePasswordRequest{CurrentPassword: "wrong", NewPassword: newPassword})
	assert.Equal(t, gerr.KindValidationFailed, gerr.KindOf(err))

	var stored string
	as.EXPECT().ChangePassword(ctx, adminID, mock.Anything).
		Run(func(_ context.Context, _ string, h string) { stored = h }).
		Return(nil).Once()
	require.NoError(t, srv.ChangePassword(ctx, &form.ChangePasswordRequest{CurrentPassword: password, NewPassword: newPassword}))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte(newPassword)))

	err = srv.ChangePassword(context.Background(), &form.ChangePasswordRequest{CurrentPassword: password, NewPassword: newPassword})
	assert.ErrorIs(t, err, gerr.ErrUnauthorized)
}

func TestCreateAndListAdmins(t *testing.T) {
	ctx := context.Background()
	srv, as := newServer(t)
	created := testAdmin(t, srv, entity.AdminRoleSuperAdmin)

	as.EXPECT().AddAdmin(ctx, mock.MatchedBy(func(a *entity.AdminInsert) bool {
		return a.Email == email && a.Role == entity.AdminRoleSuperAdmin &&
			bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil
	})).Return(adminID, nil).Once()
	as.EXPECT().GetAdminByID(ctx, adminID).Return(created, nil).Once()

	d, err := srv.CreateAdmin(ctx, &form.CreateAdminRequest{Email: email, Name: "Ops", Password: password, Role: "super_admin"})
	require.NoError(t, err)
	assert.Equal(t, "super_admin", d.Role)

	as.EXPECT().AddAdmin(ctx, mock.Anything).Return("", gerr.ErrAdminExists).Once()
	_, err = srv.CreateAdmin(ctx, &form.CreateAdminRequest{Email: email, Name: "Ops", Password: password})
	assert.ErrorIs(t, err, gerr.ErrAdminExists)

	_, err = srv.CreateAdmin(ctx, &form.CreateAdminRequest{Email: email, Name: "Ops", Password: "short"})
	assert.Equal(t, gerr.KindValidationFailed, gerr.KindOf(err))

	as.EXPECT().ListAdmins(ctx).Return([]entity.Admin{*created}, nil).Once()
	list, err := srv.ListAdmins(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, adminID, list[0].ID)
}

func TestSetAdminActive(t *testing.T) {
	srv, as := newServer(t)
	ctx := withAdmin(context.Background(), testAdmin(t, srv, entity.AdminRoleSuperAdmin))
	off, on := false, true

	err := srv.SetAdminActive(ctx, adminID, &form.SetActiveRequest{IsActive: &off})
	assert.ErrorIs(t, err, gerr.ErrForbidden)

	as.EXPECT().SetAdminActive(ctx, adminID, true).Return(nil).Once()
	assert.NoError(t, srv.SetAdminActive(ctx, adminID, &form.SetActiveRequest{IsActive: &on}))

	const other = "0b8f7a43-2f0c-4a8e-9d2b-5a1f0c6e7d22"
	as.EXPECT().SetAdminActive(ctx, other, false).Return(gerr.ErrAdminNotFound).Once()
	err = srv.SetAdminActive(ctx, other, &form.SetActiveRequest{IsActive: &off})
	assert.ErrorIs(t, err, gerr.ErrAdminNotFound)

	err = srv.SetAdminActive(ctx, other, &form.SetActiveRequest{})
	assert.Equal(t, gerr.KindValidationFailed, gerr.KindOf(err))
}
