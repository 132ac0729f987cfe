package httpapi

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hireai/waitlist-manager/internal/analytics"
	"github.com/hireai/waitlist-manager/internal/apisrv/auth"
	"github.com/hireai/waitlist-manager/internal/dependency/mocks"
	"github.com/hireai/waitlist-manager/internal/entity"
	"github.com/hireai/waitlist-manager/internal/ratelimit"
	"github.com/hireai/waitlist-manager/internal/store/bunt"
	"github.com/hireai/waitlist-manager/internal/verification"
	"github.com/hireai/waitlist-manager/internal/waitlist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	superEmail    = "root@hireai.dev"
	adminEmail    = "ops@hireai.dev"
	adminPassword = "correct horse"
)

type env struct {
	handler http.Handler
	store   *bunt.BuntStore
	files   *mocks.FileStore

	mu    sync.Mutex
	codes map[string]string
}

func (e *env) code(email string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.codes[email]
}

func newEnv(t *testing.T, limiter *ratelimit.MultiKeyLimiter) *env {
	t.Helper()
	s, err := bunt.New(&bunt.Config{})
	require.NoError(t, err)
	t.Cleanup(s.Close)

	e := &env{store: s, codes: map[string]string{}, files: mocks.NewFileStore(t)}

	sender := mocks.NewCodeSender(t)
	sender.EXPECT().SendVerificationCode(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(_ context.Context, to *entity.WaitlistEntry, code string, _ time.Time) {
			e.mu.Lock()
			e.codes[to.Email] = code
			e.mu.Unlock()
		}).
		Return(nil).Maybe()

	engine := verification.New(&verification.Config{}, s.Waitlist(), verification.Senders{Email: sender})
	authSrv, err := auth.New(&auth.Config{JWTSecret: "test-secret", BcryptCost: bcrypt.MinCost}, s.Admin())
	require.NoError(t, err)

	for email, role := range map[string]entity.AdminRole{
		superEmail: entity.AdminRoleSuperAdmin,
		adminEmail: entity.AdminRoleAdmin,
	} {
		hash, err := authSrv.HashPassword(adminPassword)
		require.NoError(t, err)
		_, err = s.Admin().AddAdmin(context.Background(), &entity.AdminInsert{
			Email:        email,
			Name:         "Test " + string(role),
			PasswordHash: hash,
			Role:         role,
		})
		require.NoError(t, err)
	}

	srv := New(&Config{AllowedOrigins: []string{"https://hireai.dev"}})
	e.handler = srv.Router(&Services{
		Waitlist:  waitlist.New(&waitlist.Config{DefaultRegion: "US"}, s.Waitlist(), engine),
		Verifier:  engine,
		Analytics: analytics.New(s.Waitlist(), e.files),
		Auth:      authSrv,
		Limiter:   limiter,
		Health:    s,
	})
	return e
}

type envelope struct {
	Status  string          `json:"status"`
	Kind    string          `json:"kind"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []struct {
		Field string `json:"field"`
	} `json:"errors"`
}

func (e *env) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var rd *bytes.Reader
	if s, ok := body.(string); ok {
		rd = bytes.NewReader([]byte(s))
	} else {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "203.0.113.10:40000"
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func (e *env) login(t *testing.T, email string) string {
	t.Helper()
	rec, env := e.do(t, http.MethodPost, "/admin/login", "", map[string]string{"email": email, "password": adminPassword})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func registration(email string) map[string]any {
	return map[string]any{
		"firstName":     "Ada",
		"lastName":      "Lovelace",
		"email":         email,
		"company":       "Analytical Engines",
		"role":          "Founder",
		"companySize":   "11-50",
		"industry":      "technology",
		"painPoints":    "Sourcing senior engineers takes months and interviews are slow",
		"hearAbout":     "referral",
		"newsletter":    true,
		"termsAccepted": true,
	}
}

func TestRegisterVerifyFlow(t *testing.T) {
	e := newEnv(t, nil)

	rec, env := e.do(t, http.MethodPost, "/waitlist/register", "", registration("Ada@Example.com"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "success", env.Status)
	assert.JSONEq(t, `{"email":"ada@hireai.io","firstName":"Ada","verificationSent":true}`, string(env.Data))

	rec, env = e.do(t, http.MethodPost, "/waitlist/register", "", registration("ada@hireai.io"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "DuplicateRegistration", env.Kind)

	code := e.code("ada@hireai.io")
	require.Len(t, code, 6)
	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}

	rec, env = e.do(t, http.MethodPost, "/waitlist/verify", "", map[string]string{"email": "ada@hireai.io", "code": wrong})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "CodeMismatch", env.Kind)

	rec, _ = e.do(t, http.MethodPost, "/waitlist/verify", "", map[string]string{"email": "ada@hireai.io", "code": code})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, env = e.do(t, http.MethodPost, "/waitlist/verify", "", map[string]string{"email": "ada@hireai.io", "code": code})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "AlreadyVerified", env.Kind)

	rec, env = e.do(t, http.MethodPost, "/waitlist/resend", "", map[string]string{"email": "ada@hireai.io"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "AlreadyVerified", env.Kind)

	rec, env = e.do(t, http.MethodPost, "/waitlist/verify", "", map[string]string{"email": "nobody@hireai.io", "code": "123456"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NotFound", env.Kind)
}

func TestRegisterValidation(t *testing.T) {
	e := newEnv(t, nil)

	body := registration("not-an-email")
	body["termsAccepted"] = false
	body["painPoints"] = "short"
	rec, env := e.do(t, http.MethodPost, "/waitlist/register", "", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "fail", env.Status)
	assert.Equal(t, "ValidationFailed", env.Kind)
	var fields []string
	for _, f := range env.Errors {
		fields = append(fields, f.Field)
	}
	assert.Subset(t, fields, []string{"email", "painPoints", "termsAccepted"})

	rec, env = e.do(t, http.MethodPost, "/waitlist/register", "", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "ValidationFailed", env.Kind)

	entries, err := e.store.Waitlist().ListEntries(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestResendInvalidatesCode(t *testing.T) {
	e := newEnv(t, nil)

	rec, _ := e.do(t, http.MethodPost, "/waitlist/register", "", registration("b@hireai.io"))
	require.Equal(t, http.StatusCreated, rec.Code)
	first := e.code("b@hireai.io")

	// regenerate until the new code differs so the old one must be rejected
	var second string
	for i := 0; i < 5; i++ {
		rec, _ = e.do(t, http.MethodPost, "/waitlist/resend", "", map[string]string{"email": "b@hireai.io"})
		require.Equal(t, http.StatusOK, rec.Code)
		if second = e.code("b@hireai.io"); second != first {
			break
		}
	}
	require.NotEqual(t, first, second)

	rec, env := e.do(t, http.MethodPost, "/waitlist/verify", "", map[string]string{"email": "b@hireai.io", "code": first})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "CodeMismatch", env.Kind)

	rec, _ = e.do(t, http.MethodPost, "/waitlist/verify", "", map[string]string{"email": "b@hireai.io", "code": second})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	e := newEnv(t, nil)

	for _, p := range []string{"/waitlist/all", "/waitlist/stats", "/analytics", "/analytics/export", "/admin/me", "/admin/admins"} {
		rec, env := e.do(t, http.MethodGet, p, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, p)
		assert.Equal(t, "Unauthorized", env.Kind, p)
	}

	rec, _ := e.do(t, http.MethodGet, "/waitlist/all", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, env := e.do(t, http.MethodPost, "/admin/login", "", map[string]string{"email": adminEmail, "password": "wrong password"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Incorrect email or password", env.Message)
}

func TestAdminPolicy(t *testing.T) {
	e := newEnv(t, nil)
	admin := e.login(t, adminEmail)
	super := e.login(t, superEmail)

	rec, _ := e.do(t, http.MethodGet, "/admin/me", admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env := e.do(t, http.MethodGet, "/admin/admins", admin, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Forbidden", env.Kind)

	rec, env = e.do(t, http.MethodGet, "/admin/admins", super, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var admins []struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &admins))
	assert.Len(t, admins, 2)

	var adminID, superID string
	for _, a := range admins {
		switch a.Email {
		case adminEmail:
			adminID = a.ID
		case superEmail:
			superID = a.ID
		}
	}

	rec, env = e.do(t, http.MethodPatch, "/admin/admins/"+superID+"/active", super, map[string]bool{"isActive": false})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Forbidden", env.Kind)

	rec, _ = e.do(t, http.MethodPatch, "/admin/admins/"+adminID+"/active", super, map[string]bool{"isActive": false})
	assert.Equal(t, http.StatusOK, rec.Code)

	// a deactivated admin's token stops working immediately
	rec, _ = e.do(t, http.MethodGet, "/admin/me", admin, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = e.do(t, http.MethodPost, "/admin/admins", super, map[string]string{
		"email": "new@hireai.dev", "name": "New Admin", "password": "long enough", "role": "admin",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec, env = e.do(t, http.MethodPost, "/admin/admins", super, map[string]string{
		"email": "new@hireai.dev", "name": "New Admin", "password": "long enough", "role": "admin",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Conflict", env.Kind)
}

func TestChangePassword(t *testing.T) {
	e := newEnv(t, nil)
	token := e.login(t, adminEmail)

	rec, env := e.do(t, http.MethodPost, "/admin/me/password", token, map[string]string{
		"currentPassword": "not it", "newPassword": "a new password",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "ValidationFailed", env.Kind)

	rec, _ = e.do(t, http.MethodPost, "/admin/me/password", token, map[string]string{
		"currentPassword": adminPassword, "newPassword": "a new password",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = e.do(t, http.MethodPost, "/admin/login", "", map[string]string{"email": adminEmail, "password": "a new password"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWaitlistAdmin(t *testing.T) {
	e := newEnv(t, nil)
	token := e.login(t, adminEmail)

	for _, email := range []string{"a@hireai.io", "b@hireai.io"} {
		rec, _ := e.do(t, http.MethodPost, "/waitlist/register", "", registration(email))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec, env := e.do(t, http.MethodGet, "/waitlist/all", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, string(env.Data), "verificationCode")
	assert.NotContains(t, string(env.Data), "203.0.113.10")
	var list struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Equal(t, 2, list.Count)

	rec, _ = e.do(t, http.MethodPatch, "/waitlist/a@hireai.io/status", token, map[string]string{"status": "approved"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env = e.do(t, http.MethodPatch, "/waitlist/a%40hireai.io/status", token, map[string]string{"status": "maybe"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "ValidationFailed", env.Kind)

	rec, _ = e.do(t, http.MethodPatch, "/waitlist/nobody@hireai.io/status", token, map[string]string{"status": "rejected"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	stored, err := e.store.Waitlist().GetEntryByEmail(context.Background(), "a@hireai.io")
	require.NoError(t, err)
	assert.Equal(t, entity.EntryStatusApproved, stored.Status)

	rec, env = e.do(t, http.MethodGet, "/waitlist/stats", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var st entity.WaitlistStats
	require.NoError(t, json.Unmarshal(env.Data, &st))
	assert.Equal(t, 2, st.Total)
	assert.Equal(t, 0, st.Verified)
}

func TestAnalytics(t *testing.T) {
	e := newEnv(t, nil)
	token := e.login(t, adminEmail)

	rec, env := e.do(t, http.MethodGet, "/analytics/export", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NotFound", env.Kind)

	rec, _ = e.do(t, http.MethodPost, "/waitlist/register", "", registration("a@hireai.io"))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env = e.do(t, http.MethodGet, "/analytics?days=7", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var summary entity.AnalyticsSummary
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	require.Len(t, summary.Growth, 1)
	assert.Equal(t, 1, summary.Growth[0].Count)
	assert.Equal(t, []entity.CategoryCount{{Value: "technology", Count: 1}}, summary.Industry)
	assert.Equal(t, 1, summary.PainPoints.TotalEntries)

	for _, days := range []string{"0", "366", "abc", "-3"} {
		rec, env = e.do(t, http.MethodGet, "/analytics?days="+days, token, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, days)
		assert.Equal(t, "ValidationFailed", env.Kind, days)
	}

	rec, _ = e.do(t, http.MethodGet, "/analytics/growth", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = e.do(t, http.MethodGet, "/analytics/breakdown/companySize", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = e.do(t, http.MethodGet, "/analytics/breakdown/favoriteColor", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec, _ = e.do(t, http.MethodGet, "/analytics/pain-points", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = e.do(t, http.MethodGet, "/analytics/export", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Regexp(t, `^attachment; filename="waitlist-export-\d{4}-\d{2}-\d{2}-\d{2}-\d{2}\.csv"$`, rec.Header().Get("Content-Disposition"))
	records, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "First Name", records[0][0])
	assert.Equal(t, "a@hireai.io", records[1][2])

	e.files.EXPECT().UploadExport(mock.Anything, mock.MatchedBy(func(name string) bool {
		return strings.HasPrefix(name, "exports/waitlist-export-")
	}), mock.Anything).Return("https://files.hireai.dev/exports/x.csv", nil).Once()
	rec, env = e.do(t, http.MethodPost, "/analytics/export/archive", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"url":"https://files.hireai.dev/exports/x.csv"}`, string(env.Data))

	e.files.EXPECT().UploadExport(mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("s3: access denied for key AKIA")).Once()
	rec, env = e.do(t, http.MethodPost, "/analytics/export/archive", token, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Something went wrong", env.Message)
}

func TestRateLimit(t *testing.T) {
	e := newEnv(t, ratelimit.New(&ratelimit.Config{Enabled: true, RegisterPerHour: 1}))

	rec, _ := e.do(t, http.MethodPost, "/waitlist/register", "", registration("a@hireai.io"))
	assert.Equal(t, http.StatusCreated, rec.Code)
	rec, env := e.do(t, http.MethodPost, "/waitlist/register", "", registration("b@hireai.io"))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "RateLimited", env.Kind)
}

func TestHealthAndCORS(t *testing.T) {
	e := newEnv(t, nil)

	rec, env := e.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", env.Status)

	req := httptest.NewRequest(http.MethodOptions, "/waitlist/register", nil)
	req.Header.Set("Origin", "https://hireai.dev")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec = httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	assert.Equal(t, "https://hireai.dev", rec.Header().Get("Access-Control-Allow-Origin"))

	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestIsOriginAllowed(t *testing.T) {
	assert.True(t, isOriginAllowed("http://localhost:3000", nil))
	assert.True(t, isOriginAllowed("https://hireai.dev", []string{"https://hireai.dev"}))
	assert.False(t, isOriginAllowed("https://hireai.dev.evil.example", []string{"https://hireai.dev"}))
	assert.True(t, isOriginAllowed("https://anything.example", []string{"*"}))
}
