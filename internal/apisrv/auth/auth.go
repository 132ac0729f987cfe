// Package auth authenticates admins and guards the admin HTTP surface.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hireai/waitlist-manager/internal/api/http/response"
	"github.com/hireai/waitlist-manager/internal/auth/jwt"
	"github.com/hireai/waitlist-manager/internal/auth/policy"
	"github.com/hireai/waitlist-manager/internal/dependency"
	"github.com/hireai/waitlist-manager/internal/dto"
	"github.com/hireai/waitlist-manager/internal/entity"
	gerr "github.com/hireai/waitlist-manager/internal/errors"
	"github.com/hireai/waitlist-manager/internal/form"
	"golang.org/x/crypto/bcrypt"
)

const (
	// AuthHeaderKey is header key to match auth token
	AuthHeaderKey = "Authorization"

	defaultJWTTTL = 24 * time.Hour
)

var (
	errInvalidToken     = gerr.New(gerr.KindUnauthorized, "Invalid or expired token")
	errSelfDeactivation = gerr.New(gerr.KindForbidden, "You cannot deactivate your own account")
)

// Config contains the configuration for the auth server.
type Config struct {
	JWTSecret  string        `mapstructure:"jwt_secret"`
	JWTTTL     time.Duration `mapstructure:"jwt_ttl"`
	BcryptCost int           `mapstructure:"bcrypt_cost"`
}

// Server issues admin tokens and manages admin accounts.
type Server struct {
	adminRepository dependency.Admin
	JwtAuth         *jwtauth.JWTAuth
	jwtTTL          time.Duration
	cost            int
	now             func() time.Time
}

// New creates a new auth server.
func New(c *Config, ar dependency.Admin) (*Server, error) {
	if c.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret is not set")
	}
	ttl := c.JWTTTL
	if ttl <= 0 {
		ttl = defaultJWTTTL
	}
	cost := c.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range", cost)
	}
	return &Server{
		adminRepository: ar,
		JwtAuth:         jwtauth.New("HS256", []byte(c.JWTSecret), nil),
		jwtTTL:          ttl,
		cost:            cost,
		now:             func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *Server) HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("can't hash password: %w", err)
	}
	return string(h), nil
}

type LoginResponse struct {
	Token string    `json:"token"`
	Admin dto.Admin `json:"admin"`
}

// Login get auth token for provided email and password.
func (s *Server) Login(ctx context.Context, req *form.LoginRequest) (*LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	a, err := s.adminRepository.GetAdminByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gerr.ErrAdminNotFound) {
			return nil, gerr.ErrBadCredentials
		}
		return nil, fmt.Errorf("can't get admin: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(req.Password)); err != nil {
		return nil, gerr.ErrBadCredentials
	}
	if !a.IsActive {
		return nil, gerr.ErrAccountDeactivated
	}

	now := s.now()
	if err := s.adminRepository.SetLastLogin(ctx, a.ID, now); err != nil {
		return nil, fmt.Errorf("can't update last login: %w", err)
	}
	a.LastLoginAt.Time, a.LastLoginAt.Valid = now, true

	token, err := jwt.NewTokenWithClaims(s.JwtAuth, s.jwtTTL, jwt.Claims{
		Subject: a.ID,
		Role:    string(a.Role),
	})
	if err != nil {
		return nil, fmt.Errorf("can't issue token: %w", err)
	}

	slog.Default().InfoContext(ctx, "admin logged in",
		slog.String("admin_id", a.ID),
	)
	return &LoginResponse{
		Token: token,
		Admin: dto.EntityAdminToDto(a),
	}, nil
}

// Authenticate resolves a bearer token to an active admin. The role is read
// from the store so demotions take effect before the token expires.
func (s *Server) Authenticate(ctx context.Context, token string) (*entity.Admin, error) {
	if token == "" {
		return nil, gerr.ErrUnauthorized
	}
	claims, err := jwt.VerifyToken(s.JwtAuth, token)
	if err != nil {
		return nil, gerr.Wrap(gerr.KindUnauthorized, errInvalidToken.Message, err)
	}
	a, err := s.adminRepository.GetAdminByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, gerr.ErrAdminNotFound) {
			return nil, errInvalidToken
		}
		return nil, fmt.Errorf("can't get admin: %w", err)
	}
	if !a.IsActive {
		return nil, gerr.ErrAccountDeactivated
	}
	return a, nil
}

type ctxKey struct{}

func withAdmin(ctx context.Context, a *entity.Admin) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

// AdminFromContext returns the admin put into ctx by WithAuth.
func AdminFromContext(ctx context.Context) (*entity.Admin, bool) {
	a, ok := ctx.Value(ctxKey{}).(*entity.Admin)
	return a, ok
}

func bearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get(AuthHeaderKey))
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// WithAuth middleware checks if the user is authenticated.
func (s *Server) WithAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a, err := s.Authenticate(r.Context(), bearerToken(r))
		if err != nil {
			response.Error(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(withAdmin(r.Context(), a)))
	})
}

// Authorize rejects requests whose admin role may not perform action. It
// must run after WithAuth.
func Authorize(action policy.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a, ok := AdminFromContext(r.Context())
			if !ok {
				response.Error(w, r, gerr.ErrUnauthorized)
				return
			}
			if !policy.Allow(a.Role, action) {
				response.Error(w, r, gerr.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func principal(ctx context.Context) (*entity.Admin, error) {
	a, ok := AdminFromContext(ctx)
	if !ok {
		return nil, gerr.ErrUnauthorized
	}
	return a, nil
}

func (s *Server) Profile(ctx context.Context) (*dto.Admin, error) {
	a, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	d := dto.EntityAdminToDto(a)
	return &d, nil
}

// ChangePassword changes the password of the calling admin. It requires the
// current password.
func (s *Server) ChangePassword(ctx context.Context, req *form.ChangePasswordRequest) error {
	a, err := principal(ctx)
	if err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return gerr.Validation([]gerr.FieldViolation{{
			Field:   "currentPassword",
			Message: "Current password is incorrect.",
		}})
	}
	hash, err := s.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.adminRepository.ChangePassword(ctx, a.ID, hash); err != nil {
		return fmt.Errorf("can't change password: %w", err)
	}
	return nil
}

// CreateAdmin registers a new active admin account.
func (s *Server) CreateAdmin(ctx context.Context, req *form.CreateAdminRequest) (*dto.Admin, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	hash, err := s.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	id, err := s.adminRepository.AddAdmin(ctx, &entity.AdminInsert{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		Role:         entity.AdminRole(req.Role),
	})
	if err != nil {
		return nil, err
	}
	a, err := s.adminRepository.GetAdminByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("can't get created admin: %w", err)
	}
	slog.Default().InfoContext(ctx, "admin created",
		slog.String("admin_id", a.ID),
		slog.String("role", string(a.Role)),
	)
	d := dto.EntityAdminToDto(a)
	return &d, nil
}

func (s *Server) ListAdmins(ctx context.Context) ([]dto.Admin, error) {
	as, err := s.adminRepository.ListAdmins(ctx)
	if err != nil {
		return nil, fmt.Errorf("can't list admins: %w", err)
	}
	return dto.EntityAdminsToDto(as), nil
}

// SetAdminActive activates or deactivates another admin. An admin can't
// deactivate itself.
func (s *Server) SetAdminActive(ctx context.Context, id string, req *form.SetActiveRequest) error {
	actor, err := principal(ctx)
	if err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}
	if actor.ID == id && !*req.IsActive {
		return errSelfDeactivation
	}
	return s.adminRepository.SetAdminActive(ctx, id, *req.IsActive)
}
