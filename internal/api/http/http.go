package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/hireai/waitlist-manager/internal/apisrv/auth"
	"github.com/hireai/waitlist-manager/internal/auth/policy"
	"github.com/hireai/waitlist-manager/internal/entity"
	"github.com/hireai/waitlist-manager/internal/form"
	clientid "github.com/hireai/waitlist-manager/internal/middleware"
	"github.com/hireai/waitlist-manager/internal/ratelimit"
	"github.com/hireai/waitlist-manager/log"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// Config is the configuration for the http server
type Config struct {
	Port           string        `mapstructure:"port"`
	Address        string        `mapstructure:"address"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

type (
	// Registrar is the registration service.
	Registrar interface {
		Register(ctx context.Context, req *form.RegisterRequest, meta entity.ClientMeta) (*entity.Registration, error)
		List(ctx context.Context) ([]entity.WaitlistEntry, error)
		SetStatus(ctx context.Context, email string, req *form.SetStatusRequest) error
		Stats(ctx context.Context) (*entity.WaitlistStats, error)
	}

	// Verifier is the verification engine.
	Verifier interface {
		Verify(ctx context.Context, email, code string) (*entity.WaitlistEntry, error)
		Resend(ctx context.Context, email string) error
	}

	// Analytics is the analytics aggregator.
	Analytics interface {
		Summary(ctx context.Context, days int) (*entity.AnalyticsSummary, error)
		GrowthSeries(ctx context.Context, days int) ([]entity.GrowthPoint, error)
		CategoryBreakdown(ctx context.Context, field entity.CategoryField) ([]entity.CategoryCount, error)
		PainPointKeywords(ctx context.Context) (*entity.PainPointSummary, error)
		ExportSnapshot(ctx context.Context, w io.Writer) error
		ArchiveExport(ctx context.Context) (string, error)
	}

	// Pinger reports storage health.
	Pinger interface {
		Ping(ctx context.Context) error
	}
)

// Services are the collaborators the handlers call into.
type Services struct {
	Waitlist  Registrar
	Verifier  Verifier
	Analytics Analytics
	Auth      *auth.Server
	Limiter   *ratelimit.MultiKeyLimiter
	Health    Pinger
}

// Server is the http server
type Server struct {
	hs   *http.Server
	c    *Config
	done chan struct{}
}

// New creates a new server
func New(config *Config) *Server {
	return &Server{
		c:    config,
		done: make(chan struct{}),
	}
}

// Done returns a channel that is closed when the http server exits
func (s *Server) Done() <-chan struct{} {
	return s.done
}

// Router builds the HTTP handler for all routes.
func (s *Server) Router(svc *Services) http.Handler {
	h := &handlers{svc: svc, now: func() time.Time { return time.Now().UTC() }}

	timeout := s.c.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(log.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowOriginFunc: func(_ *http.Request, origin string) bool {
			return isOriginAllowed(origin, s.c.AllowedOrigins)
		},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(middleware.Timeout(timeout))
	r.Use(clientid.ClientIdentifier)

	r.Get("/health", h.health)

	r.Route("/waitlist", func(r chi.Router) {
		r.Post("/register", h.register)
		r.Post("/verify", h.verify)
		r.Post("/resend", h.resend)

		r.Group(func(r chi.Router) {
			r.Use(svc.Auth.WithAuth)
			r.With(auth.Authorize(policy.WaitlistList)).Get("/all", h.listEntries)
			r.With(auth.Authorize(policy.WaitlistStats)).Get("/stats", h.stats)
			r.With(auth.Authorize(policy.WaitlistSetStatus)).Patch("/{email}/status", h.setStatus)
		})
	})

	r.Route("/analytics", func(r chi.Router) {
		r.Use(svc.Auth.WithAuth)
		r.With(auth.Authorize(policy.AnalyticsRead)).Get("/", h.summary)
		r.With(auth.Authorize(policy.AnalyticsRead)).Get("/growth", h.growth)
		r.With(auth.Authorize(policy.AnalyticsRead)).Get("/breakdown/{field}", h.breakdown)
		r.With(auth.Authorize(policy.AnalyticsRead)).Get("/pain-points", h.painPoints)
		r.With(auth.Authorize(policy.AnalyticsExport)).Get("/export", h.export)
		r.With(auth.Authorize(policy.AnalyticsArchive)).Post("/export/archive", h.archive)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Post("/login", h.login)

		r.Group(func(r chi.Router) {
			r.Use(svc.Auth.WithAuth)
			r.With(auth.Authorize(policy.AdminProfile)).Get("/me", h.profile)
			r.With(auth.Authorize(policy.AdminProfile)).Post("/me/password", h.changePassword)

			r.Group(func(r chi.Router) {
				r.Use(auth.Authorize(policy.AdminManage))
				r.Get("/admins", h.listAdmins)
				r.Post("/admins", h.createAdmin)
				r.Patch("/admins/{id}/active", h.setAdminActive)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, map[string]string{"status": "fail", "kind": "NotFound", "message": "Route not found"})
	})

	return r
}

// Start starts the server
func (s *Server) Start(ctx context.Context, svc *Services) error {
	listenerAddr := fmt.Sprintf("%s:%s", s.c.Address, s.c.Port)
	s.hs = &http.Server{
		Addr:              listenerAddr,
		Handler:           h2c.NewHandler(s.Router(svc), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Default().InfoContext(ctx, fmt.Sprintf("waitlist-manager new listener on: http://%v", listenerAddr))
		err := s.hs.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			slog.Default().InfoContext(ctx, "http server returned")
		} else {
			slog.Default().ErrorContext(ctx, "http server exited with an error",
				slog.String("err", err.Error()),
			)
		}
		close(s.done)
	}()

	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	if s.hs == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.hs.Shutdown(ctx)
}

func isOriginAllowed(origin string, allowedOrigins []string) bool {
	// Always allow localhost origins
	if strings.HasPrefix(origin, "http://localhost:") || strings.HasPrefix(origin, "https://localhost:") {
		return true
	}

	for _, allowedOrigin := range allowedOrigins {
		if allowedOrigin == "*" || origin == allowedOrigin {
			return true
		}
	}

	return false
}
