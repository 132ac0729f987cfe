package app

import (
	"context"
	"fmt"
	"sync"

	"log/slog"

	"github.com/hireai/waitlist-manager/config"
	"github.com/hireai/waitlist-manager/internal/analytics"
	httpapi "github.com/hireai/waitlist-manager/internal/api/http"
	"github.com/hireai/waitlist-manager/internal/apisrv/auth"
	"github.com/hireai/waitlist-manager/internal/dependency"
	"github.com/hireai/waitlist-manager/internal/mail"
	"github.com/hireai/waitlist-manager/internal/ratelimit"
	"github.com/hireai/waitlist-manager/internal/sms"
	"github.com/hireai/waitlist-manager/internal/store"
	"github.com/hireai/waitlist-manager/internal/store/bunt"
	"github.com/hireai/waitlist-manager/internal/verification"
	"github.com/hireai/waitlist-manager/internal/waitlist"
)

// App is the main application
type App struct {
	hs     *httpapi.Server
	db     dependency.Repository
	mailer dependency.Mailer
	c      *config.Config
	cancel context.CancelFunc
	once   sync.Once
	done   chan struct{}
}

// New returns a new instance of App
func New(c *config.Config) *App {
	return &App{
		c:    c,
		done: make(chan struct{}),
	}
}

// OpenRepository connects to the storage backend selected in c.
func OpenRepository(ctx context.Context, c *config.Config) (dependency.Repository, error) {
	switch c.Storage.Type {
	case config.StorageMySQL:
		ms, err := store.New(ctx, c.DB)
		if err != nil {
			return nil, err
		}
		return ms, nil
	case config.StorageBunt:
		bs, err := bunt.New(&c.Bunt)
		if err != nil {
			return nil, err
		}
		return bs, nil
	default:
		return nil, fmt.Errorf("unknown storage type %q", c.Storage.Type)
	}
}

// codeSenders wires the delivery channels of the verification engine.
func (a *App) codeSenders() (verification.Senders, error) {
	senders := verification.Senders{
		Email:   a.mailer,
		Welcome: a.mailer,
	}
	if a.c.SMS.Enabled() {
		s, err := sms.New(&a.c.SMS)
		if err != nil {
			return senders, fmt.Errorf("can't create sms sender: %w", err)
		}
		senders.SMS = s
	}
	return senders, nil
}

func (a *App) fileStore() (dependency.FileStore, error) {
	if !a.c.Bucket.Enabled() {
		slog.Default().Warn("bucket is not configured, export archive disabled")
		return nil, nil
	}
	b, err := a.c.Bucket.Init()
	if err != nil {
		return nil, fmt.Errorf("can't init bucket: %w", err)
	}
	return b, nil
}

// Start starts the app
func (a *App) Start(ctx context.Context) error {
	var err error
	slog.Default().InfoContext(ctx, "starting waitlist manager",
		slog.String("storage", a.c.Storage.Type),
	)

	a.db, err = OpenRepository(ctx, a.c)
	if err != nil {
		slog.Default().ErrorContext(ctx, "couldn't open storage",
			slog.String("err", err.Error()),
		)
		return err
	}

	authS, err := auth.New(&a.c.Auth, a.db.Admin())
	if err != nil {
		slog.Default().ErrorContext(ctx, "failed create new auth server",
			slog.String("err", err.Error()),
		)
		return err
	}

	mailer, err := mail.New(&a.c.Mailer, a.db.Mail())
	if err != nil {
		slog.Default().ErrorContext(ctx, "failed create new mailer",
			slog.String("err", err.Error()),
		)
		return err
	}
	a.mailer = mailer

	ctx, a.cancel = context.WithCancel(ctx)
	if err := a.mailer.Start(ctx); err != nil {
		slog.Default().ErrorContext(ctx, "failed to start mailer worker",
			slog.String("err", err.Error()),
		)
		return err
	}

	senders, err := a.codeSenders()
	if err != nil {
		return err
	}
	engine := verification.New(&a.c.Verification, a.db.Waitlist(), senders)

	files, err := a.fileStore()
	if err != nil {
		return err
	}
	agg := analytics.New(a.db.Waitlist(), files)

	limiter := ratelimit.New(&a.c.RateLimit)
	go limiter.Run(ctx)

	// start API server
	a.hs = httpapi.New(&a.c.HTTP)
	err = a.hs.Start(ctx, &httpapi.Services{
		Waitlist:  waitlist.New(&a.c.Waitlist, a.db.Waitlist(), engine),
		Verifier:  engine,
		Analytics: agg,
		Auth:      authS,
		Limiter:   limiter,
		Health:    a.db,
	})
	if err != nil {
		slog.Default().ErrorContext(ctx, "cannot start http server",
			slog.String("err", err.Error()),
		)
		return err
	}

	go func() {
		<-a.hs.Done()
		a.once.Do(func() { close(a.done) })
	}()

	return nil
}

// Stop stops the application and waits for all services to exit
func (a *App) Stop(ctx context.Context) {
	if a.hs != nil {
		if err := a.hs.Stop(ctx); err != nil {
			slog.Default().ErrorContext(ctx, "http server shutdown",
				slog.String("err", err.Error()),
			)
		}
	}
	if a.mailer != nil {
		if err := a.mailer.Stop(); err != nil {
			slog.Default().ErrorContext(ctx, "mailer stop",
				slog.String("err", err.Error()),
			)
		}
	}
	if a.cancel != nil {
		a.cancel()
	}
	if a.db != nil {
		a.db.Close()
	}
	a.once.Do(func() { close(a.done) })
}

// Done returns a channel that is closed after the application has exited
func (a *App) Done() <-chan struct{} {
	return a.done
}
