package verification

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"log/slog"

	"github.com/hireai/waitlist-manager/internal/dependency"
	"github.com/hireai/waitlist-manager/internal/entity"
	gerr "github.com/hireai/waitlist-manager/internal/errors"
)

const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"

	defaultCodeTTL         = 10 * time.Minute
	defaultDeliveryTimeout = 10 * time.Second
)

type Config struct {
	CodeTTL         time.Duration `mapstructure:"code_ttl"`
	DeliveryTimeout time.Duration `mapstructure:"delivery_timeout"`
	Channel         string        `mapstructure:"channel"`
}

// Senders are the delivery collaborators of the engine. SMS is optional.
type Senders struct {
	Email   dependency.CodeSender
	SMS     dependency.CodeSender
	Welcome dependency.WelcomeSender
}

// Engine issues and checks one-time codes for pending waitlist entries.
// An entry moves from pending to verified exactly once.
type Engine struct {
	c       Config
	entries dependency.Waitlist
	senders Senders
	now     func() time.Time
	genCode func() (string, error)
}

func New(c *Config, entries dependency.Waitlist, senders Senders) *Engine {
	cfg := *c
	if cfg.CodeTTL <= 0 {
		cfg.CodeTTL = defaultCodeTTL
	}
	if cfg.DeliveryTimeout <= 0 {
		cfg.DeliveryTimeout = defaultDeliveryTimeout
	}
	if cfg.Channel == "" {
		cfg.Channel = ChannelEmail
	}
	return &Engine{
		c:       cfg,
		entries: entries,
		senders: senders,
		now:     func() time.Time { return time.Now().UTC() },
		genCode: GenerateCode,
	}
}

// Issue stores a fresh code for the entry, replacing any previous one, and
// dispatches it. A delivery failure leaves the stored code in place and is
// returned as a DeliveryFailed error.
func (e *Engine) Issue(ctx context.Context, entry *entity.WaitlistEntry) error {
	code, err := e.genCode()
	if err != nil {
		return gerr.Wrap(gerr.KindInternal, "can't issue verification code", err)
	}

	now := e.now()
	expiresAt := now.Add(e.c.CodeTTL).Truncate(time.Second)
	ok, err := e.entries.SetVerificationCode(ctx, entry.Email, code, expiresAt, now)
	if err != nil {
		return fmt.Errorf("can't store verification code: %w", err)
	}
	if !ok {
		return gerr.ErrAlreadyVerified
	}

	return e.deliver(ctx, entry, code, expiresAt)
}

func (e *Engine) deliver(ctx context.Context, entry *entity.WaitlistEntry, code string, expiresAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, e.c.DeliveryTimeout)
	defer cancel()

	channel, sender := e.sender(entry)
	if err := sender.SendVerificationCode(ctx, entry, code, expiresAt); err != nil {
		slog.Default().ErrorContext(ctx, "can't deliver verification code",
			slog.String("err", err.Error()),
			slog.String("channel", channel),
			slog.String("entry_id", entry.ID),
		)
		return gerr.Wrap(gerr.KindDeliveryFailed, gerr.ErrDeliveryFailed.Message, err)
	}
	return nil
}

// sender picks SMS when configured and the entry has a phone, email otherwise.
func (e *Engine) sender(entry *entity.WaitlistEntry) (string, dependency.CodeSender) {
	if e.c.Channel == ChannelSMS && e.senders.SMS != nil && entry.Phone.Valid {
		return ChannelSMS, e.senders.SMS
	}
	return ChannelEmail, e.senders.Email
}

// Verify checks code against the entry registered under email and marks the
// entry verified on success.
func (e *Engine) Verify(ctx context.Context, email, code string) (*entity.WaitlistEntry, error) {
	entry, err := e.entries.GetEntryByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	now := e.now()
	if err := checkCode(entry, code, now); err != nil {
		return nil, err
	}

	ok, err := e.entries.MarkVerified(ctx, email, code, now)
	if err != nil {
		return nil, fmt.Errorf("can't mark entry verified: %w", err)
	}
	if !ok {
		// lost a race with a concurrent verify or resend
		entry, err = e.entries.GetEntryByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if err := checkCode(entry, code, now); err != nil {
			return nil, err
		}
		return nil, gerr.ErrCodeMismatch
	}

	entry.IsVerified = true
	entry.VerificationCode.String, entry.VerificationCode.Valid = "", false
	entry.VerificationCodeExpiresAt.Time, entry.VerificationCodeExpiresAt.Valid = time.Time{}, false
	entry.VerifiedAt.Time, entry.VerifiedAt.Valid = now, true
	entry.UpdatedAt = now

	e.welcome(ctx, entry)
	return entry, nil
}

func checkCode(entry *entity.WaitlistEntry, code string, now time.Time) error {
	if entry.IsVerified {
		return gerr.ErrAlreadyVerified
	}
	if entry.CodeExpired(now) {
		return gerr.ErrCodeExpired
	}
	if subtle.ConstantTimeCompare([]byte(code), []byte(entry.VerificationCode.String)) != 1 {
		return gerr.ErrCodeMismatch
	}
	return nil
}

func (e *Engine) welcome(ctx context.Context, entry *entity.WaitlistEntry) {
	if e.senders.Welcome == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, e.c.DeliveryTimeout)
	defer cancel()
	if err := e.senders.Welcome.SendWelcome(ctx, entry); err != nil {
		slog.Default().ErrorContext(ctx, "can't send welcome email",
			slog.String("err", err.Error()),
			slog.String("entry_id", entry.ID),
		)
	}
}

// Resend replaces the code of a pending entry and dispatches the new one.
func (e *Engine) Resend(ctx context.Context, email string) error {
	entry, err := e.entries.GetEntryByEmail(ctx, email)
	if err != nil {
		return err
	}
	if entry.IsVerified {
		return gerr.ErrAlreadyVerified
	}
	return e.Issue(ctx, entry)
}
