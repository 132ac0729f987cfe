// Package waitlist admits applicants into the waitlist and serves the admin
// views over their entries.
package waitlist

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"log/slog"

	"github.com/hireai/waitlist-manager/internal/analytics"
	"github.com/hireai/waitlist-manager/internal/dependency"
	"github.com/hireai/waitlist-manager/internal/entity"
	gerr "github.com/hireai/waitlist-manager/internal/errors"
	"github.com/hireai/waitlist-manager/internal/form"
)

// Config is the registration policy.
type Config = form.PhonePolicy

// Issuer starts verification for a freshly stored entry.
type Issuer interface {
	Issue(ctx context.Context, entry *entity.WaitlistEntry) error
}

type Service struct {
	c       Config
	entries dependency.Waitlist
	issuer  Issuer
	now     func() time.Time
}

func New(c *Config, entries dependency.Waitlist, issuer Issuer) *Service {
	return &Service{
		c:       *c,
		entries: entries,
		issuer:  issuer,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Register validates req, stores a pending entry and issues its verification
// code. A delivery failure does not undo the registration and is reported
// through Registration.VerificationDispatched.
func (s *Service) Register(ctx context.Context, req *form.RegisterRequest, meta entity.ClientMeta) (*entity.Registration, error) {
	req.Normalize()
	if err := req.Validate(s.c); err != nil {
		return nil, err
	}
	phone, err := req.E164Phone(s.c.DefaultRegion)
	if err != nil {
		return nil, gerr.Validation([]gerr.FieldViolation{{Field: "phone", Message: "Must be a valid phone number."}})
	}

	_, err = s.entries.GetEntryByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return nil, gerr.ErrDuplicateRegistration
	case !errors.Is(err, gerr.ErrEntryNotFound):
		return nil, fmt.Errorf("can't look up waitlist entry: %w", err)
	}

	// the store's uniqueness check settles concurrent registrations
	entry, err := s.entries.AddEntry(ctx, req.ToEntity(phone, meta), s.now())
	if err != nil {
		return nil, err
	}

	slog.Default().InfoContext(ctx, "waitlist entry registered",
		slog.String("entry_id", entry.ID),
		slog.String("industry", entry.Industry),
	)

	reg := &entity.Registration{
		Email:                  entry.Email,
		FirstName:              entry.FirstName,
		VerificationDispatched: true,
	}
	if err := s.issuer.Issue(ctx, entry); err != nil {
		if gerr.KindOf(err) != gerr.KindDeliveryFailed {
			slog.Default().ErrorContext(ctx, "can't issue verification code",
				slog.String("err", err.Error()),
				slog.String("entry_id", entry.ID),
			)
		}
		reg.VerificationDispatched = false
	}
	return reg, nil
}

// List returns every entry, newest first.
func (s *Service) List(ctx context.Context) ([]entity.WaitlistEntry, error) {
	entries, err := s.entries.ListEntries(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

func (s *Service) SetStatus(ctx context.Context, email string, req *form.SetStatusRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.entries.SetStatus(ctx, form.NormalizeEmail(email), entity.EntryStatus(req.Status), s.now())
}

func (s *Service) Stats(ctx context.Context) (*entity.WaitlistStats, error) {
	entries, err := s.entries.ListEntries(ctx)
	if err != nil {
		return nil, err
	}
	st := &entity.WaitlistStats{
		Total:         len(entries),
		ByIndustry:    analytics.Breakdown(entries, entity.CategoryIndustry),
		ByCompanySize: analytics.Breakdown(entries, entity.CategoryCompanySize),
	}
	for _, e := range entries {
		if e.IsVerified {
			st.Verified++
		}
	}
	return st, nil
}
