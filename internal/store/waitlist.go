package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hireai/waitlist-manager/internal/dependency"
	"github.com/hireai/waitlist-manager/internal/entity"
	gerr "github.com/hireai/waitlist-manager/internal/errors"
)

const phoneUniqueIndex = "idx_waitlist_entry_phone"

type waitlistStore struct {
	*MYSQLStore
}

// Waitlist returns an object implementing waitlist interface
func (ms *MYSQLStore) Waitlist() dependency.Waitlist {
	return &waitlistStore{
		MYSQLStore: ms,
	}
}

// AddEntry inserts a new pending entry. The unique indexes on email and phone
// decide concurrent registrations for the same identity.
func (ws *waitlistStore) AddEntry(ctx context.Context, e *entity.WaitlistEntryInsert, createdAt time.Time) (*entity.WaitlistEntry, error) {
	ts := createdAt.UTC().Truncate(time.Second)
	entry := &entity.WaitlistEntry{
		ID:                  uuid.NewString(),
		WaitlistEntryInsert: *e,
		Status:              entity.EntryStatusPending,
		CreatedAt:           ts,
		UpdatedAt:           ts,
	}

	query := `
	INSERT INTO waitlist_entry
		(id, email, phone, first_name, last_name, company, role, company_size, industry,
		current_tools, pain_points, hear_about, newsletter, terms_accepted, source_ip, user_agent,
		status, is_verified, created_at, updated_at)
	VALUES
		(:id, :email, :phone, :firstName, :lastName, :company, :role, :companySize, :industry,
		:currentTools, :painPoints, :hearAbout, :newsletter, :termsAccepted, :sourceIp, :userAgent,
		:status, FALSE, :createdAt, :updatedAt)
	`
	params := map[string]any{
		"id":            entry.ID,
		"email":         e.Email,
		"phone":         e.Phone,
		"firstName":     e.FirstName,
		"lastName":      e.LastName,
		"company":       e.Company,
		"role":          e.Role,
		"companySize":   e.CompanySize,
		"industry":      e.Industry,
		"currentTools":  e.CurrentTools,
		"painPoints":    e.PainPoints,
		"hearAbout":     e.HearAbout,
		"newsletter":    e.Newsletter,
		"termsAccepted": e.TermsAccepted,
		"sourceIp":      e.SourceIP,
		"userAgent":     e.UserAgent,
		"status":        entry.Status,
		"createdAt":     entry.CreatedAt,
		"updatedAt":     entry.UpdatedAt,
	}

	if err := ExecNamed(ctx, ws.DB(), query, params); err != nil {
		if IsErrUniqueViolation(err) {
			return nil, entryDuplicateError(err)
		}
		return nil, fmt.Errorf("failed to add waitlist entry: %w", err)
	}

	return entry, nil
}

// entryDuplicateError names the identity a unique violation was raised for.
func entryDuplicateError(err error) error {
	if strings.Contains(err.Error(), phoneUniqueIndex) {
		return gerr.ErrPhoneRegistered
	}
	return gerr.ErrDuplicateRegistration
}

func (ws *waitlistStore) GetEntryByEmail(ctx context.Context, email string) (*entity.WaitlistEntry, error) {
	query := `SELECT * FROM waitlist_entry WHERE email = :email`
	entry, err := QueryNamedOne[entity.WaitlistEntry](ctx, ws.DB(), query, map[string]any{
		"email": email,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gerr.ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to get waitlist entry: %w", err)
	}
	return &entry, nil
}

func (ws *waitlistStore) SetVerificationCode(ctx context.Context, email, code string, expiresAt, at time.Time) (bool, error) {
	query := `
	UPDATE waitlist_entry
	SET verification_code = :code,
		verification_code_expires_at = :expiresAt,
		updated_at = :updatedAt
	WHERE email = :email AND is_verified = FALSE
	`
	ra, err := ExecNamedRowsAffected(ctx, ws.DB(), query, map[string]any{
		"email":     email,
		"code":      code,
		"expiresAt": expiresAt.UTC(),
		"updatedAt": at.UTC(),
	})
	if err != nil {
		return false, fmt.Errorf("failed to set verification code: %w", err)
	}
	return ra > 0, nil
}

// MarkVerified flips a pending entry to verified only if it still holds code
// and the code has not expired at the given time.
func (ws *waitlistStore) MarkVerified(ctx context.Context, email, code string, at time.Time) (bool, error) {
	query := `
	UPDATE waitlist_entry
	SET is_verified = TRUE,
		verification_code = NULL,
		verification_code_expires_at = NULL,
		verified_at = :at,
		updated_at = :at
	WHERE email = :email
		AND is_verified = FALSE
		AND verification_code = :code
		AND verification_code_expires_at >= :at
	`
	ra, err := ExecNamedRowsAffected(ctx, ws.DB(), query, map[string]any{
		"email": email,
		"code":  code,
		"at":    at.UTC(),
	})
	if err != nil {
		return false, fmt.Errorf("failed to mark entry verified: %w", err)
	}
	return ra > 0, nil
}

func (ws *waitlistStore) SetStatus(ctx context.Context, email string, status entity.EntryStatus, at time.Time) error {
	return ws.Tx(ctx, nil, func(ctx context.Context, rep *MYSQLStore) error {
		n, err := QueryCountNamed(ctx, rep.DB(), `SELECT COUNT(*) FROM waitlist_entry WHERE email = :email`, map[string]any{
			"email": email,
		})
		if err != nil {
			return fmt.Errorf("failed to look up waitlist entry: %w", err)
		}
		if n == 0 {
			return gerr.ErrEntryNotFound
		}

		err = ExecNamed(ctx, rep.DB(), `UPDATE waitlist_entry SET status = :status, updated_at = :at WHERE email = :email`, map[string]any{
			"email":  email,
			"status": status,
			"at":     at.UTC(),
		})
		if err != nil {
			return fmt.Errorf("failed to update waitlist entry status: %w", err)
		}
		return nil
	})
}

// ListEntries reads all entries inside one read-only transaction.
func (ws *waitlistStore) ListEntries(ctx context.Context) ([]entity.WaitlistEntry, error) {
	var entries []entity.WaitlistEntry
	opts := &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	err := ws.Tx(ctx, opts, func(ctx context.Context, rep *MYSQLStore) error {
		var err error
		entries, err = QueryListNamed[entity.WaitlistEntry](ctx, rep.DB(),
			`SELECT * FROM waitlist_entry ORDER BY created_at ASC, id ASC`, map[string]any{})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list waitlist entries: %w", err)
	}
	return entries, nil
}
