package bunt

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/hireai/waitlist-manager/internal/entity"
	gerr "github.com/hireai/waitlist-manager/internal/errors"
	"github.com/tidwall/buntdb"
)

const (
	entryPrefix      = "entry:"
	entryPhonePrefix = "entry_phone:"
)

type waitlistStore struct {
	*BuntStore
}

func entryKey(email string) string { return entryPrefix + email }

func phoneKey(phone string) string { return entryPhonePrefix + phone }

func (ws *waitlistStore) AddEntry(ctx context.Context, e *entity.WaitlistEntryInsert, createdAt time.Time) (*entity.WaitlistEntry, error) {
	ts := createdAt.UTC()
	entry := &entity.WaitlistEntry{
		ID:                  uuid.NewString(),
		WaitlistEntryInsert: *e,
		Status:              entity.EntryStatusPending,
		CreatedAt:           ts,
		UpdatedAt:           ts,
	}

	err := ws.db.Update(func(tx *buntdb.Tx) error {
		taken, err := exists(tx, entryKey(e.Email))
		if err != nil {
			return err
		}
		if taken {
			return gerr.ErrDuplicateRegistration
		}
		if e.Phone.Valid {
			taken, err = exists(tx, phoneKey(e.Phone.String))
			if err != nil {
				return err
			}
			if taken {
				return gerr.ErrPhoneRegistered
			}
			if _, _, err := tx.Set(phoneKey(e.Phone.String), e.Email, nil); err != nil {
				return err
			}
		}
		return setJSON(tx, entryKey(e.Email), entry)
	})
	if err != nil {
		if gerr.KindOf(err) == gerr.KindDuplicateRegistration {
			return nil, err
		}
		return nil, fmt.Errorf("failed to add waitlist entry: %w", err)
	}
	return entry, nil
}

func (ws *waitlistStore) GetEntryByEmail(ctx context.Context, email string) (*entity.WaitlistEntry, error) {
	entry := &entity.WaitlistEntry{}
	var found bool
	err := ws.db.View(func(tx *buntdb.Tx) error {
		var err error
		found, err = getJSON(tx, entryKey(email), entry)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get waitlist entry: %w", err)
	}
	if !found {
		return nil, gerr.ErrEntryNotFound
	}
	return entry, nil
}

// mutateEntry loads, changes and stores one entry inside a single write
// transaction. apply returns false to leave the entry untouched.
func (ws *waitlistStore) mutateEntry(email string, apply func(e *entity.WaitlistEntry) bool) (bool, bool, error) {
	var found, changed bool
	err := ws.db.Update(func(tx *buntdb.Tx) error {
		e := &entity.WaitlistEntry{}
		var err error
		found, err = getJSON(tx, entryKey(email), e)
		if err != nil || !found {
			return err
		}
		if changed = apply(e); !changed {
			return nil
		}
		return setJSON(tx, entryKey(email), e)
	})
	return found, changed, err
}

func (ws *waitlistStore) SetVerificationCode(ctx context.Context, email, code string, expiresAt, at time.Time) (bool, error) {
	_, changed, err := ws.mutateEntry(email, func(e *entity.WaitlistEntry) bool {
		if e.IsVerified {
			return false
		}
		e.VerificationCode.String, e.VerificationCode.Valid = code, true
		e.VerificationCodeExpiresAt.Time, e.VerificationCodeExpiresAt.Valid = expiresAt.UTC(), true
		e.UpdatedAt = at.UTC()
		return true
	})
	if err != nil {
		return false, fmt.Errorf("failed to set verification code: %w", err)
	}
	return changed, nil
}

func (ws *waitlistStore) MarkVerified(ctx context.Context, email, code string, at time.Time) (bool, error) {
	_, changed, err := ws.mutateEntry(email, func(e *entity.WaitlistEntry) bool {
		if e.IsVerified || !e.VerificationCode.Valid || e.VerificationCode.String != code || e.CodeExpired(at) {
			return false
		}
		e.IsVerified = true
		e.VerificationCode.String, e.VerificationCode.Valid = "", false
		e.VerificationCodeExpiresAt.Time, e.VerificationCodeExpiresAt.Valid = time.Time{}, false
		e.VerifiedAt.Time, e.VerifiedAt.Valid = at.UTC(), true
		e.UpdatedAt = at.UTC()
		return true
	})
	if err != nil {
		return false, fmt.Errorf("failed to mark entry verified: %w", err)
	}
	return changed, nil
}

func (ws *waitlistStore) SetStatus(ctx context.Context, email string, status entity.EntryStatus, at time.Time) error {
	found, _, err := ws.mutateEntry(email, func(e *entity.WaitlistEntry) bool {
		e.Status = status
		e.UpdatedAt = at.UTC()
		return true
	})
	if err != nil {
		return fmt.Errorf("failed to update waitlist entry status: %w", err)
	}
	if !found {
		return gerr.ErrEntryNotFound
	}
	return nil
}

// ListEntries reads every entry inside one read transaction.
func (ws *waitlistStore) ListEntries(ctx context.Context) ([]entity.WaitlistEntry, error) {
	var (
		entries []entity.WaitlistEntry
		decErr  error
	)
	err := ws.db.View(func(tx *buntdb.Tx) error {
		return tx.AscendKeys(entryPrefix+"*", func(key, value string) bool {
			var e entity.WaitlistEntry
			if decErr = json.Unmarshal([]byte(value), &e); decErr != nil {
				decErr = fmt.Errorf("can't decode %s: %w", key, decErr)
				return false
			}
			entries = append(entries, e)
			return true
		})
	})
	if err == nil {
		err = decErr
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list waitlist entries: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.Before(entries[j].CreatedAt)
		}
		return entries[i].ID < entries[j].ID
	})
	return entries, nil
}
