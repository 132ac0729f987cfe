package bunt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/hireai/waitlist-manager/internal/entity"
	gerr "github.com/hireai/waitlist-manager/internal/errors"
	"github.com/tidwall/buntdb"
)

const (
	adminPrefix      = "admin:"
	adminEmailPrefix = "admin_email:"
)

type adminStore struct {
	*BuntStore
}

func (as *adminStore) AddAdmin(ctx context.Context, a *entity.AdminInsert) (string, error) {
	now := as.Now()
	adm := &entity.Admin{
		ID:          uuid.NewString(),
		AdminInsert: *a,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := as.db.Update(func(tx *buntdb.Tx) error {
		taken, err := exists(tx, adminEmailPrefix+a.Email)
		if err != nil {
			return err
		}
		if taken {
			return gerr.ErrAdminExists
		}
		if _, _, err := tx.Set(adminEmailPrefix+a.Email, adm.ID, nil); err != nil {
			return err
		}
		return setJSON(tx, adminPrefix+adm.ID, adm)
	})
	if err != nil {
		if errors.Is(err, gerr.ErrAdminExists) {
			return "", err
		}
		return "", fmt.Errorf("can't add admin: %w", err)
	}
	return adm.ID, nil
}

func (as *adminStore) GetAdminByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	var id string
	err := as.db.View(func(tx *buntdb.Tx) error {
		var err error
		id, err = tx.Get(adminEmailPrefix + email)
		return err
	})
	if errors.Is(err, buntdb.ErrNotFound) {
		return nil, gerr.ErrAdminNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't get admin: %w", err)
	}
	return as.GetAdminByID(ctx, id)
}

func (as *adminStore) GetAdminByID(ctx context.Context, id string) (*entity.Admin, error) {
	adm := &entity.Admin{}
	var found bool
	err := as.db.View(func(tx *buntdb.Tx) error {
		var err error
		found, err = getJSON(tx, adminPrefix+id, adm)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("can't get admin: %w", err)
	}
	if !found {
		return nil, gerr.ErrAdminNotFound
	}
	return adm, nil
}

func (as *adminStore) ListAdmins(ctx context.Context) ([]entity.Admin, error) {
	var (
		admins []entity.Admin
		decErr error
	)
	err := as.db.View(func(tx *buntdb.Tx) error {
		return tx.AscendKeys(adminPrefix+"*", func(key, value string) bool {
			var a entity.Admin
			if decErr = json.Unmarshal([]byte(value), &a); decErr != nil {
				return false
			}
			admins = append(admins, a)
			return true
		})
	})
	if err == nil {
		err = decErr
	}
	if err != nil {
		return nil, fmt.Errorf("can't list admins: %w", err)
	}
	sort.Slice(admins, func(i, j int) bool {
		if !admins[i].CreatedAt.Equal(admins[j].CreatedAt) {
			return admins[i].CreatedAt.Before(admins[j].CreatedAt)
		}
		return admins[i].Email < admins[j].Email
	})
	return admins, nil
}

func (as *adminStore) updateAdmin(id string, apply func(a *entity.Admin)) error {
	var found bool
	err := as.db.Update(func(tx *buntdb.Tx) error {
		a := &entity.Admin{}
		var err error
		found, err = getJSON(tx, adminPrefix+id, a)
		if err != nil || !found {
			return err
		}
		apply(a)
		a.UpdatedAt = as.Now()
		return setJSON(tx, adminPrefix+id, a)
	})
	if err != nil {
		return fmt.Errorf("can't update admin: %w", err)
	}
	if !found {
		return gerr.ErrAdminNotFound
	}
	return nil
}

func (as *adminStore) SetAdminActive(ctx context.Context, id string, active bool) error {
	return as.updateAdmin(id, func(a *entity.Admin) { a.IsActive = active })
}

func (as *adminStore) SetLastLogin(ctx context.Context, id string, at time.Time) error {
	return as.updateAdmin(id, func(a *entity.Admin) {
		a.LastLoginAt.Time, a.LastLoginAt.Valid = at.UTC(), true
	})
}

func (as *adminStore) ChangePassword(ctx context.Context, id, newHash string) error {
	return as.updateAdmin(id, func(a *entity.Admin) { a.PasswordHash = newHash })
}
