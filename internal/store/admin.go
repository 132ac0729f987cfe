package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hireai/waitlist-manager/internal/dependency"
	"github.com/hireai/waitlist-manager/internal/entity"
	gerr "github.com/hireai/waitlist-manager/internal/errors"
)

type adminStore struct {
	*MYSQLStore
}

// Admin returns an object implementing dependency.Admin interface
func (ms *MYSQLStore) Admin() dependency.Admin {
	return &adminStore{
		MYSQLStore: ms,
	}
}

// AddAdmin creates a new active admin and returns its id.
func (as *adminStore) AddAdmin(ctx context.Context, a *entity.AdminInsert) (string, error) {
	id := uuid.NewString()
	now := as.Now().Truncate(time.Second)
	err := ExecNamed(ctx, as.DB(), `
		INSERT INTO admin
		(id, email, name, password_hash, role, is_active, created_at, updated_at)
		VALUES
		(:id, :email, :name, :passwordHash, :role, TRUE, :now, :now)`, map[string]any{
		"id":           id,
		"email":        a.Email,
		"name":         a.Name,
		"passwordHash": a.PasswordHash,
		"role":         a.Role,
		"now":          now,
	})
	if err != nil {
		if IsErrUniqueViolation(err) {
			return "", gerr.ErrAdminExists
		}
		return "", fmt.Errorf("can't add admin: %w", err)
	}
	return id, nil
}

func (as *adminStore) getAdmin(ctx context.Context, query string, params map[string]any) (*entity.Admin, error) {
	a, err := QueryNamedOne[entity.Admin](ctx, as.DB(), query, params)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gerr.ErrAdminNotFound
		}
		return nil, fmt.Errorf("can't get admin: %w", err)
	}
	return &a, nil
}

func (as *adminStore) GetAdminByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	return as.getAdmin(ctx, `SELECT * FROM admin WHERE email = :email`, map[string]any{"email": email})
}

func (as *adminStore) GetAdminByID(ctx context.Context, id string) (*entity.Admin, error) {
	return as.getAdmin(ctx, `SELECT * FROM admin WHERE id = :id`, map[string]any{"id": id})
}

func (as *adminStore) ListAdmins(ctx context.Context) ([]entity.Admin, error) {
	admins, err := QueryListNamed[entity.Admin](ctx, as.DB(), `SELECT * FROM admin ORDER BY created_at ASC, email ASC`, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("can't list admins: %w", err)
	}
	return admins, nil
}

// updateAdmin runs a single-row update and reports a missing admin.
func (as *adminStore) updateAdmin(ctx context.Context, query string, params map[string]any) error {
	return as.Tx(ctx, nil, func(ctx context.Context, rep *MYSQLStore) error {
		n, err := QueryCountNamed(ctx, rep.DB(), `SELECT COUNT(*) FROM admin WHERE id = :id`, params)
		if err != nil {
			return fmt.Errorf("can't look up admin: %w", err)
		}
		if n == 0 {
			return gerr.ErrAdminNotFound
		}
		if err := ExecNamed(ctx, rep.DB(), query, params); err != nil {
			return fmt.Errorf("can't update admin: %w", err)
		}
		return nil
	})
}

func (as *adminStore) SetAdminActive(ctx context.Context, id string, active bool) error {
	return as.updateAdmin(ctx, `UPDATE admin SET is_active = :active WHERE id = :id`, map[string]any{
		"id":     id,
		"active": active,
	})
}

func (as *adminStore) SetLastLogin(ctx context.Context, id string, at time.Time) error {
	return as.updateAdmin(ctx, `UPDATE admin SET last_login_at = :at WHERE id = :id`, map[string]any{
		"id": id,
		"at": at.UTC(),
	})
}

func (as *adminStore) ChangePassword(ctx context.Context, id, newHash string) error {
	return as.updateAdmin(ctx, `UPDATE admin SET password_hash = :hash WHERE id = :id`, map[string]any{
		"id":   id,
		"hash": newHash,
	})
}
