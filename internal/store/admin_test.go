package store

import (
	"context"
	"testing"
	"time"

	"github.com/hireai/waitlist-manager/internal/entity"
	gerr "github.com/hireai/waitlist-manager/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminCRUD(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	as := db.Admin()

	ins := &entity.AdminInsert{
		Email:        "ops@hireai.dev",
		Name:         "Ops",
		PasswordHash: "hash",
		Role:         entity.AdminRoleAdmin,
	}
	id, err := as.AddAdmin(ctx, ins)
	require.NoError(t, err)

	// can't create more than one admin with the same email
	_, err = as.AddAdmin(ctx, ins)
	assert.ErrorIs(t, err, gerr.ErrAdminExists)

	adm, err := as.GetAdminByEmail(ctx, ins.Email)
	require.NoError(t, err)
	assert.Equal(t, id, adm.ID)
	assert.True(t, adm.IsActive)
	assert.False(t, adm.LastLoginAt.Valid)

	require.NoError(t, as.ChangePassword(ctx, id, "newHash"))
	require.NoError(t, as.SetLastLogin(ctx, id, time.Now()))
	require.NoError(t, as.SetAdminActive(ctx, id, false))

	adm, err = as.GetAdminByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "newHash", adm.PasswordHash)
	assert.True(t, adm.LastLoginAt.Valid)
	assert.False(t, adm.IsActive)

	admins, err := as.ListAdmins(ctx)
	require.NoError(t, err)
	assert.Len(t, admins, 1)

	_, err = as.GetAdminByEmail(ctx, "not@exist.dev")
	assert.ErrorIs(t, err, gerr.ErrAdminNotFound)
	assert.ErrorIs(t, as.SetAdminActive(ctx, "missing", true), gerr.ErrAdminNotFound)
}
