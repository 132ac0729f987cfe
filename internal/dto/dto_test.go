package dto

import (
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/hireai/waitlist-manager/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitlistEntryHidesSecrets(t *testing.T) {
	e := &entity.WaitlistEntry{
		ID: "id-1",
		WaitlistEntryInsert: entity.WaitlistEntryInsert{
			Email:     "a@x.com",
			SourceIP:  sql.NullString{String: "10.0.0.1", Valid: true},
			UserAgent: sql.NullString{String: "curl", Valid: true},
		},
		Status:                    entity.EntryStatusPending,
		VerificationCode:          sql.NullString{String: "123456", Valid: true},
		VerificationCodeExpiresAt: sql.NullTime{Time: time.Now(), Valid: true},
	}

	b, err := json.Marshal(EntityWaitlistEntriesToDto([]entity.WaitlistEntry{*e}))
	require.NoError(t, err)
	s := string(b)
	assert.Contains(t, s, `"email":"a@x.com"`)
	assert.Contains(t, s, `"status":"pending"`)
	assert.NotContains(t, s, "123456")
	assert.NotContains(t, s, "10.0.0.1")
	assert.NotContains(t, s, "curl")
	assert.NotContains(t, s, "verifiedAt")
}

func TestAdminHidesPasswordHash(t *testing.T) {
	login := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	a := &entity.Admin{
		ID: "adm-1",
		AdminInsert: entity.AdminInsert{
			Email:        "root@x.com",
			Name:         "Root",
			PasswordHash: "$2a$10$secret",
			Role:         entity.AdminRoleSuperAdmin,
		},
		IsActive:    true,
		LastLoginAt: sql.NullTime{Time: login, Valid: true},
	}
	d := EntityAdminToDto(a)
	assert.Equal(t, "super_admin", d.Role)
	require.NotNil(t, d.LastLoginAt)
	assert.True(t, d.LastLoginAt.Equal(login))

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "secret")
}
