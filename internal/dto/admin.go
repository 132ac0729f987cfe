package dto

import (
	"time"

	"github.com/hireai/waitlist-manager/internal/entity"
)

type Admin struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func EntityAdminToDto(a *entity.Admin) Admin {
	d := Admin{
		ID:        a.ID,
		Email:     a.Email,
		Name:      a.Name,
		Role:      string(a.Role),
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
	}
	if a.LastLoginAt.Valid {
		t := a.LastLoginAt.Time
		d.LastLoginAt = &t
	}
	return d
}

func EntityAdminsToDto(as []entity.Admin) []Admin {
	out := make([]Admin, 0, len(as))
	for i := range as {
		out = append(out, EntityAdminToDto(&as[i]))
	}
	return out
}
