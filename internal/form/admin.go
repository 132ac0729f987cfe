package form

import (
	"strings"

	v "github.com/go-ozzo/ozzo-validation/v4"
)

const minPasswordLength = 8

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	r.Email = NormalizeEmail(r.Email)
	return ValidateStruct(r,
		v.Field(&r.Email, v.Required, v.By(email)),
		v.Field(&r.Password, v.Required),
	)
}

type CreateAdminRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (r *CreateAdminRequest) Validate() error {
	r.Email = NormalizeEmail(r.Email)
	r.Name = strings.TrimSpace(r.Name)
	if r.Role == "" {
		r.Role = "admin"
	}
	return ValidateStruct(r,
		v.Field(&r.Email, v.Required, v.By(email)),
		v.Field(&r.Name, v.Required, v.Length(2, 100)),
		v.Field(&r.Password, v.Required, v.Length(minPasswordLength, 72)),
		v.Field(&r.Role, v.Required, oneOf([]string{"admin", "super_admin"})),
	)
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (r *ChangePasswordRequest) Validate() error {
	return ValidateStruct(r,
		v.Field(&r.CurrentPassword, v.Required),
		v.Field(&r.NewPassword, v.Required, v.Length(minPasswordLength, 72)),
	)
}

type SetActiveRequest struct {
	IsActive *bool `json:"isActive"`
}

func (r *SetActiveRequest) Validate() error {
	return ValidateStruct(r,
		v.Field(&r.IsActive, v.NotNil),
	)
}
