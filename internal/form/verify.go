package form

import (
	v "github.com/go-ozzo/ozzo-validation/v4"
)

type VerifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (r *VerifyRequest) Validate() error {
	r.Email = NormalizeEmail(r.Email)
	return ValidateStruct(r,
		v.Field(&r.Email, v.Required, v.By(email)),
		v.Field(&r.Code, v.Required),
	)
}

type ResendRequest struct {
	Email string `json:"email"`
}

func (r *ResendRequest) Validate() error {
	r.Email = NormalizeEmail(r.Email)
	return ValidateStruct(r,
		v.Field(&r.Email, v.Required, v.By(email)),
	)
}

type SetStatusRequest struct {
	Status string `json:"status"`
}

func (r *SetStatusRequest) Validate() error {
	return ValidateStruct(r,
		v.Field(&r.Status, v.Required, oneOf([]string{"pending", "approved", "rejected"})),
	)
}
