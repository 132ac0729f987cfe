package dto

import (
	"time"

	"github.com/hireai/waitlist-manager/internal/entity"
)

// WaitlistEntry is the admin view of an entry. Verification codes and
// request metadata never leave the service.
type WaitlistEntry struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone,omitempty"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Company      string     `json:"company"`
	Role         string     `json:"role"`
	CompanySize  string     `json:"companySize"`
	Industry     string     `json:"industry"`
	CurrentTools string     `json:"currentTools,omitempty"`
	PainPoints   string     `json:"painPoints"`
	HearAbout    string     `json:"hearAbout"`
	Newsletter   bool       `json:"newsletter"`
	Status       string     `json:"status"`
	IsVerified   bool       `json:"isVerified"`
	VerifiedAt   *time.Time `json:"verifiedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func EntityWaitlistEntryToDto(e *entity.WaitlistEntry) WaitlistEntry {
	d := WaitlistEntry{
		ID:           e.ID,
		Email:        e.Email,
		Phone:        e.Phone.String,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		Company:      e.Company,
		Role:         e.Role,
		CompanySize:  e.CompanySize,
		Industry:     e.Industry,
		CurrentTools: e.CurrentTools.String,
		PainPoints:   e.PainPoints,
		HearAbout:    e.HearAbout,
		Newsletter:   e.Newsletter,
		Status:       string(e.Status),
		IsVerified:   e.IsVerified,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
	if e.VerifiedAt.Valid {
		t := e.VerifiedAt.Time
		d.VerifiedAt = &t
	}
	return d
}

func EntityWaitlistEntriesToDto(es []entity.WaitlistEntry) []WaitlistEntry {
	out := make([]WaitlistEntry, 0, len(es))
	for i := range es {
		out = append(out, EntityWaitlistEntryToDto(&es[i]))
	}
	return out
}
