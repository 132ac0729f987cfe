package entity

import (
	"database/sql"
	"time"
)

type EntryStatus string

const (
	EntryStatusPending  EntryStatus = "pending"
	EntryStatusApproved EntryStatus = "approved"
	EntryStatusRejected EntryStatus = "rejected"
)

var ValidEntryStatuses = map[EntryStatus]bool{
	EntryStatusPending:  true,
	EntryStatusApproved: true,
	EntryStatusRejected: true,
}

// Fixed option sets accepted on registration.
var (
	CompanySizes = []string{"1-10", "11-50", "51-200", "201-1000", "1000+"}
	Industries   = []string{
		"technology",
		"healthcare",
		"finance",
		"education",
		"retail",
		"manufacturing",
		"consulting",
		"other",
	}
	HearAboutSources = []string{"google", "linkedin", "twitter", "referral", "blog", "event", "other"}
)

// WaitlistEntryInsert holds the applicant supplied part of an entry.
type WaitlistEntryInsert struct {
	Email         string         `db:"email" json:"email"`
	Phone         sql.NullString `db:"phone" json:"phone"`
	FirstName     string         `db:"first_name" json:"firstName"`
	LastName      string         `db:"last_name" json:"lastName"`
	Company       string         `db:"company" json:"company"`
	Role          string         `db:"role" json:"role"`
	CompanySize   string         `db:"company_size" json:"companySize"`
	Industry      string         `db:"industry" json:"industry"`
	CurrentTools  sql.NullString `db:"current_tools" json:"currentTools"`
	PainPoints    string         `db:"pain_points" json:"painPoints"`
	HearAbout     string         `db:"hear_about" json:"hearAbout"`
	Newsletter    bool           `db:"newsletter" json:"newsletter"`
	TermsAccepted bool           `db:"terms_accepted" json:"termsAccepted"`
	SourceIP      sql.NullString `db:"source_ip" json:"sourceIp"`
	UserAgent     sql.NullString `db:"user_agent" json:"userAgent"`
}

// WaitlistEntry is a persisted waitlist registration.
type WaitlistEntry struct {
	ID string `db:"id" json:"id"`
	WaitlistEntryInsert
	Status                    EntryStatus    `db:"status" json:"status"`
	IsVerified                bool           `db:"is_verified" json:"isVerified"`
	VerificationCode          sql.NullString `db:"verification_code" json:"verificationCode"`
	VerificationCodeExpiresAt sql.NullTime   `db:"verification_code_expires_at" json:"verificationCodeExpiresAt"`
	VerifiedAt                sql.NullTime   `db:"verified_at" json:"verifiedAt"`
	CreatedAt                 time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt                 time.Time      `db:"updated_at" json:"updatedAt"`
}

// CodeExpired reports whether the stored code can no longer be used at t.
// A pending entry without a code is treated as expired.
func (e *WaitlistEntry) CodeExpired(t time.Time) bool {
	if !e.VerificationCode.Valid || !e.VerificationCodeExpiresAt.Valid {
		return true
	}
	return t.After(e.VerificationCodeExpiresAt.Time)
}

// ClientMeta is request metadata recorded with a registration.
type ClientMeta struct {
	IP        string
	UserAgent string
}

// Registration is the public result of a successful registration.
type Registration struct {
	Email                  string `json:"email"`
	FirstName              string `json:"firstName"`
	VerificationDispatched bool   `json:"verificationSent"`
}
