package form

import (
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/asaskevich/govalidator"
	v "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hireai/waitlist-manager/internal/entity"
	"github.com/nyaruka/phonenumbers"
)

var phonePattern = regexp.MustCompile(`^\+?[\d\s\-\(\)]+$`)

// PhonePolicy controls how the optional phone field is handled.
type PhonePolicy struct {
	Required      bool   `mapstructure:"require_phone"`
	DefaultRegion string `mapstructure:"default_phone_region"`
}

type RegisterRequest struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Company       string `json:"company"`
	Role          string `json:"role"`
	CompanySize   string `json:"companySize"`
	Industry      string `json:"industry"`
	CurrentTools  string `json:"currentTools"`
	PainPoints    string `json:"painPoints"`
	HearAbout     string `json:"hearAbout"`
	Newsletter    bool   `json:"newsletter"`
	TermsAccepted bool   `json:"termsAccepted"`
}

// Normalize trims every text field and lowercases the email.
func (r *RegisterRequest) Normalize() {
	for _, f := range []*string{
		&r.FirstName, &r.LastName, &r.Phone, &r.Company, &r.Role,
		&r.CompanySize, &r.Industry, &r.CurrentTools, &r.PainPoints, &r.HearAbout,
	} {
		*f = strings.TrimSpace(*f)
	}
	r.Email = NormalizeEmail(r.Email)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *RegisterRequest) Validate(pp PhonePolicy) error {
	phoneRules := []v.Rule{
		v.Length(10, 32),
		v.Match(phonePattern).Error("must contain only digits, spaces, dashes, parentheses and an optional leading +"),
		v.By(possiblePhone(pp.DefaultRegion)),
	}
	if pp.Required {
		phoneRules = append([]v.Rule{v.Required}, phoneRules...)
	}

	return ValidateStruct(r,
		v.Field(&r.FirstName, v.Required, v.Length(2, 100)),
		v.Field(&r.LastName, v.Required, v.Length(2, 100)),
		v.Field(&r.Email, v.Required, v.Length(3, 320), v.By(email)),
		v.Field(&r.Phone, phoneRules...),
		v.Field(&r.Company, v.Required, v.Length(2, 200)),
		v.Field(&r.Role, v.Required, v.Length(2, 100)),
		v.Field(&r.CompanySize, v.Required, oneOf(entity.CompanySizes)),
		v.Field(&r.Industry, v.Required, oneOf(entity.Industries)),
		v.Field(&r.CurrentTools, v.Length(0, 1000)),
		v.Field(&r.PainPoints, v.Required, v.Length(10, 2000)),
		v.Field(&r.HearAbout, v.Required, oneOf(entity.HearAboutSources)),
		v.Field(&r.TermsAccepted, v.Required.Error("you must accept the terms and conditions")),
	)
}

// E164Phone returns the phone in E.164 form. It must run after Validate.
func (r *RegisterRequest) E164Phone(region string) (string, error) {
	if r.Phone == "" {
		return "", nil
	}
	num, err := phonenumbers.Parse(r.Phone, region)
	if err != nil {
		return "", err
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

func (r *RegisterRequest) ToEntity(phone string, meta entity.ClientMeta) *entity.WaitlistEntryInsert {
	return &entity.WaitlistEntryInsert{
		Email:         r.Email,
		Phone:         nullString(phone),
		FirstName:     r.FirstName,
		LastName:      r.LastName,
		Company:       r.Company,
		Role:          r.Role,
		CompanySize:   r.CompanySize,
		Industry:      r.Industry,
		CurrentTools:  nullString(r.CurrentTools),
		PainPoints:    r.PainPoints,
		HearAbout:     r.HearAbout,
		Newsletter:    r.Newsletter,
		TermsAccepted: r.TermsAccepted,
		SourceIP:      nullString(meta.IP),
		UserAgent:     nullString(truncate(meta.UserAgent, 512)),
	}
}

// email checks the address grammar only. The domain is never resolved.
func email(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if !govalidator.IsEmail(s) {
		return errors.New("must be a valid email address")
	}
	return nil
}

func possiblePhone(region string) v.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if s == "" || !phonePattern.MatchString(s) {
			return nil
		}
		num, err := phonenumbers.Parse(s, region)
		if err != nil || !phonenumbers.IsPossibleNumber(num) {
			return errors.New("must be a valid phone number")
		}
		return nil
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return strings.ToValidUTF8(s[:n], "")
}
