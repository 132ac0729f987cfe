package mail

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/hireai/waitlist-manager/internal/entity"
)

const (
	VerificationCode = "verification_code.gohtml"
	Welcome          = "welcome.gohtml"
)

var templateSubjects = map[string]string{
	VerificationCode: "Your HireAI verification code",
	Welcome:          "Welcome to the HireAI waitlist",
}

type verificationCodeData struct {
	FirstName    string
	Code         string
	ValidMinutes int
}

type welcomeData struct {
	FirstName string
	Company   string
}

// SendVerificationCode mails the one-time code to the applicant.
func (m *Mailer) SendVerificationCode(ctx context.Context, to *entity.WaitlistEntry, code string, expiresAt time.Time) error {
	if code == "" {
		return fmt.Errorf("empty verification code for %s", to.Email)
	}
	minutes := int(math.Ceil(time.Until(expiresAt).Minutes()))
	if minutes < 1 {
		minutes = 1
	}
	ser, err := m.buildSendMailRequest(to.Email, VerificationCode, verificationCodeData{
		FirstName:    to.FirstName,
		Code:         code,
		ValidMinutes: minutes,
	})
	if err != nil {
		return err
	}
	return m.sendWithInsert(ctx, ser)
}

// SendWelcome greets a verified applicant.
func (m *Mailer) SendWelcome(ctx context.Context, to *entity.WaitlistEntry) error {
	ser, err := m.buildSendMailRequest(to.Email, Welcome, welcomeData{
		FirstName: to.FirstName,
		Company:   to.Company,
	})
	if err != nil {
		return err
	}
	return m.sendWithInsert(ctx, ser)
}
