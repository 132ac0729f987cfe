// Package sms delivers verification codes by text message through Twilio.
package sms

import (
	"context"
	"fmt"
	"math"
	"time"

	"log/slog"

	"github.com/hireai/waitlist-manager/internal/dependency"
	"github.com/hireai/waitlist-manager/internal/entity"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

type Config struct {
	AccountSID string `mapstructure:"twilio_account_sid"`
	AuthToken  string `mapstructure:"twilio_auth_token"`
	FromPhone  string `mapstructure:"from_phone"`
	OrgName    string `mapstructure:"org_name"`
}

func (c *Config) Enabled() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.FromPhone != ""
}

type Sender struct {
	cli dependency.SMSClient
	c   *Config
}

func New(c *Config) (*Sender, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("incomplete sms config: account sid, auth token and from phone are required")
	}
	cli := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: c.AccountSID,
		Password: c.AuthToken,
	})
	return newSender(c, cli.Api), nil
}

func newSender(c *Config, cli dependency.SMSClient) *Sender {
	if c.OrgName == "" {
		c.OrgName = "HireAI"
	}
	return &Sender{cli: cli, c: c}
}

// SendVerificationCode texts the code to the entry's phone. The Twilio client
// has no context support, so the call runs in its own goroutine and ctx only
// bounds how long we wait for it.
func (s *Sender) SendVerificationCode(ctx context.Context, to *entity.WaitlistEntry, code string, expiresAt time.Time) error {
	if !to.Phone.Valid || to.Phone.String == "" {
		return fmt.Errorf("entry %s has no phone", to.ID)
	}

	minutes := int(math.Ceil(time.Until(expiresAt).Minutes()))
	if minutes < 1 {
		minutes = 1
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to.Phone.String)
	params.SetFrom(s.c.FromPhone)
	params.SetBody(fmt.Sprintf("Your %s verification code is %s. It expires in %d minutes.", s.c.OrgName, code, minutes))

	done := make(chan error, 1)
	go func() {
		_, err := s.cli.CreateMessage(params)
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			slog.Default().ErrorContext(ctx, "can't send sms",
				slog.String("err", err.Error()),
				slog.String("entry_id", to.ID),
			)
			return fmt.Errorf("failed to send sms via twilio: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
