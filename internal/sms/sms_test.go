package sms

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hireai/waitlist-manager/internal/dependency/mocks"
	"github.com/hireai/waitlist-manager/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

func entryWithPhone(phone string) *entity.WaitlistEntry {
	return &entity.WaitlistEntry{
		ID: "entry-1",
		WaitlistEntryInsert: entity.WaitlistEntryInsert{
			Email: "ada@example.com",
			Phone: sql.NullString{String: phone, Valid: phone != ""},
		},
	}
}

func TestNewRequiresCredentials(t *testing.T) {
	_, err := New(&Config{AccountSID: "AC123"})
	assert.Error(t, err)

	s, err := New(&Config{AccountSID: "AC123", AuthToken: "token", FromPhone: "+15005550006"})
	require.NoError(t, err)
	assert.Equal(t, "HireAI", s.c.OrgName)
}

func TestSendVerificationCode(t *testing.T) {
	cli := mocks.NewSMSClient(t)
	s := newSender(&Config{FromPhone: "+15005550006"}, cli)

	cli.EXPECT().CreateMessage(mock.MatchedBy(func(p *twilioApi.CreateMessageParams) bool {
		return *p.To == "+14155550100" &&
			*p.From == "+15005550006" &&
			strings.Contains(*p.Body, "123456") &&
			strings.Contains(*p.Body, "10 minutes")
	})).Return(&twilioApi.ApiV2010Message{}, nil).Once()

	err := s.SendVerificationCode(context.Background(), entryWithPhone("+14155550100"), "123456", time.Now().Add(10*time.Minute))
	assert.NoError(t, err)
}

func TestSendVerificationCodeErrors(t *testing.T) {
	cli := mocks.NewSMSClient(t)
	s := newSender(&Config{FromPhone: "+15005550006"}, cli)

	err := s.SendVerificationCode(context.Background(), entryWithPhone(""), "123456", time.Now())
	assert.Error(t, err)

	cli.EXPECT().CreateMessage(mock.Anything).Return(nil, errors.New("invalid number")).Once()
	err = s.SendVerificationCode(context.Background(), entryWithPhone("+14155550100"), "123456", time.Now())
	assert.Error(t, err)
}

func TestSendVerificationCodeTimeout(t *testing.T) {
	cli := mocks.NewSMSClient(t)
	s := newSender(&Config{FromPhone: "+15005550006"}, cli)

	release := make(chan struct{})
	defer close(release)
	cli.EXPECT().CreateMessage(mock.Anything).
		Run(func(*twilioApi.CreateMessageParams) { <-release }).
		Return(&twilioApi.ApiV2010Message{}, nil).Maybe()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := s.SendVerificationCode(ctx, entryWithPhone("+14155550100"), "123456", time.Now())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
