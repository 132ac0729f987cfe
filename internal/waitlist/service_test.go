package waitlist

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/hireai/waitlist-manager/internal/dependency/mocks"
	"github.com/hireai/waitlist-manager/internal/entity"
	gerr "github.com/hireai/waitlist-manager/internal/errors"
	"github.com/hireai/waitlist-manager/internal/form"
	"github.com/hireai/waitlist-manager/internal/store/bunt"
	"github.com/hireai/waitlist-manager/internal/verification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type issuerFunc func(ctx context.Context, entry *entity.WaitlistEntry) error

func (f issuerFunc) Issue(ctx context.Context, entry *entity.WaitlistEntry) error {
	return f(ctx, entry)
}

func noopIssuer() Issuer {
	return issuerFunc(func(context.Context, *entity.WaitlistEntry) error { return nil })
}

func newTestStore(t *testing.T) *bunt.BuntStore {
	s, err := bunt.New(&bunt.Config{})
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func registerRequest(email string) *form.RegisterRequest {
	return &form.RegisterRequest{
		FirstName:     "Ada",
		LastName:      "Lovelace",
		Email:         email,
		Company:       "Analytical Engines",
		Role:          "Founder",
		CompanySize:   "11-50",
		Industry:      "technology",
		PainPoints:    "Sourcing engineers takes months",
		HearAbout:     "referral",
		TermsAccepted: true,
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := New(&Config{DefaultRegion: "US"}, s.Waitlist(), noopIssuer())

	req := registerRequest(" A@X.com ")
	req.Phone = "(415) 555-0100"
	reg, err := svc.Register(ctx, req, entity.ClientMeta{IP: "10.1.1.1", UserAgent: "test"})
	require.NoError(t, err)
	assert.Equal(t, &entity.Registration{Email: "a@x.com", FirstName: "Ada", VerificationDispatched: true}, reg)

	stored, err := s.Waitlist().GetEntryByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.False(t, stored.IsVerified)
	assert.Equal(t, entity.EntryStatusPending, stored.Status)
	assert.Equal(t, "+14155550100", stored.Phone.String)
	assert.Equal(t, "10.1.1.1", stored.SourceIP.String)
	assert.Equal(t, stored.CreatedAt, stored.UpdatedAt)

	again := registerRequest("a@x.com")
	again.FirstName = "Someone"
	_, err = svc.Register(ctx, again, entity.ClientMeta{})
	assert.ErrorIs(t, err, gerr.ErrDuplicateRegistration)

	other := registerRequest("b@x.com")
	other.Phone = "+1 415 555 0100"
	_, err = svc.Register(ctx, other, entity.ClientMeta{})
	assert.ErrorIs(t, err, gerr.ErrDuplicateRegistration)
}

func TestRegisterValidationPersistsNothing(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	issued := false
	svc := New(&Config{}, s.Waitlist(), issuerFunc(func(context.Context, *entity.WaitlistEntry) error {
		issued = true
		return nil
	}))

	req := registerRequest("a@x.com")
	req.PainPoints = "short"
	req.TermsAccepted = false
	_, err := svc.Register(ctx, req, entity.ClientMeta{})

	var ge *gerr.Error
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, gerr.KindValidationFailed, ge.Kind)
	assert.Len(t, ge.Fields, 2)
	assert.False(t, issued)

	entries, err := s.Waitlist().ListEntries(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRegisterDeliveryFailureKeepsEntry(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := New(&Config{}, s.Waitlist(), issuerFunc(func(context.Context, *entity.WaitlistEntry) error {
		return gerr.Wrap(gerr.KindDeliveryFailed, "down", errors.New("smtp"))
	}))

	reg, err := svc.Register(ctx, registerRequest("a@x.com"), entity.ClientMeta{})
	require.NoError(t, err)
	assert.False(t, reg.VerificationDispatched)

	_, err = s.Waitlist().GetEntryByEmail(ctx, "a@x.com")
	assert.NoError(t, err)
}

func TestConcurrentRegisterSameEmail(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := New(&Config{}, s.Waitlist(), noopIssuer())

	const n = 20
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		ok   int
		dups int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Register(ctx, registerRequest("race@x.com"), entity.ClientMeta{})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, gerr.ErrDuplicateRegistration):
				dups++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, dups)
	entries, err := s.Waitlist().ListEntries(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRegisterAndVerifyFlow(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	var sent []string
	email := mocks.NewCodeSender(t)
	email.EXPECT().SendVerificationCode(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(_ context.Context, _ *entity.WaitlistEntry, code string, _ time.Time) {
			sent = append(sent, code)
		}).Return(nil)
	welcome := mocks.NewWelcomeSender(t)
	welcome.EXPECT().SendWelcome(mock.Anything, mock.Anything).Return(nil).Once()

	engine := verification.New(&verification.Config{}, s.Waitlist(), verification.Senders{Email: email, Welcome: welcome})
	svc := New(&Config{}, s.Waitlist(), engine)

	reg, err := svc.Register(ctx, registerRequest("a@x.com"), entity.ClientMeta{})
	require.NoError(t, err)
	assert.True(t, reg.VerificationDispatched)
	require.Len(t, sent, 1)

	require.NoError(t, engine.Resend(ctx, "a@x.com"))
	require.Len(t, sent, 2)

	if sent[0] != sent[1] {
		_, err = engine.Verify(ctx, "a@x.com", sent[0])
		assert.ErrorIs(t, err, gerr.ErrCodeMismatch)
	}

	verified, err := engine.Verify(ctx, "a@x.com", sent[1])
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)

	st, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Total)
	assert.Equal(t, 1, st.Verified)
}

func TestListSetStatusStats(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := New(&Config{}, s.Waitlist(), noopIssuer())

	base := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	for i, industry := range []string{"technology", "finance", "technology"} {
		ts := base.Add(time.Duration(i) * time.Hour)
		svc.now = func() time.Time { return ts }
		req := registerRequest(fmt.Sprintf("user%d@x.com", i))
		req.Industry = industry
		_, err := svc.Register(ctx, req, entity.ClientMeta{})
		require.NoError(t, err)
	}

	entries, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "user2@x.com", entries[0].Email)
	assert.Equal(t, "user0@x.com", entries[2].Email)

	require.NoError(t, svc.SetStatus(ctx, "USER1@x.com", &form.SetStatusRequest{Status: "approved"}))
	stored, err := s.Waitlist().GetEntryByEmail(ctx, "user1@x.com")
	require.NoError(t, err)
	assert.Equal(t, entity.EntryStatusApproved, stored.Status)

	err = svc.SetStatus(ctx, "user1@x.com", &form.SetStatusRequest{Status: "banned"})
	assert.ErrorIs(t, err, gerr.ErrValidationFailed)

	err = svc.SetStatus(ctx, "nobody@x.com", &form.SetStatusRequest{Status: "rejected"})
	assert.ErrorIs(t, err, gerr.ErrEntryNotFound)

	st, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, st.Total)
	assert.Equal(t, 0, st.Verified)
	assert.Equal(t, []entity.CategoryCount{
		{Value: "technology", Count: 2},
		{Value: "finance", Count: 1},
	}, st.ByIndustry)
}
