package ratelimit

import (
	"context"
	"sync"
	"time"

	gerr "github.com/hireai/waitlist-manager/internal/errors"
)

// Config holds per-key limits. A zero value falls back to the default.
type Config struct {
	Enabled           bool `mapstructure:"enabled"`
	RegisterPerHour   int  `mapstructure:"register_per_hour"`
	VerifyPerMinute   int  `mapstructure:"verify_per_minute"`
	VerifyPerCodeTTL  int  `mapstructure:"verify_per_code_ttl"`
	ResendPerHour     int  `mapstructure:"resend_per_hour"`
	LoginPerMinute    int  `mapstructure:"login_per_minute"`
	LoginEmailPerHour int  `mapstructure:"login_email_per_hour"`
}

// Limiter implements a simple in-memory fixed window rate limiter
type Limiter struct {
	mu       sync.Mutex
	counters map[string]*counter
	window   time.Duration
	max      int
	now      func() time.Time
}

type counter struct {
	count     int
	expiresAt time.Time
}

// NewLimiter creates a new rate limiter with the specified window and max requests
func NewLimiter(window time.Duration, max int) *Limiter {
	return &Limiter{
		counters: make(map[string]*counter),
		window:   window,
		max:      max,
		now:      time.Now,
	}
}

// Allow checks if a request for the given key is allowed
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	c, exists := l.counters[key]

	if !exists || now.After(c.expiresAt) {
		l.counters[key] = &counter{
			count:     1,
			expiresAt: now.Add(l.window),
		}
		return true
	}

	if c.count >= l.max {
		return false
	}

	c.count++
	return true
}

// sweep removes expired counters
func (l *Limiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	for key, c := range l.counters {
		if now.After(c.expiresAt) {
			delete(l.counters, key)
		}
	}
}

const (
	ipRegister  = "ip_register"
	ipVerify    = "ip_verify"
	emailVerify = "email_verify"
	emailResend = "email_resend"
	ipLogin     = "ip_login"
	emailLogin  = "email_login"
)

// MultiKeyLimiter manages multiple rate limiters for different types of
// operations. A nil *MultiKeyLimiter allows everything.
type MultiKeyLimiter struct {
	limiters map[string]*Limiter
}

func orDefault(v, d int) int {
	if v <= 0 {
		return d
	}
	return v
}

// New creates a limiter from c, nil when rate limiting is disabled.
func New(c *Config) *MultiKeyLimiter {
	if !c.Enabled {
		return nil
	}
	return &MultiKeyLimiter{
		limiters: map[string]*Limiter{
			ipRegister:  NewLimiter(time.Hour, orDefault(c.RegisterPerHour, 10)),
			ipVerify:    NewLimiter(time.Minute, orDefault(c.VerifyPerMinute, 20)),
			emailVerify: NewLimiter(10*time.Minute, orDefault(c.VerifyPerCodeTTL, 5)),
			emailResend: NewLimiter(time.Hour, orDefault(c.ResendPerHour, 5)),
			ipLogin:     NewLimiter(time.Minute, orDefault(c.LoginPerMinute, 10)),
			emailLogin:  NewLimiter(time.Hour, orDefault(c.LoginEmailPerHour, 20)),
		},
	}
}

// Run periodically removes expired counters until ctx is done.
func (m *MultiKeyLimiter) Run(ctx context.Context) {
	if m == nil {
		return
	}
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, l := range m.limiters {
				l.sweep()
			}
		}
	}
}

func (m *MultiKeyLimiter) allow(name, key string) bool {
	if key == "" {
		return true
	}
	return m.limiters[name].Allow(key)
}

// CheckRegistration verifies if a registration is allowed from the given IP
func (m *MultiKeyLimiter) CheckRegistration(ip string) error {
	if m == nil {
		return nil
	}
	if !m.allow(ipRegister, ip) {
		return gerr.ErrRateLimited
	}
	return nil
}

// CheckVerification limits code attempts per IP and per email. The email
// window matches the code lifetime so a single code can't be brute forced.
func (m *MultiKeyLimiter) CheckVerification(ip, email string) error {
	if m == nil {
		return nil
	}
	if !m.allow(ipVerify, ip) || !m.allow(emailVerify, email) {
		return gerr.ErrRateLimited
	}
	return nil
}

// CheckResend verifies if a new code can be sent to email
func (m *MultiKeyLimiter) CheckResend(ip, email string) error {
	if m == nil {
		return nil
	}
	if !m.allow(ipVerify, ip) || !m.allow(emailResend, email) {
		return gerr.ErrRateLimited
	}
	return nil
}

// CheckLogin verifies if a login attempt is allowed for the IP and email
func (m *MultiKeyLimiter) CheckLogin(ip, email string) error {
	if m == nil {
		return nil
	}
	if !m.allow(ipLogin, ip) || !m.allow(emailLogin, email) {
		return gerr.ErrRateLimited
	}
	return nil
}
