// Package mock provides in-memory stand-ins for the wallet backend. Every call
// waits for the configured delay, honouring context cancellation, before it
// touches state.
package mock

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// DefaultDelay matches the latency the screens were designed around.
const DefaultDelay = time.Second

var (
	// ErrNotSignedIn is returned by operations that need a current user.
	ErrNotSignedIn = errors.New("mock: not signed in")
	// ErrInvalidToken is returned by ResetPassword for an empty reset token.
	ErrInvalidToken = errors.New("mock: invalid reset token")
	// ErrInvalidCode is returned by VerifyOTP for a malformed code.
	ErrInvalidCode = errors.New("mock: invalid verification code")
)

// Option configures the mock services.
type Option func(*config)

type config struct {
	delay  time.Duration
	logger *zap.Logger
	now    func() time.Time
}

func newConfig(opts []Option) config {
	cfg := config{
		delay:  DefaultDelay,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithDelay sets the simulated latency. Zero disables it.
func WithDelay(d time.Duration) Option {
	return func(c *config) {
		if d >= 0 {
			c.delay = d
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}

func (c config) wait(ctx context.Context) error {
	if c.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(c.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
