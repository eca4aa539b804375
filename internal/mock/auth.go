package mock

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/pkg/rules"
	"github.com/goliatone/go-formstate/pkg/wallet"
)

const demoName = "John Doe"

// User is the signed in account.
type User struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Email     string    `json:"email" yaml:"email"`
	AvatarURL string    `json:"avatarUrl,omitempty" yaml:"avatarUrl,omitempty"`
	Joined    time.Time `json:"joined" yaml:"joined"`
}

// Auth accepts any credentials and keeps the resulting user in memory. It is
// safe for concurrent use.
type Auth struct {
	cfg config

	mu   sync.RWMutex
	user *User
}

// NewAuth returns an Auth with nobody signed in.
func NewAuth(opts ...Option) *Auth {
	return &Auth{cfg: newConfig(opts)}
}

// Login signs in as the demo user under the given email.
func (a *Auth) Login(ctx context.Context, in wallet.Login) (User, error) {
	if err := a.cfg.wait(ctx); err != nil {
		return User{}, fmt.Errorf("login: %w", err)
	}
	user := User{
		ID:        uuid.New().String(),
		Name:      demoName,
		Email:     strings.TrimSpace(in.Email),
		AvatarURL: "https://randomuser.me/api/portraits/men/32.jpg",
		Joined:    a.cfg.now(),
	}
	a.signIn(user)
	a.cfg.logger.Info("signed in", zap.String("user_id", user.ID), zap.String("email", user.Email))
	return user, nil
}

// Register creates the account and signs it in.
func (a *Auth) Register(ctx context.Context, in wallet.Register) (User, error) {
	if err := a.cfg.wait(ctx); err != nil {
		return User{}, fmt.Errorf("register: %w", err)
	}
	user := User{
		ID:     uuid.New().String(),
		Name:   strings.TrimSpace(in.FullName),
		Email:  strings.TrimSpace(in.Email),
		Joined: a.cfg.now(),
	}
	a.signIn(user)
	a.cfg.logger.Info("registered", zap.String("user_id", user.ID), zap.String("email", user.Email))
	return user, nil
}

// Logout clears the current user. It does not wait.
func (a *Auth) Logout(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.user == nil {
		return ErrNotSignedIn
	}
	a.user = nil
	a.cfg.logger.Info("signed out")
	return nil
}

// ForgotPassword pretends to send a reset code to the address.
func (a *Auth) ForgotPassword(ctx context.Context, in wallet.ForgotPassword) error {
	if err := a.cfg.wait(ctx); err != nil {
		return fmt.Errorf("forgot password: %w", err)
	}
	a.cfg.logger.Info("reset code sent", zap.String("email", in.Email))
	return nil
}

// ResetPassword accepts any non-empty token and a password of the minimum
// length.
func (a *Auth) ResetPassword(ctx context.Context, token, password string) error {
	if err := a.cfg.wait(ctx); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	if strings.TrimSpace(token) == "" {
		return ErrInvalidToken
	}
	if len(password) < wallet.MinPasswordLength {
		return fmt.Errorf("reset password: password must be at least %d characters", wallet.MinPasswordLength)
	}
	a.cfg.logger.Info("password reset")
	return nil
}

// VerifyOTP accepts any code of the expected number of digits.
func (a *Auth) VerifyOTP(ctx context.Context, in wallet.VerifyOTP) error {
	if err := a.cfg.wait(ctx); err != nil {
		return fmt.Errorf("verify otp: %w", err)
	}
	if rules.Digits(wallet.OTPLength, "invalid")(in.Code) != "" {
		return ErrInvalidCode
	}
	a.cfg.logger.Info("code verified", zap.String("email", in.Email))
	return nil
}

// Current returns the signed in user.
func (a *Auth) Current() (User, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.user == nil {
		return User{}, false
	}
	return *a.user, true
}

func (a *Auth) signIn(user User) {
	a.mu.Lock()
	a.user = &user
	a.mu.Unlock()
}
