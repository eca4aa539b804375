package wallet

import (
	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/rules"
)

const (
	// MinPasswordLength is the shortest password accepted on sign in and
	// registration.
	MinPasswordLength = 6
	// OTPLength is the number of digits in a verification code.
	OTPLength = 4
)

var emailRule = rules.Chain(
	rules.Required("Email is required"),
	rules.Email("Invalid email address"),
)

var passwordRule = rules.Chain(
	rules.Required("Password is required"),
	rules.MinLength(MinPasswordLength, "Password must be at least 6 characters"),
)

// Login holds the sign in form values.
type Login struct {
	Email    string `json:"email" yaml:"email"`
	Password string `json:"password" yaml:"password"`
}

var (
	LoginEmail = form.Bind("email",
		func(v Login) string { return v.Email },
		func(v *Login, s string) { v.Email = s },
		emailRule,
	)
	LoginPassword = form.Bind("password",
		func(v Login) string { return v.Password },
		func(v *Login, s string) { v.Password = s },
		passwordRule,
	)
	LoginSchema = form.MustSchema[Login](LoginEmail, LoginPassword)
)

// Register holds the registration form values.
type Register struct {
	FullName        string `json:"fullName" yaml:"fullName"`
	Email           string `json:"email" yaml:"email"`
	Password        string `json:"password" yaml:"password"`
	ConfirmPassword string `json:"confirmPassword" yaml:"confirmPassword"`
	Terms           bool   `json:"terms" yaml:"terms"`
}

var (
	RegisterFullName = form.Bind("fullName",
		func(v Register) string { return v.FullName },
		func(v *Register, s string) { v.FullName = s },
		rules.Required("Full name is required"),
	)
	RegisterEmail = form.Bind("email",
		func(v Register) string { return v.Email },
		func(v *Register, s string) { v.Email = s },
		emailRule,
	)
	RegisterPassword = form.Bind("password",
		func(v Register) string { return v.Password },
		func(v *Register, s string) { v.Password = s },
		passwordRule,
	)
	RegisterConfirmPassword = form.BindCross("confirmPassword",
		func(v Register) string { return v.ConfirmPassword },
		func(v *Register, s string) { v.ConfirmPassword = s },
		func(v Register, confirm string) string {
			return confirmMessage(v.Password, confirm)
		},
	)
	RegisterTerms = form.Bind("terms",
		func(v Register) bool { return v.Terms },
		func(v *Register, b bool) { v.Terms = b },
		rules.Accepted("You must agree to the terms and conditions"),
	)
	RegisterSchema = form.MustSchema[Register](
		RegisterFullName,
		RegisterEmail,
		RegisterPassword,
		RegisterConfirmPassword,
		RegisterTerms,
	)
)

// ForgotPassword holds the password recovery form values.
type ForgotPassword struct {
	Email string `json:"email" yaml:"email"`
}

var (
	ForgotPasswordEmail = form.Bind("email",
		func(v ForgotPassword) string { return v.Email },
		func(v *ForgotPassword, s string) { v.Email = s },
		emailRule,
	)
	ForgotPasswordSchema = form.MustSchema[ForgotPassword](ForgotPasswordEmail)
)

// VerifyOTP holds the one-time code typed after a password reset request.
type VerifyOTP struct {
	Email string `json:"email" yaml:"email"`
	Code  string `json:"code" yaml:"code"`
}

var (
	VerifyOTPEmail = form.Bind("email",
		func(v VerifyOTP) string { return v.Email },
		func(v *VerifyOTP, s string) { v.Email = s },
		emailRule,
	)
	VerifyOTPCode = form.Bind("code",
		func(v VerifyOTP) string { return v.Code },
		func(v *VerifyOTP, s string) { v.Code = s },
		rules.Digits(OTPLength, "Please enter the 4-digit verification code"),
	)
	VerifyOTPSchema = form.MustSchema[VerifyOTP](VerifyOTPEmail, VerifyOTPCode)
)

// ResetPassword holds the new password chosen with a reset token.
type ResetPassword struct {
	Password        string `json:"password" yaml:"password"`
	ConfirmPassword string `json:"confirmPassword" yaml:"confirmPassword"`
}

var (
	ResetPasswordPassword = form.Bind("password",
		func(v ResetPassword) string { return v.Password },
		func(v *ResetPassword, s string) { v.Password = s },
		passwordRule,
	)
	ResetPasswordConfirm = form.BindCross("confirmPassword",
		func(v ResetPassword) string { return v.ConfirmPassword },
		func(v *ResetPassword, s string) { v.ConfirmPassword = s },
		func(v ResetPassword, confirm string) string {
			return confirmMessage(v.Password, confirm)
		},
	)
	ResetPasswordSchema = form.MustSchema[ResetPassword](ResetPasswordPassword, ResetPasswordConfirm)
)

func confirmMessage(password, confirm string) string {
	switch {
	case confirm == "":
		return "Please confirm your password"
	case confirm != password:
		return "Passwords do not match"
	}
	return ""
}
