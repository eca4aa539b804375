package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/internal/mock"
	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/tui"
	"github.com/goliatone/go-formstate/pkg/wallet"
)

var (
	emailPrompt    = tui.Prompt{Field: "email", Label: "Email", Help: "Enter your email"}
	passwordPrompt = tui.Prompt{Field: "password", Label: "Password", Kind: tui.PromptPassword}
	confirmPrompt  = tui.Prompt{Field: "confirmPassword", Label: "Confirm password", Kind: tui.PromptPassword}
)

func newLoginCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Sign in to the demo wallet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var user mock.User
			c := form.New(wallet.Login{}, wallet.LoginSchema, func(v wallet.Login) (err error) {
				user, err = a.auth.Login(ctx, v)
				return err
			}, form.WithLogger(a.logger), form.WithName("login"))

			r, err := a.renderer()
			if err != nil {
				return err
			}
			if err := tui.Fill(ctx, r, c, []tui.Prompt{emailPrompt, passwordPrompt}); err != nil {
				return err
			}
			return a.write(cmd.OutOrStdout(), user)
		},
	}
}

func newRegisterCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Create a demo wallet account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var user mock.User
			c := form.New(wallet.Register{}, wallet.RegisterSchema, func(v wallet.Register) (err error) {
				user, err = a.auth.Register(ctx, v)
				return err
			}, form.WithLogger(a.logger), form.WithName("register"))

			r, err := a.renderer()
			if err != nil {
				return err
			}
			prompts := []tui.Prompt{
				{Field: "fullName", Label: "Full name"},
				emailPrompt,
				passwordPrompt,
				confirmPrompt,
				{Field: "terms", Label: "I agree to the terms and conditions", Kind: tui.PromptConfirm},
			}
			if err := tui.Fill(ctx, r, c, prompts); err != nil {
				return err
			}
			return a.write(cmd.OutOrStdout(), user)
		},
	}
}

func newForgotPasswordCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "forgot-password",
		Short: "Request a password reset code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c := form.New(wallet.ForgotPassword{}, wallet.ForgotPasswordSchema, func(v wallet.ForgotPassword) error {
				return a.auth.ForgotPassword(ctx, v)
			}, form.WithLogger(a.logger), form.WithName("forgot-password"))

			r, err := a.renderer()
			if err != nil {
				return err
			}
			if err := tui.Fill(ctx, r, c, []tui.Prompt{emailPrompt}); err != nil {
				return err
			}
			return r.Info(ctx, fmt.Sprintf("A reset code was sent to %s", c.Values().Email))
		},
	}
}

func newVerifyOTPCmd(a *app) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "verify-otp",
		Short: "Verify the code sent by forgot-password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c := form.New(wallet.VerifyOTP{Email: email}, wallet.VerifyOTPSchema, func(v wallet.VerifyOTP) error {
				return a.auth.VerifyOTP(ctx, v)
			}, form.WithLogger(a.logger), form.WithName("verify-otp"))

			prompts := []tui.Prompt{
				{Field: "code", Label: "Verification code", Help: fmt.Sprintf("The %d-digit code we emailed you", wallet.OTPLength)},
			}
			if email == "" {
				prompts = append([]tui.Prompt{emailPrompt}, prompts...)
			}

			r, err := a.renderer()
			if err != nil {
				return err
			}
			if err := tui.Fill(ctx, r, c, prompts); err != nil {
				return err
			}
			return r.Info(ctx, "Code verified. You can now reset your password.")
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "address the code was sent to")
	return cmd
}

func newResetPasswordCmd(a *app) *cobra.Command {
	var token string
	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Choose a new password with a reset token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c := form.New(wallet.ResetPassword{}, wallet.ResetPasswordSchema, func(v wallet.ResetPassword) error {
				return a.auth.ResetPassword(ctx, token, v.Password)
			}, form.WithLogger(a.logger), form.WithName("reset-password"))

			r, err := a.renderer()
			if err != nil {
				return err
			}
			if err := tui.Fill(ctx, r, c, []tui.Prompt{passwordPrompt, confirmPrompt}); err != nil {
				return err
			}
			return r.Info(ctx, "Password updated. You can now sign in.")
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "reset token from the verification step")
	_ = cmd.MarkFlagRequired("token")
	return cmd
}

func newProfileCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Sign in, show the account and optionally sign out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c := form.New(wallet.Login{}, wallet.LoginSchema, func(v wallet.Login) error {
				_, err := a.auth.Login(ctx, v)
				return err
			}, form.WithLogger(a.logger), form.WithName("profile"))

			r, err := a.renderer()
			if err != nil {
				return err
			}
			if err := tui.Fill(ctx, r, c, []tui.Prompt{emailPrompt, passwordPrompt}); err != nil {
				return err
			}
			user, ok := a.auth.Current()
			if !ok {
				return mock.ErrNotSignedIn
			}
			if err := a.write(cmd.OutOrStdout(), user); err != nil {
				return err
			}

			leave, err := r.Confirm(ctx, "Are you sure you want to logout from your account?", false)
			if err != nil || !leave {
				return err
			}
			if err := a.auth.Logout(ctx); err != nil {
				return err
			}
			return r.Info(ctx, fmt.Sprintf("Signed out %s", user.Email))
		},
	}
}
