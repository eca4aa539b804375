package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/internal/mock"
	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/format"
	"github.com/goliatone/go-formstate/pkg/rules"
	"github.com/goliatone/go-formstate/pkg/tui"
	"github.com/goliatone/go-formstate/pkg/wallet"
)

// errCancelled is returned when the final confirmation is declined.
var errCancelled = errors.New("transfer cancelled")

var (
	recipientPrompt = tui.Prompt{Field: "recipient", Label: "Recipient", Help: "Email of the person, see `formstate contacts`"}
	amountPrompt    = tui.Prompt{Field: "amount", Label: "Amount (USD)"}
	notePrompt      = tui.Prompt{Field: "note", Label: "Note", Help: "Optional, up to 140 characters", Kind: tui.PromptTextArea}
	dueDatePrompt   = tui.Prompt{Field: "dueDate", Label: "Due", Kind: tui.PromptSelect, Options: wallet.DueDates}
)

func newSendCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send money to a contact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var tx mock.Transaction
			c := form.New(wallet.SendMoney{}, wallet.SendMoneySchema, func(v wallet.SendMoney) (err error) {
				tx, err = a.transfers.Send(ctx, v)
				return err
			}, form.WithLogger(a.logger), form.WithName("send"))

			prompts := []tui.Prompt{recipientPrompt, amountPrompt, notePrompt}
			if err := runTransfer(ctx, a, c, prompts, yes, sendFlow); err != nil {
				return err
			}
			return a.write(cmd.OutOrStdout(), tx)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation step")
	return cmd
}

func newRequestCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "request",
		Short: "Request money from a contact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var tx mock.Transaction
			c := form.New(wallet.NewRequestMoney(), wallet.RequestMoneySchema, func(v wallet.RequestMoney) (err error) {
				tx, err = a.transfers.Request(ctx, v)
				return err
			}, form.WithLogger(a.logger), form.WithName("request"))

			prompts := []tui.Prompt{recipientPrompt, amountPrompt, notePrompt, dueDatePrompt}
			if err := runTransfer(ctx, a, c, prompts, yes, requestFlow); err != nil {
				return err
			}
			return a.write(cmd.OutOrStdout(), tx)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation step")
	return cmd
}

// transferFlow holds the copy of one transfer direction.
type transferFlow[T any] struct {
	question func(T) string
	done     func(T) string
}

var sendFlow = transferFlow[wallet.SendMoney]{
	question: func(v wallet.SendMoney) string {
		return fmt.Sprintf("Send %s to %s?", money(v.Amount), mock.ContactFor(v.Recipient).Name)
	},
	done: func(v wallet.SendMoney) string {
		return fmt.Sprintf("Money sent! %s has been sent to %s", money(v.Amount), mock.ContactFor(v.Recipient).Name)
	},
}

var requestFlow = transferFlow[wallet.RequestMoney]{
	question: func(v wallet.RequestMoney) string {
		return fmt.Sprintf("Request %s from %s (%s)?", money(v.Amount), mock.ContactFor(v.Recipient).Name, strings.ToLower(v.DueDate))
	},
	done: func(v wallet.RequestMoney) string {
		return fmt.Sprintf("Request sent! %s requested from %s", money(v.Amount), mock.ContactFor(v.Recipient).Name)
	},
}

// runTransfer walks the recipient step, the details step and the
// confirmation, then submits. The first prompt makes up the recipient step.
func runTransfer[T any](ctx context.Context, a *app, c *form.Controller[T], prompts []tui.Prompt, yes bool, flow transferFlow[T]) error {
	r, err := a.renderer()
	if err != nil {
		return err
	}
	if err := tui.Step(ctx, r, c, prompts[:1]); err != nil {
		return err
	}
	if err := tui.Step(ctx, r, c, prompts[1:]); err != nil {
		return err
	}
	if !yes {
		ok, err := r.Confirm(ctx, flow.question(c.Values()), true)
		if err != nil {
			return err
		}
		if !ok {
			return errCancelled
		}
	}
	if err := tui.Submit(ctx, r, c, prompts); err != nil {
		return err
	}
	return r.Info(ctx, flow.done(c.Values()))
}

func money(raw string) string {
	amount, err := rules.ParseAmount(raw)
	if err != nil {
		return raw
	}
	return format.Currency(amount, mock.Currency)
}

func newContactsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "contacts [query]",
		Short: "List recent contacts, optionally filtered by name or email",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			contacts := mock.SearchContacts(query)
			if contacts == nil {
				contacts = []mock.Contact{}
			}
			return a.write(cmd.OutOrStdout(), map[string]any{"contacts": contacts})
		},
	}
}
