package tui

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/visibility"
)

const defaultMaxAttempts = 3

// Renderer drives a form controller from the terminal: it collects each
// prompt, feeds the answers through the controller, and re-asks whatever the
// controller reports as invalid.
type Renderer struct {
	driver      PromptDriver
	theme       Theme
	maxAttempts int
	logger      *zap.Logger
	visibility  visibility.Evaluator
}

// New constructs a renderer with defaults (survey driver on stdout, three
// attempts per field).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		theme:       DefaultTheme,
		maxAttempts: defaultMaxAttempts,
		logger:      zap.NewNop(),
		visibility:  visibility.Default,
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}

	return r, nil
}

// Confirm asks a yes/no question outside any form.
func (r *Renderer) Confirm(ctx context.Context, msg string, def bool) (bool, error) {
	return r.driver.Confirm(ctx, ConfirmConfig{Message: msg, Default: def})
}

// Info prints msg through the driver with the theme info prefix.
func (r *Renderer) Info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

// Fill asks every prompt in order, then submits. Each answer goes through
// HandleChange followed by a blur, so the user sees the field error right
// away and is asked again.
func Fill[T any](ctx context.Context, r *Renderer, c *form.Controller[T], prompts []Prompt) error {
	for _, prompt := range prompts {
		if err := ask(ctx, r, c, prompt); err != nil {
			return err
		}
	}
	return Submit(ctx, r, c, prompts)
}

// Step asks prompts and validates only their fields, the way a multi-step
// flow gates its next step. Fields outside the step keep their state.
func Step[T any](ctx context.Context, r *Renderer, c *form.Controller[T], prompts []Prompt) error {
	names := make([]string, len(prompts))
	for i, prompt := range prompts {
		names[i] = prompt.Field
		if err := ask(ctx, r, c, prompt); err != nil {
			return err
		}
	}

	for attempt := 1; ; attempt++ {
		valid, err := c.ValidateNames(names...)
		if err != nil {
			return err
		}
		if valid {
			return nil
		}
		if attempt >= r.maxAttempts {
			break
		}
		for _, prompt := range prompts {
			if c.Error(prompt.Field) == "" {
				continue
			}
			if err := ask(ctx, r, c, prompt); err != nil {
				return err
			}
		}
	}
	return fmt.Errorf("%w: %v", ErrInvalid, names)
}

// Submit runs HandleSubmit, asking the invalid fields again until the submit
// goes through or the attempts run out, in which case ErrInvalid is returned.
// Errors from the submit handler are returned as is.
func Submit[T any](ctx context.Context, r *Renderer, c *form.Controller[T], prompts []Prompt) error {
	byField := make(map[string]Prompt, len(prompts))
	for _, prompt := range prompts {
		byField[prompt.Field] = prompt
	}

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		submitted, err := c.HandleSubmit()
		if err != nil {
			return err
		}
		if submitted {
			return nil
		}
		invalid := c.Invalid()
		r.logger.Debug("submit withheld", zap.Int("attempt", attempt), zap.Strings("invalid", invalid))
		if attempt == r.maxAttempts {
			break
		}
		for _, name := range invalid {
			prompt, ok := byField[name]
			if !ok {
				return fmt.Errorf("%w: %q (%s)", ErrNoPrompt, name, c.Error(name))
			}
			if err := ask(ctx, r, c, prompt); err != nil {
				return err
			}
		}
	}
	return fmt.Errorf("%w: %v", ErrInvalid, c.Invalid())
}

func ask[T any](ctx context.Context, r *Renderer, c *form.Controller[T], prompt Prompt) error {
	visible, err := r.visibility.Eval(prompt.VisibleWhen, c.Value)
	if err != nil {
		return fmt.Errorf("tui: prompt %q: %w", prompt.Field, err)
	}
	if !visible {
		r.logger.Debug("prompt hidden", zap.String("field", prompt.Field))
		return nil
	}
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		current, _ := c.Value(prompt.Field)
		value, err := r.read(ctx, prompt, current)
		if err != nil {
			return err
		}
		if err := c.HandleChange(prompt.Field, value); err != nil {
			return err
		}
		if err := c.HandleBlurName(prompt.Field); err != nil {
			return err
		}
		msg := c.VisibleError(prompt.Field)
		if msg == "" {
			return nil
		}
		r.logger.Debug("field rejected", zap.String("field", prompt.Field), zap.Int("attempt", attempt), zap.String("error", msg))
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+msg); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) read(ctx context.Context, prompt Prompt, current any) (any, error) {
	label := prompt.label()
	switch prompt.Kind {
	case PromptPassword:
		return r.driver.Password(ctx, InputConfig{Message: label, Help: prompt.Help})
	case PromptConfirm:
		def, _ := current.(bool)
		return r.driver.Confirm(ctx, ConfirmConfig{Message: label, Default: def, Help: prompt.Help})
	case PromptSelect:
		def, _ := current.(string)
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      prompt.Options,
			DefaultIndex: indexOf(prompt.Options, def),
			Help:         prompt.Help,
		})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(prompt.Options) {
			return "", nil
		}
		return prompt.Options[idx], nil
	case PromptTextArea:
		def, _ := current.(string)
		return r.driver.TextArea(ctx, TextAreaConfig{Message: label, Default: def, Help: prompt.Help})
	default:
		def, _ := current.(string)
		return r.driver.Input(ctx, InputConfig{Message: label, Default: def, Help: prompt.Help})
	}
}
