package tui

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/pkg/visibility"
)

// OutputFormat controls how submitted values are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits indented JSON.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML emits YAML.
	OutputFormatYAML OutputFormat = "yaml"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme captures optional prefixes applied to messages printed by the
// renderer.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// DefaultTheme prefixes errors with a cross mark.
var DefaultTheme = Theme{ErrorPrefix: "✗ "}

// Option configures the Renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithMaxAttempts bounds how many times a field is asked again while invalid,
// and how many submit attempts are made. Values below one are ignored.
func WithMaxAttempts(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.maxAttempts = n
		}
	}
}

// WithLogger attaches a logger for prompt and submit traces.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithVisibility overrides how VisibleWhen rules on prompts are evaluated.
func WithVisibility(evaluator visibility.Evaluator) Option {
	return func(r *Renderer) {
		if evaluator != nil {
			r.visibility = evaluator
		}
	}
}
