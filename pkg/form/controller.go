package form

import (
	"fmt"

	"go.uber.org/zap"
)

// SubmitHandler receives the full values once a submit attempt passes
// validation. Its error is returned to the HandleSubmit caller unchanged.
type SubmitHandler[T any] func(values T) error

// Option configures a Controller.
type Option func(*options)

type options struct {
	logger *zap.Logger
	name   string
}

// WithLogger attaches a logger for debug traces of blur and submit events.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithName labels log entries with the form identifier.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// Controller owns the state of one form for the length of an editing
// session. It is not safe for concurrent use.
type Controller[T any] struct {
	schema   Schema[T]
	initial  T
	state    State[T]
	onSubmit SubmitHandler[T]
	logger   *zap.Logger
}

// New creates a controller seeded with a copy of initial. onSubmit may be nil
// when the caller only needs the validation bookkeeping.
func New[T any](initial T, schema Schema[T], onSubmit SubmitHandler[T], opts ...Option) *Controller[T] {
	cfg := options{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	logger := cfg.logger
	if cfg.name != "" {
		logger = logger.With(zap.String("form", cfg.name))
	}
	return &Controller[T]{
		schema:   schema,
		initial:  schema.copyValues(initial),
		state:    schema.Init(initial),
		onSubmit: onSubmit,
		logger:   logger,
	}
}

// Change sets field to value on c, validating it right away only if the field
// was touched before.
func Change[T, V any](c *Controller[T], field Binding[T, V], value V) {
	c.state = ChangeState(c.schema, c.state, field, value)
}

// HandleChange is Change addressed by field name, for event sources that do
// not hold typed fields.
func (c *Controller[T]) HandleChange(name string, value any) error {
	next, err := c.schema.ChangeAny(c.state, name, value)
	if err != nil {
		return err
	}
	c.state = next
	return nil
}

// HandleBlur touches field and validates its current value.
func (c *Controller[T]) HandleBlur(field Field[T]) {
	c.state = c.schema.Blur(c.state, field)
	if msg := c.state.Errors[field.Name()]; msg != "" {
		c.logger.Debug("field invalid", zap.String("field", field.Name()), zap.String("error", msg))
	}
}

// HandleBlurName is HandleBlur addressed by field name.
func (c *Controller[T]) HandleBlurName(name string) error {
	field, ok := c.schema.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	c.HandleBlur(field)
	return nil
}

// ValidateForm validates fields, or the whole schema when fields is empty, and
// reports whether none of them failed. Errors of other fields are untouched.
func (c *Controller[T]) ValidateForm(fields ...Field[T]) bool {
	next, valid := c.schema.Validate(c.state, fields...)
	c.state = next
	return valid
}

// ValidateNames is ValidateForm addressed by field names.
func (c *Controller[T]) ValidateNames(names ...string) (bool, error) {
	fields := make([]Field[T], 0, len(names))
	for _, name := range names {
		field, ok := c.schema.Lookup(name)
		if !ok {
			return false, fmt.Errorf("%w: %q", ErrUnknownField, name)
		}
		fields = append(fields, field)
	}
	return c.ValidateForm(fields...), nil
}

// HandleSubmit validates every field and marks them all touched. The submit
// handler runs once, with the current values, only when nothing failed. The
// boolean reports whether the handler ran; the error is the handler's own.
func (c *Controller[T]) HandleSubmit() (bool, error) {
	next, valid := c.schema.Submit(c.state)
	c.state = next
	if !valid {
		c.logger.Debug("submit withheld", zap.Strings("invalid", c.schema.Invalid(c.state)))
		return false, nil
	}
	c.logger.Debug("submit accepted")
	if c.onSubmit == nil {
		return true, nil
	}
	return true, c.onSubmit(c.schema.copyValues(c.state.Values))
}

// ResetForm restores the initial values and clears errors and touched flags.
func (c *Controller[T]) ResetForm() {
	c.state = c.schema.Reset(c.initial)
}

// Schema returns the schema the controller was built with.
func (c *Controller[T]) Schema() Schema[T] {
	return c.schema
}

// State returns a copy of the current state.
func (c *Controller[T]) State() State[T] {
	return c.schema.copyState(c.state)
}

// Values returns a copy of the current values.
func (c *Controller[T]) Values() T {
	return c.schema.copyValues(c.state.Values)
}

// Value returns the current value of the field called name.
func (c *Controller[T]) Value(name string) (any, bool) {
	field, ok := c.schema.Lookup(name)
	if !ok {
		return nil, false
	}
	return field.valueOf(c.state.Values), true
}

// Errors returns a copy of the error messages keyed by field name.
func (c *Controller[T]) Errors() map[string]string {
	return c.schema.copyState(c.state).Errors
}

// Touched returns a copy of the touched flags keyed by field name.
func (c *Controller[T]) Touched() map[string]bool {
	return c.schema.copyState(c.state).Touched
}

// Error returns the message recorded for name, empty when none.
func (c *Controller[T]) Error(name string) string {
	return c.state.Errors[name]
}

// IsTouched reports whether name was blurred or went through a submit attempt.
func (c *Controller[T]) IsTouched(name string) bool {
	return c.state.Touched[name]
}

// VisibleError returns the message a UI should display for name: the error
// once the field is touched, empty otherwise.
func (c *Controller[T]) VisibleError(name string) string {
	if !c.state.Touched[name] {
		return ""
	}
	return c.state.Errors[name]
}

// Invalid lists the fields currently holding an error, in schema order.
func (c *Controller[T]) Invalid() []string {
	return c.schema.Invalid(c.state)
}

// Valid reports whether no recorded error is set. Fields never validated
// count as valid; call ValidateForm first for a full check.
func (c *Controller[T]) Valid() bool {
	return len(c.Invalid()) == 0
}
