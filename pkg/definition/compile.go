package definition

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/rules"
	"github.com/goliatone/go-formstate/pkg/visibility"
)

type stringCheck func(values form.Values, value string) string

type boolCheck func(values form.Values, value bool) string

// Schema compiles the definition into a schema over form.Values. String-like
// inputs hold string values (numbers are kept as typed text); checkboxes hold
// booleans.
func (d Definition) Schema() (form.Schema[form.Values], error) {
	fields := make([]form.Field[form.Values], 0, len(d.Fields))
	for _, field := range d.Fields {
		if err := d.checkVisibility(field); err != nil {
			return form.Schema[form.Values]{}, fmt.Errorf("definition %q field %q: %w", d.ID, field.Name, err)
		}
		if err := d.checkReferences(field); err != nil {
			return form.Schema[form.Values]{}, fmt.Errorf("definition %q field %q: %w", d.ID, field.Name, err)
		}
		compiled, err := compileField(field)
		if err != nil {
			return form.Schema[form.Values]{}, fmt.Errorf("definition %q field %q: %w", d.ID, field.Name, err)
		}
		fields = append(fields, compiled)
	}
	schema, err := form.NewValuesSchema(fields...)
	if err != nil {
		return form.Schema[form.Values]{}, fmt.Errorf("definition %q: %w", d.ID, err)
	}
	return schema, nil
}

// Initial returns the starting values: defaults where declared, otherwise an
// empty string, or false for checkboxes.
func (d Definition) Initial() form.Values {
	values := make(form.Values, len(d.Fields))
	for _, field := range d.Fields {
		if field.Type == FieldCheckbox {
			checked, _ := field.Default.(bool)
			values[field.Name] = checked
			continue
		}
		if field.Default == nil {
			values[field.Name] = ""
			continue
		}
		values[field.Name] = fmt.Sprint(field.Default)
	}
	return values
}

func compileField(field Field) (form.Field[form.Values], error) {
	switch field.Type {
	case FieldCheckbox:
		return compileCheckbox(field)
	case FieldText, FieldPassword, FieldEmail, FieldNumber, FieldTel, FieldDate, FieldSelect, FieldTextArea:
		return compileString(field)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFieldType, field.Type)
	}
}

func (d Definition) checkVisibility(field Field) error {
	if strings.TrimSpace(field.VisibleWhen) == "" {
		return nil
	}
	rule, err := visibility.Parse(field.VisibleWhen)
	if err != nil {
		return err
	}
	if rule.Field == field.Name {
		return fmt.Errorf("%w: visibility depends on the field itself", ErrInvalidRule)
	}
	if _, ok := d.Lookup(rule.Field); !ok {
		return fmt.Errorf("%w: visibility depends on unknown field %q", ErrInvalidRule, rule.Field)
	}
	return nil
}

// checkReferences rejects matches rules pointing at the field itself or at a
// field the definition does not declare.
func (d Definition) checkReferences(field Field) error {
	for _, rule := range field.Rules {
		if rule.Kind != "matches" {
			continue
		}
		other := strings.TrimSpace(rule.Value)
		if other == "" {
			continue
		}
		if other == field.Name {
			return fmt.Errorf("%w: matches refers to the field itself", ErrInvalidRule)
		}
		if _, ok := d.Lookup(other); !ok {
			return fmt.Errorf("%w: matches refers to unknown field %q", ErrInvalidRule, other)
		}
	}
	return nil
}

// whenVisible drops the error of a hidden field. The rule was checked by
// checkVisibility.
func whenVisible(field Field, msg func(form.Values) string) func(form.Values) string {
	if strings.TrimSpace(field.VisibleWhen) == "" {
		return msg
	}
	rule, _ := visibility.Parse(field.VisibleWhen)
	return func(values form.Values) string {
		if !rule.Visible(visibility.MapLookup(values)) {
			return ""
		}
		return msg(values)
	}
}

func compileCheckbox(field Field) (form.Field[form.Values], error) {
	var checks []boolCheck
	if field.Required {
		accepted := rules.Accepted(message(field.RequiredMessage, field.Label+" is required"))
		checks = append(checks, func(_ form.Values, v bool) string { return accepted(v) })
	}
	for _, rule := range field.Rules {
		switch rule.Kind {
		case "accepted", "required":
			accepted := rules.Accepted(message(rule.Message, field.Label+" must be accepted"))
			checks = append(checks, func(_ form.Values, v bool) string { return accepted(v) })
		default:
			return nil, fmt.Errorf("%w: %q on checkbox", ErrUnknownRule, rule.Kind)
		}
	}

	name := field.Name
	validate := whenVisible(field, func(values form.Values) string {
		checked, _ := values[name].(bool)
		for _, check := range checks {
			if msg := check(values, checked); msg != "" {
				return msg
			}
		}
		return ""
	})
	return form.BindCross(name,
		func(values form.Values) bool {
			checked, _ := values[name].(bool)
			return checked
		},
		func(values *form.Values, v bool) {
			setValue(values, name, v)
		},
		func(values form.Values, _ bool) string {
			return validate(values)
		},
	), nil
}

func compileString(field Field) (form.Field[form.Values], error) {
	var checks []stringCheck
	if field.Required {
		checks = append(checks, lift(rules.Required(message(field.RequiredMessage, field.Label+" is required"))))
	}
	if implied := impliedCheck(field); implied != nil {
		checks = append(checks, implied)
	}
	for _, rule := range field.Rules {
		check, err := compileRule(field, rule)
		if err != nil {
			return nil, err
		}
		checks = append(checks, check)
	}

	name := field.Name
	validate := whenVisible(field, func(values form.Values) string {
		text, _ := values[name].(string)
		for _, check := range checks {
			if msg := check(values, text); msg != "" {
				return msg
			}
		}
		return ""
	})
	return form.BindCross(name,
		func(values form.Values) string {
			text, _ := values[name].(string)
			return text
		},
		func(values *form.Values, v string) {
			setValue(values, name, v)
		},
		func(values form.Values, _ string) string {
			return validate(values)
		},
	), nil
}

func impliedCheck(field Field) stringCheck {
	switch field.Type {
	case FieldEmail:
		return lift(rules.Email("Invalid email address"))
	case FieldTel:
		return lift(rules.Phone("Invalid phone number"))
	case FieldDate:
		return lift(rules.Date("Use the YYYY-MM-DD format"))
	case FieldNumber:
		msg := field.Label + " must be a number"
		return func(_ form.Values, v string) string {
			if strings.TrimSpace(v) == "" {
				return ""
			}
			if _, err := rules.ParseAmount(v); err != nil {
				return msg
			}
			return ""
		}
	case FieldSelect:
		if len(field.Options) == 0 {
			return nil
		}
		return lift(rules.OneOf(field.OptionValues(), "Choose one of the listed options"))
	}
	return nil
}

func compileRule(field Field, rule Rule) (stringCheck, error) {
	label := field.Label
	switch rule.Kind {
	case "required":
		return lift(rules.Required(message(rule.Message, label+" is required"))), nil
	case "email":
		return lift(rules.Email(message(rule.Message, "Invalid email address"))), nil
	case "phone":
		return lift(rules.Phone(message(rule.Message, "Invalid phone number"))), nil
	case "name":
		return lift(rules.Name(message(rule.Message, label+" can only contain letters, spaces and hyphens"))), nil
	case "url":
		return lift(rules.URL(message(rule.Message, "Invalid URL"))), nil
	case "creditCard":
		return lift(rules.CreditCard(message(rule.Message, "Invalid card number"))), nil
	case "date":
		return lift(rules.Date(message(rule.Message, "Use the YYYY-MM-DD format"))), nil
	case "strongPassword":
		strong := rules.StrongPassword()
		if rule.Message == "" {
			return lift(strong), nil
		}
		custom := rule.Message
		return func(_ form.Values, v string) string {
			if strong(v) != "" {
				return custom
			}
			return ""
		}, nil
	case "noMarkup":
		return lift(rules.NoMarkup(message(rule.Message, label+" cannot contain HTML"))), nil
	case "minLength", "maxLength", "digits":
		n, err := strconv.Atoi(strings.TrimSpace(rule.Value))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: %s needs a non-negative integer value", ErrInvalidRule, rule.Kind)
		}
		switch rule.Kind {
		case "minLength":
			return lift(rules.MinLength(n, message(rule.Message, fmt.Sprintf("%s must be at least %d characters", label, n)))), nil
		case "maxLength":
			return lift(rules.MaxLength(n, message(rule.Message, fmt.Sprintf("%s must be %d characters or fewer", label, n)))), nil
		default:
			return lift(rules.Digits(n, message(rule.Message, fmt.Sprintf("Please enter the %d-digit code", n)))), nil
		}
	case "pattern":
		re, err := regexp.Compile(rule.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: pattern: %v", ErrInvalidRule, err)
		}
		return lift(rules.Pattern(re, message(rule.Message, label+" has an invalid format"))), nil
	case "oneOf":
		options := field.OptionValues()
		if rule.Value != "" {
			options = splitList(rule.Value)
		}
		if len(options) == 0 {
			return nil, fmt.Errorf("%w: oneOf needs options", ErrInvalidRule)
		}
		return lift(rules.OneOf(options, message(rule.Message, "Choose one of the listed options"))), nil
	case "range":
		if rule.Min == nil || rule.Max == nil {
			return nil, fmt.Errorf("%w: range needs min and max", ErrInvalidRule)
		}
		return lift(rules.Range(*rule.Min, *rule.Max, message(rule.Message,
			fmt.Sprintf("%s must be between %s and %s", label, formatBound(*rule.Min), formatBound(*rule.Max))))), nil
	case "min":
		if rule.Min == nil {
			return nil, fmt.Errorf("%w: min needs a min bound", ErrInvalidRule)
		}
		text := "at least"
		if rule.Exclusive {
			text = "greater than"
		}
		return lift(rules.Min(*rule.Min, rule.Exclusive, message(rule.Message,
			fmt.Sprintf("%s must be %s %s", label, text, formatBound(*rule.Min))))), nil
	case "max":
		if rule.Max == nil {
			return nil, fmt.Errorf("%w: max needs a max bound", ErrInvalidRule)
		}
		text := "at most"
		if rule.Exclusive {
			text = "less than"
		}
		return lift(rules.Max(*rule.Max, rule.Exclusive, message(rule.Message,
			fmt.Sprintf("%s must be %s %s", label, text, formatBound(*rule.Max))))), nil
	case "amount":
		limit := 0.0
		if rule.Max != nil {
			limit = *rule.Max
		}
		return lift(rules.Amount(limit, rules.AmountMessages{
			Required: label + " is required",
			Invalid:  message(rule.Message, "Please enter a valid amount"),
			Max:      fmt.Sprintf("Maximum %s is %s", strings.ToLower(label), formatBound(limit)),
		})), nil
	case "matches":
		other := strings.TrimSpace(rule.Value)
		if other == "" {
			return nil, fmt.Errorf("%w: matches needs the other field name", ErrInvalidRule)
		}
		msg := message(rule.Message, label+" does not match")
		return func(values form.Values, v string) string {
			want, _ := values[other].(string)
			if v != want {
				return msg
			}
			return ""
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRule, rule.Kind)
	}
}

func lift(validate form.Validator[string]) stringCheck {
	return func(_ form.Values, v string) string {
		return validate(v)
	}
}

func setValue(values *form.Values, name string, v any) {
	if *values == nil {
		*values = make(form.Values)
	}
	(*values)[name] = v
}

func message(custom, fallback string) string {
	if strings.TrimSpace(custom) != "" {
		return custom
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
