package visibility

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRule is returned when a rule string cannot be parsed.
var ErrInvalidRule = errors.New("visibility: invalid rule")

// Lookup returns the current value of a field by name.
type Lookup func(name string) (any, bool)

// Evaluator determines whether a field should be visible based on a rule
// string and the current form values.
type Evaluator interface {
	Eval(rule string, lookup Lookup) (bool, error)
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(rule string, lookup Lookup) (bool, error)

// Eval delegates to the underlying function.
func (fn EvaluatorFunc) Eval(rule string, lookup Lookup) (bool, error) {
	return fn(rule, lookup)
}

// Default evaluates the rule grammar understood by Parse.
var Default Evaluator = EvaluatorFunc(Eval)

// Operators understood by Parse.
const (
	OpTruthy = ""
	OpFalsy  = "!"
	OpEqual  = "=="
	OpNotEq  = "!="
	OpIn     = "in"
)

// Rule is a parsed visibility condition on one other field.
type Rule struct {
	Field  string
	Op     string
	Values []string
}

// Parse reads one of:
//
//	field            visible when field is truthy
//	!field           visible when field is falsy
//	field == value   visible when field equals value
//	field != value   visible when field differs from value
//	field in a, b    visible when field is one of the listed values
func Parse(rule string) (Rule, error) {
	rule = strings.TrimSpace(rule)
	if rule == "" {
		return Rule{}, fmt.Errorf("%w: empty", ErrInvalidRule)
	}

	for _, op := range []string{OpNotEq, OpEqual} {
		if left, right, ok := strings.Cut(rule, op); ok {
			return binary(rule, left, op, []string{unquote(right)})
		}
	}
	if left, right, ok := strings.Cut(rule, " in "); ok {
		var values []string
		for _, part := range strings.Split(right, ",") {
			if v := unquote(part); v != "" {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			return Rule{}, fmt.Errorf("%w: %q lists no values", ErrInvalidRule, rule)
		}
		return binary(rule, left, OpIn, values)
	}
	if name, ok := strings.CutPrefix(rule, "!"); ok {
		return binary(rule, name, OpFalsy, nil)
	}
	return binary(rule, rule, OpTruthy, nil)
}

func binary(rule, field, op string, values []string) (Rule, error) {
	field = strings.TrimSpace(field)
	if field == "" || strings.ContainsAny(field, " !=") {
		return Rule{}, fmt.Errorf("%w: %q", ErrInvalidRule, rule)
	}
	return Rule{Field: field, Op: op, Values: values}, nil
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// Visible evaluates the rule against lookup. A missing field counts as falsy
// and equal to nothing.
func (r Rule) Visible(lookup Lookup) bool {
	value, ok := lookup(r.Field)
	switch r.Op {
	case OpTruthy:
		return ok && truthy(value)
	case OpFalsy:
		return !ok || !truthy(value)
	case OpEqual:
		return ok && text(value) == r.Values[0]
	case OpNotEq:
		return !ok || text(value) != r.Values[0]
	case OpIn:
		if !ok {
			return false
		}
		current := text(value)
		for _, v := range r.Values {
			if v == current {
				return true
			}
		}
		return false
	}
	return true
}

// Eval parses rule and evaluates it. An empty rule is always visible.
func Eval(rule string, lookup Lookup) (bool, error) {
	if strings.TrimSpace(rule) == "" {
		return true, nil
	}
	parsed, err := Parse(rule)
	if err != nil {
		return false, err
	}
	return parsed.Visible(lookup), nil
}

// MapLookup reads values from a map.
func MapLookup(values map[string]any) Lookup {
	return func(name string) (any, bool) {
		v, ok := values[name]
		return v, ok
	}
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		s := strings.TrimSpace(v)
		return s != "" && s != "false" && s != "0"
	case int:
		return v != 0
	case float64:
		return v != 0
	default:
		return true
	}
}

func text(value any) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(value))
}
