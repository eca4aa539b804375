package rules

import "github.com/goliatone/go-formstate/pkg/form"

// ValidateAll runs every validator against the matching entry of values and
// returns only the failing fields. Missing entries are validated as the zero
// value.
func ValidateAll[V any](values map[string]V, validators map[string]form.Validator[V]) map[string]string {
	errs := make(map[string]string)
	for name, validate := range validators {
		if validate == nil {
			continue
		}
		if msg := validate(values[name]); msg != "" {
			errs[name] = msg
		}
	}
	return errs
}
