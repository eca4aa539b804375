package form

import "fmt"

// State is the full editing state of a form. Errors and Touched are keyed by
// field name and only ever hold names declared in the schema. A field missing
// from Errors has not been validated yet; an empty message means it passed.
type State[T any] struct {
	Values  T
	Errors  map[string]string
	Touched map[string]bool
}

// Init returns the starting state for initial: no errors, nothing touched.
func (s Schema[T]) Init(initial T) State[T] {
	return State[T]{
		Values:  s.copyValues(initial),
		Errors:  make(map[string]string),
		Touched: make(map[string]bool),
	}
}

// Reset is Init under the name callers use for cancel and post-submit flows.
func (s Schema[T]) Reset(initial T) State[T] {
	return s.Init(initial)
}

// ChangeState stores value in field. The field is re-validated only when it
// has already been touched; otherwise its error entry is left as it was.
func ChangeState[T, V any](s Schema[T], st State[T], field Binding[T, V], value V) State[T] {
	s.mustContain(field)
	next := s.copyState(st)
	field.set(&next.Values, value)
	if next.Touched[field.name] {
		next.Errors[field.name] = field.Validate(next.Values)
	}
	return next
}

// ChangeAny is ChangeState for callers that only know the field by name.
func (s Schema[T]) ChangeAny(st State[T], name string, value any) (State[T], error) {
	field, ok := s.Lookup(name)
	if !ok {
		return st, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	next := s.copyState(st)
	if !field.assign(&next.Values, value) {
		return st, fmt.Errorf("%w: %q does not accept %T", ErrValueType, name, value)
	}
	if next.Touched[name] {
		next.Errors[name] = field.Validate(next.Values)
	}
	return next, nil
}

// Blur marks field as touched and validates its current value.
func (s Schema[T]) Blur(st State[T], field Field[T]) State[T] {
	s.mustContain(field)
	next := s.copyState(st)
	next.Touched[field.Name()] = true
	next.Errors[field.Name()] = field.Validate(next.Values)
	return next
}

// Validate runs the validators of fields, or of every schema field when none
// are given, and reports whether all of them passed. Errors of fields outside
// the targeted set are kept as they were, so a partial run never clears a
// failure recorded earlier.
func (s Schema[T]) Validate(st State[T], fields ...Field[T]) (State[T], bool) {
	if len(fields) == 0 {
		fields = s.fields
	}
	next := s.copyState(st)
	valid := true
	for _, field := range fields {
		s.mustContain(field)
		msg := field.Validate(next.Values)
		next.Errors[field.Name()] = msg
		if msg != "" {
			valid = false
		}
	}
	return next, valid
}

// Submit validates the whole schema and marks every field as touched,
// whatever the outcome. The boolean reports whether submission may proceed.
func (s Schema[T]) Submit(st State[T]) (State[T], bool) {
	next, valid := s.Validate(st)
	for _, field := range s.fields {
		next.Touched[field.Name()] = true
	}
	return next, valid
}

// Invalid returns the names of fields currently holding an error, in schema
// order.
func (s Schema[T]) Invalid(st State[T]) []string {
	var names []string
	for _, field := range s.fields {
		if st.Errors[field.Name()] != "" {
			names = append(names, field.Name())
		}
	}
	return names
}

func (s Schema[T]) copyState(st State[T]) State[T] {
	next := State[T]{
		Values:  s.copyValues(st.Values),
		Errors:  make(map[string]string, len(st.Errors)),
		Touched: make(map[string]bool, len(st.Touched)),
	}
	for k, v := range st.Errors {
		next.Errors[k] = v
	}
	for k, v := range st.Touched {
		next.Touched[k] = v
	}
	return next
}
