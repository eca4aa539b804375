package form

import (
	"errors"
	"fmt"
)

var (
	// ErrFieldName is returned when a field is declared without a name.
	ErrFieldName = errors.New("form: field name is required")
	// ErrDuplicateField is returned when two fields share a name.
	ErrDuplicateField = errors.New("form: duplicate field")
	// ErrMissingValidator is returned when a field lacks a validator or accessors.
	ErrMissingValidator = errors.New("form: field has no validator")
	// ErrUnknownField is returned by the name-based operations when the name is
	// not declared in the schema.
	ErrUnknownField = errors.New("form: unknown field")
	// ErrValueType is returned by HandleChange when the value does not match
	// the field type.
	ErrValueType = errors.New("form: value type mismatch")
)

// Schema is the ordered, immutable set of fields of a form over T.
type Schema[T any] struct {
	fields []Field[T]
	index  map[string]int
	cloner func(T) T
}

// NewSchema validates the field declarations and returns the schema. Every
// field needs a unique non-empty name and exactly one validator.
func NewSchema[T any](fields ...Field[T]) (Schema[T], error) {
	index := make(map[string]int, len(fields))
	for i, field := range fields {
		if field == nil || field.Name() == "" {
			return Schema[T]{}, fmt.Errorf("%w (position %d)", ErrFieldName, i)
		}
		name := field.Name()
		if _, exists := index[name]; exists {
			return Schema[T]{}, fmt.Errorf("%w: %q", ErrDuplicateField, name)
		}
		if !field.complete() {
			return Schema[T]{}, fmt.Errorf("%w: %q", ErrMissingValidator, name)
		}
		index[name] = i
	}
	return Schema[T]{
		fields: append([]Field[T](nil), fields...),
		index:  index,
	}, nil
}

// MustSchema is NewSchema that panics on invalid declarations. Intended for
// package level schema variables.
func MustSchema[T any](fields ...Field[T]) Schema[T] {
	schema, err := NewSchema(fields...)
	if err != nil {
		panic(err)
	}
	return schema
}

// WithClone returns a copy of the schema that copies values with fn whenever a
// transition produces a new state. Records holding maps or slices need it to
// keep states independent; plain structs are copied by assignment.
func (s Schema[T]) WithClone(fn func(T) T) Schema[T] {
	s.cloner = fn
	return s
}

// Fields returns the fields in declaration order.
func (s Schema[T]) Fields() []Field[T] {
	return append([]Field[T](nil), s.fields...)
}

// Names returns the field names in declaration order.
func (s Schema[T]) Names() []string {
	names := make([]string, len(s.fields))
	for i, field := range s.fields {
		names[i] = field.Name()
	}
	return names
}

// Lookup finds a field by name.
func (s Schema[T]) Lookup(name string) (Field[T], bool) {
	idx, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.fields[idx], true
}

// Len reports the number of fields.
func (s Schema[T]) Len() int {
	return len(s.fields)
}

func (s Schema[T]) copyValues(values T) T {
	if s.cloner == nil {
		return values
	}
	return s.cloner(values)
}

func (s Schema[T]) mustContain(field Field[T]) {
	if field == nil {
		panic("form: nil field")
	}
	if _, ok := s.index[field.Name()]; !ok {
		panic(fmt.Sprintf("form: field %q is not part of the schema", field.Name()))
	}
}
