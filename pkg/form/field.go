package form

// Validator maps a field value to an error message. The empty string means the
// value is valid.
type Validator[V any] func(V) string

// Optional is the validator for fields that accept any value.
func Optional[V any](V) string {
	return ""
}

// Field is a named slot of the record T together with its validator. Fields are
// created with Bind, BindCross or Key.
type Field[T any] interface {
	// Name returns the field identifier used as key in State.Errors and
	// State.Touched.
	Name() string
	// Validate runs the field validator against the field value held in values.
	Validate(values T) string

	assign(values *T, value any) bool
	valueOf(values T) any
	complete() bool
}

// Binding is a Field with a statically known value type V.
type Binding[T, V any] struct {
	name  string
	get   func(T) V
	set   func(*T, V)
	check func(T, V) string
}

var _ Field[struct{}] = Binding[struct{}, string]{}

// Bind declares a field of T accessed through get/set and checked by validate.
func Bind[T, V any](name string, get func(T) V, set func(*T, V), validate Validator[V]) Binding[T, V] {
	binding := Binding[T, V]{name: name, get: get, set: set}
	if validate != nil {
		binding.check = func(_ T, value V) string {
			return validate(value)
		}
	}
	return binding
}

// BindCross declares a field whose validator also sees the rest of the record,
// e.g. a confirmation field that must match another one.
func BindCross[T, V any](name string, get func(T) V, set func(*T, V), validate func(T, V) string) Binding[T, V] {
	return Binding[T, V]{name: name, get: get, set: set, check: validate}
}

// Name implements Field.
func (b Binding[T, V]) Name() string {
	return b.name
}

// Get reads the field value out of values.
func (b Binding[T, V]) Get(values T) V {
	return b.get(values)
}

// Validate implements Field.
func (b Binding[T, V]) Validate(values T) string {
	return b.check(values, b.get(values))
}

func (b Binding[T, V]) assign(values *T, value any) bool {
	typed, ok := value.(V)
	if !ok {
		return false
	}
	b.set(values, typed)
	return true
}

func (b Binding[T, V]) valueOf(values T) any {
	return b.get(values)
}

func (b Binding[T, V]) complete() bool {
	return b.check != nil && b.get != nil && b.set != nil
}
