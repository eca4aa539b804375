package form

// Values is the record type for forms whose fields are only known at runtime
// (declarative definitions, OpenAPI operations).
type Values map[string]any

// Key declares a field stored under name in a Values record.
func Key[V any](name string, validate Validator[V]) Binding[Values, V] {
	return Bind(name,
		func(values Values) V {
			typed, _ := values[name].(V)
			return typed
		},
		func(values *Values, value V) {
			if *values == nil {
				*values = make(Values)
			}
			(*values)[name] = value
		},
		validate,
	)
}

// NewValuesSchema is NewSchema for Values records. States produced by the
// schema never share maps with each other or with the initial values.
func NewValuesSchema(fields ...Field[Values]) (Schema[Values], error) {
	schema, err := NewSchema(fields...)
	if err != nil {
		return Schema[Values]{}, err
	}
	return schema.WithClone(Values.Clone), nil
}

// Clone deep copies nested maps and slices.
func (v Values) Clone() Values {
	if v == nil {
		return make(Values)
	}
	out := make(Values, len(v))
	for key, value := range v {
		out[key] = deepCopy(value)
	}
	return out
}

func deepCopy(value any) any {
	switch typed := value.(type) {
	case Values:
		return typed.Clone()
	case map[string]any:
		clone := make(map[string]any, len(typed))
		for k, v := range typed {
			clone[k] = deepCopy(v)
		}
		return clone
	case []any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = deepCopy(v)
		}
		return clone
	case []string:
		return append([]string(nil), typed...)
	default:
		return typed
	}
}
