// Package definition describes forms declaratively so they can be shipped as
// YAML/JSON files or derived from an OpenAPI operation, then turned into a
// form.Schema over form.Values at runtime.
package definition

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// FieldType mirrors the input kinds a form screen can show.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldPassword FieldType = "password"
	FieldEmail    FieldType = "email"
	FieldNumber   FieldType = "number"
	FieldTel      FieldType = "tel"
	FieldDate     FieldType = "date"
	FieldSelect   FieldType = "select"
	FieldCheckbox FieldType = "checkbox"
	FieldTextArea FieldType = "textarea"
)

var (
	// ErrEmptyDocument is returned when Parse receives no content.
	ErrEmptyDocument = errors.New("definition: document is empty")
	// ErrInvalidDocument is returned when content is neither JSON nor YAML.
	ErrInvalidDocument = errors.New("definition: invalid JSON or YAML")
	// ErrNoFields is returned when a definition declares no fields.
	ErrNoFields = errors.New("definition: no fields declared")
	// ErrUnknownFieldType is returned for field types outside FieldType.
	ErrUnknownFieldType = errors.New("definition: unknown field type")
	// ErrUnknownRule is returned for rule kinds the compiler does not know.
	ErrUnknownRule = errors.New("definition: unknown rule")
	// ErrInvalidRule is returned when a rule is missing its parameters.
	ErrInvalidRule = errors.New("definition: invalid rule")
)

// Definition is a declarative form.
type Definition struct {
	ID     string  `json:"id" yaml:"id"`
	Title  string  `json:"title,omitempty" yaml:"title,omitempty"`
	Submit string  `json:"submit,omitempty" yaml:"submit,omitempty"`
	Fields []Field `json:"fields" yaml:"fields"`
}

// Field declares one input of a Definition.
type Field struct {
	Name            string    `json:"name" yaml:"name"`
	Label           string    `json:"label,omitempty" yaml:"label,omitempty"`
	Type            FieldType `json:"type,omitempty" yaml:"type,omitempty"`
	Placeholder     string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Help            string    `json:"help,omitempty" yaml:"help,omitempty"`
	Required        bool      `json:"required,omitempty" yaml:"required,omitempty"`
	RequiredMessage string    `json:"requiredMessage,omitempty" yaml:"requiredMessage,omitempty"`
	Options         []Option  `json:"options,omitempty" yaml:"options,omitempty"`
	Default         any       `json:"default,omitempty" yaml:"default,omitempty"`
	Rules           []Rule    `json:"rules,omitempty" yaml:"rules,omitempty"`
	// VisibleWhen hides the field, and skips its validation, while the
	// condition on another field does not hold.
	VisibleWhen string `json:"visibleWhen,omitempty" yaml:"visibleWhen,omitempty"`
}

// Option is one choice of a select field.
type Option struct {
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
	Value string `json:"value" yaml:"value"`
}

// Rule attaches a validation rule to a field. Value carries the rule argument
// (length, pattern, other field name); Min/Max bound numeric rules and
// Exclusive makes the bound of a min or max rule strict.
type Rule struct {
	Kind      string   `json:"kind" yaml:"kind"`
	Value     string   `json:"value,omitempty" yaml:"value,omitempty"`
	Min       *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max       *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Exclusive bool     `json:"exclusive,omitempty" yaml:"exclusive,omitempty"`
	Message   string   `json:"message,omitempty" yaml:"message,omitempty"`
}

// Parse reads a JSON or YAML definition, fills in default labels and types
// and checks that it compiles into a schema.
func Parse(data []byte) (Definition, error) {
	if strings.TrimSpace(string(data)) == "" {
		return Definition{}, ErrEmptyDocument
	}

	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		def = Definition{}
		if err := yaml.Unmarshal(data, &def); err != nil {
			return Definition{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
	}

	def = def.normalise()
	if len(def.Fields) == 0 {
		return Definition{}, ErrNoFields
	}
	if _, err := def.Schema(); err != nil {
		return Definition{}, err
	}
	return def, nil
}

// Lookup returns the field declared under name.
func (d Definition) Lookup(name string) (Field, bool) {
	for _, field := range d.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// OptionValues returns the option values of a select field.
func (f Field) OptionValues() []string {
	values := make([]string, 0, len(f.Options))
	for _, option := range f.Options {
		values = append(values, option.Value)
	}
	return values
}

func (d Definition) normalise() Definition {
	out := d
	out.ID = strings.TrimSpace(d.ID)
	out.Title = strings.TrimSpace(d.Title)
	if out.Title == "" {
		out.Title = Label(out.ID)
	}
	out.Fields = make([]Field, len(d.Fields))
	for i, field := range d.Fields {
		field.Name = strings.TrimSpace(field.Name)
		if field.Label == "" {
			field.Label = Label(field.Name)
		}
		if field.Type == "" {
			field.Type = FieldText
		}
		field.Options = append([]Option(nil), field.Options...)
		for j := range field.Options {
			if field.Options[j].Label == "" {
				field.Options[j].Label = field.Options[j].Value
			}
		}
		field.Rules = append([]Rule(nil), field.Rules...)
		out.Fields[i] = field
	}
	return out
}
