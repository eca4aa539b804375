package tui

import "github.com/goliatone/go-formstate/pkg/definition"

// PromptKind selects the terminal widget used for a field.
type PromptKind string

const (
	PromptInput    PromptKind = "input"
	PromptPassword PromptKind = "password"
	PromptConfirm  PromptKind = "confirm"
	PromptSelect   PromptKind = "select"
	PromptTextArea PromptKind = "textarea"
)

// Prompt binds a form field to the widget that collects it. Confirm prompts
// produce bool values, every other kind produces strings. A prompt with a
// VisibleWhen rule is skipped while the rule does not hold.
type Prompt struct {
	Field       string
	Label       string
	Help        string
	Kind        PromptKind
	Options     []string
	VisibleWhen string
}

// PromptsFor derives prompts from a declarative definition, in field order.
func PromptsFor(def definition.Definition) []Prompt {
	prompts := make([]Prompt, 0, len(def.Fields))
	for _, field := range def.Fields {
		help := field.Help
		if help == "" {
			help = field.Placeholder
		}
		prompt := Prompt{
			Field:       field.Name,
			Label:       field.Label,
			Help:        help,
			Kind:        PromptInput,
			VisibleWhen: field.VisibleWhen,
		}
		switch field.Type {
		case definition.FieldPassword:
			prompt.Kind = PromptPassword
		case definition.FieldCheckbox:
			prompt.Kind = PromptConfirm
		case definition.FieldTextArea:
			prompt.Kind = PromptTextArea
		case definition.FieldSelect:
			prompt.Kind = PromptSelect
			prompt.Options = field.OptionValues()
		}
		prompts = append(prompts, prompt)
	}
	return prompts
}

func (p Prompt) label() string {
	if p.Label != "" {
		return p.Label
	}
	return definition.Label(p.Field)
}
