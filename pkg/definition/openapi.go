package definition

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

var (
	// ErrOperationNotFound is returned when the document has no operation with
	// the requested id.
	ErrOperationNotFound = errors.New("definition: operation not found")
	// ErrNoRequestBody is returned when the operation has no object request
	// body to build a form from.
	ErrNoRequestBody = errors.New("definition: operation has no object request body")
)

var requestMediaTypes = []string{
	"application/json",
	"application/x-www-form-urlencoded",
	"multipart/form-data",
}

// FromOpenAPI builds a definition from the request body of operationID in an
// OpenAPI 3 document. Properties become fields sorted by name, with required,
// length, pattern, format, bound and enum constraints turned into rules.
func FromOpenAPI(ctx context.Context, raw []byte, operationID string) (Definition, error) {
	if err := ctx.Err(); err != nil {
		return Definition{}, err
	}
	if len(raw) == 0 {
		return Definition{}, ErrEmptyDocument
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return Definition{}, fmt.Errorf("definition: load openapi document: %w", err)
	}

	op := findOperation(doc, operationID)
	if op == nil {
		return Definition{}, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}

	body := requestSchema(op)
	if body == nil || len(body.Properties) == 0 {
		return Definition{}, fmt.Errorf("%w: %q", ErrNoRequestBody, operationID)
	}

	required := make(map[string]bool, len(body.Required))
	for _, name := range body.Required {
		required[name] = true
	}

	names := make([]string, 0, len(body.Properties))
	for name := range body.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	def := Definition{
		ID:    operationID,
		Title: strings.TrimSpace(op.Summary),
	}
	for _, name := range names {
		ref := body.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		def.Fields = append(def.Fields, fieldFromSchema(name, ref.Value, required[name]))
	}

	def = def.normalise()
	if _, err := def.Schema(); err != nil {
		return Definition{}, err
	}
	return def, nil
}

func findOperation(doc *openapi3.T, operationID string) *openapi3.Operation {
	if doc == nil || doc.Paths == nil {
		return nil
	}
	for _, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range item.Operations() {
			if op != nil && op.OperationID == operationID {
				return op
			}
		}
	}
	return nil
}

func requestSchema(op *openapi3.Operation) *openapi3.Schema {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	content := op.RequestBody.Value.Content
	for _, mediaType := range requestMediaTypes {
		if mt, ok := content[mediaType]; ok && mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func fieldFromSchema(name string, schema *openapi3.Schema, required bool) Field {
	field := Field{
		Name:     name,
		Label:    strings.TrimSpace(schema.Title),
		Help:     strings.TrimSpace(schema.Description),
		Required: required,
		Default:  schema.Default,
	}

	kind := schemaType(schema)
	switch {
	case kind == "boolean":
		field.Type = FieldCheckbox
		if required {
			field.Required = false
			field.Rules = append(field.Rules, Rule{Kind: "accepted"})
		}
		return field
	case len(schema.Enum) > 0:
		field.Type = FieldSelect
		for _, value := range schema.Enum {
			text := fmt.Sprint(value)
			field.Options = append(field.Options, Option{Label: text, Value: text})
		}
	case kind == "integer" || kind == "number":
		field.Type = FieldNumber
		if schema.Min != nil {
			min := *schema.Min
			field.Rules = append(field.Rules, Rule{Kind: "min", Min: &min, Exclusive: schema.ExclusiveMin})
		}
		if schema.Max != nil {
			max := *schema.Max
			field.Rules = append(field.Rules, Rule{Kind: "max", Max: &max, Exclusive: schema.ExclusiveMax})
		}
	default:
		field.Type = typeFromFormat(schema.Format)
		switch schema.Format {
		case "uri", "url":
			field.Rules = append(field.Rules, Rule{Kind: "url"})
		}
	}

	if schema.MinLength > 0 {
		field.Rules = append(field.Rules, Rule{Kind: "minLength", Value: fmt.Sprint(schema.MinLength)})
	}
	if schema.MaxLength != nil {
		field.Rules = append(field.Rules, Rule{Kind: "maxLength", Value: fmt.Sprint(*schema.MaxLength)})
	}
	if schema.Pattern != "" {
		field.Rules = append(field.Rules, Rule{Kind: "pattern", Value: schema.Pattern})
	}
	return field
}

func schemaType(schema *openapi3.Schema) string {
	if schema.Type == nil {
		return ""
	}
	for _, kind := range schema.Type.Slice() {
		if kind != "null" {
			return kind
		}
	}
	return ""
}

func typeFromFormat(format string) FieldType {
	switch format {
	case "email":
		return FieldEmail
	case "password":
		return FieldPassword
	case "date":
		return FieldDate
	case "phone", "tel":
		return FieldTel
	default:
		return FieldText
	}
}
