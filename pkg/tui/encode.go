package tui

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Encode serializes submitted values in format. Structs are flattened through
// their JSON representation for the form and pretty formats.
func Encode(values any, format OutputFormat) ([]byte, error) {
	switch format {
	case OutputFormatYAML:
		return yaml.Marshal(values)
	case OutputFormatFormURLEncoded, OutputFormatPrettyText:
		generic, err := toMap(values)
		if err != nil {
			return nil, err
		}
		if format == OutputFormatFormURLEncoded {
			return []byte(flattenForm(generic)), nil
		}
		return []byte(prettyPrint(generic)), nil
	case OutputFormatJSON, "":
		return json.MarshalIndent(values, "", "  ")
	default:
		return nil, fmt.Errorf("tui: unsupported output format %q", format)
	}
}

func toMap(values any) (map[string]any, error) {
	if m, ok := values.(map[string]any); ok {
		return m, nil
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("tui: values must encode as an object: %w", err)
	}
	return out, nil
}

func flattenForm(values map[string]any) string {
	flattened := url.Values{}
	flatten("", values, flattened)
	return flattened.Encode()
}

func flatten(prefix string, value any, out url.Values) {
	switch v := value.(type) {
	case map[string]any:
		for key, val := range v {
			next := key
			if prefix != "" {
				next = prefix + "." + key
			}
			flatten(next, val, out)
		}
	case []any:
		for _, val := range v {
			out.Add(prefix+"[]", fmt.Sprint(val))
		}
	default:
		out.Set(prefix, fmt.Sprint(v))
	}
}

func prettyPrint(values map[string]any) string {
	var b strings.Builder
	writePretty(&b, "", values)
	return b.String()
}

func writePretty(b *strings.Builder, prefix string, value any) {
	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			next := key
			if prefix != "" {
				next = prefix + "." + key
			}
			writePretty(b, next, v[key])
		}
	case []any:
		for idx, val := range v {
			writePretty(b, fmt.Sprintf("%s[%d]", prefix, idx), val)
		}
	default:
		if prefix != "" {
			fmt.Fprintf(b, "%s=%v\n", prefix, v)
		}
	}
}
