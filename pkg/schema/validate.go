package schema

import (
	"encoding/json"
	"strings"
)

// Field is one entry of a Schema.
type Field struct {
	Key string
	// Type is checked first; a mismatch stops the pipeline. A nil Type accepts anything.
	Type Type
	// Trim strips surrounding whitespace from string values before the rules run.
	Trim  bool
	Rules []Rule
}

// Text declares a trimmed string field.
func Text(key string, rules ...Rule) Field {
	return Field{Key: key, Type: String(), Trim: true, Rules: rules}
}

// Choice declares an untrimmed string field, typically backed by a select.
func Choice(key string, rules ...Rule) Field {
	return Field{Key: key, Type: String(), Rules: rules}
}

// Number declares an integer field.
func Number(key string, rules ...Rule) Field {
	return Field{Key: key, Type: Int(), Rules: rules}
}

// Set declares a list-of-labels field.
func Set(key string, rules ...Rule) Field {
	return Field{Key: key, Type: StringSet(), Rules: rules}
}

// Schema is an ordered list of fields. Order drives the order of reported issues.
type Schema []Field

// Keys returns the field keys in order.
func (s Schema) Keys() []string {
	keys := make([]string, len(s))
	for i, f := range s {
		keys[i] = f.Key
	}
	return keys
}

// Field returns the field with the given key.
func (s Schema) Field(key string) (Field, bool) {
	for _, f := range s {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// Merge concatenates schemas. A key declared again replaces the earlier field in place.
func Merge(schemas ...Schema) Schema {
	var out Schema
	index := map[string]int{}
	for _, s := range schemas {
		for _, f := range s {
			if i, ok := index[f.Key]; ok {
				out[i] = f
				continue
			}
			index[f.Key] = len(out)
			out = append(out, f)
		}
	}
	return out
}

type fieldDescription struct {
	Key   string   `json:"key"`
	Type  string   `json:"type"`
	Trim  bool     `json:"trim,omitempty"`
	Rules []string `json:"rules"`
}

// MarshalJSON describes the schema as an ordered list of fields with their rule names.
func (s Schema) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	out := make([]fieldDescription, len(s))
	for i, f := range s {
		d := fieldDescription{Key: f.Key, Type: "any", Trim: f.Trim, Rules: make([]string, len(f.Rules))}
		if f.Type != nil {
			d.Type = f.Type.Name()
		}
		for j, r := range f.Rules {
			d.Rules[j] = r.Name()
		}
		out[i] = d
	}
	return json.Marshal(out)
}

// Validate checks data against the schema.
// Returns an *AggregateError with one *ValidationError per failed check, in schema order.
func Validate(schema Schema, data map[string]any) error {
	if len(schema) == 0 {
		// No schema = no validation
		return nil
	}

	var errs []error
	for _, field := range schema {
		errs = append(errs, validateField(field, data)...)
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

// ValidateFields validates only the named fields of data against the schema.
// Fields not declared in the schema are reported.
func ValidateFields(schema Schema, data map[string]any, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}

	var errs []error
	for _, name := range fields {
		field, ok := schema.Field(name)
		if !ok {
			errs = append(errs, &ValidationError{Key: name, Reason: "not defined in schema"})
			continue
		}
		errs = append(errs, validateField(field, data)...)
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

func validateField(field Field, data map[string]any) []error {
	value, exists := data[field.Key]
	if !exists {
		return []error{&ValidationError{Key: field.Key, Reason: "required"}}
	}

	if field.Type != nil {
		if err := field.Type.Validate(value); err != nil {
			return []error{&ValidationError{Key: field.Key, Reason: err.Error(), Value: value}}
		}
	}

	if s, ok := value.(string); ok && field.Trim {
		value = strings.TrimSpace(s)
	}

	var errs []error
	for _, rule := range field.Rules {
		if !rule.Check(value) {
			errs = append(errs, &ValidationError{Key: field.Key, Reason: rule.Message(), Value: value})
		}
	}
	return errs
}
