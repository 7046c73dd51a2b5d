package validator

import (
	"fmt"

	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/schema"
)

// StepSchema returns the schema guarding a 1-based step of kind.
func StepSchema(kind domain.Kind, step int) (schema.Schema, error) {
	s, ok := steps[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
	}
	if step < 1 || step > len(s) {
		return nil, fmt.Errorf("step %d out of range for %s (1..%d)", step, kind, len(s))
	}
	return s[step-1], nil
}

// CompleteSchema returns the union of every step schema of kind.
func CompleteSchema(kind domain.Kind) (schema.Schema, error) {
	s, ok := steps[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
	}
	return schema.Merge(s...), nil
}

// StepFields lists the fields a step validates, in schema order. Nil for an unknown step.
func StepFields(kind domain.Kind, step int) []string {
	s, err := StepSchema(kind, step)
	if err != nil {
		return nil
	}
	return s.Keys()
}

// ValidateStep checks the fields of one step. An unknown kind or step yields no issues.
func ValidateStep(kind domain.Kind, step int, form domain.FormState) []schema.Issue {
	s, err := StepSchema(kind, step)
	if err != nil {
		return nil
	}
	return schema.Issues(schema.Validate(s, form.Values()))
}

// ValidateAll checks every field of kind.
func ValidateAll(kind domain.Kind, form domain.FormState) []schema.Issue {
	s, err := CompleteSchema(kind)
	if err != nil {
		return nil
	}
	return schema.Issues(schema.Validate(s, form.Values()))
}

// FieldErrors reduces issues to one message per field, keeping the first issue reported.
func FieldErrors(issues []schema.Issue) map[string]string {
	out := make(map[string]string, len(issues))
	for _, is := range issues {
		if _, ok := out[is.Field]; !ok {
			out[is.Field] = is.Message
		}
	}
	return out
}
