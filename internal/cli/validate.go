package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/schema"
	"github.com/aretw0/intake/pkg/validator"
	"gopkg.in/yaml.v3"
)

// FormFile is the result of checking a form file.
type FormFile struct {
	Kind   domain.Kind
	Form   domain.FormState
	Issues []schema.Issue
	// Ignored lists keys of the file that are not form fields.
	Ignored []string
}

// Valid reports whether the form passed the whole-object check.
func (f FormFile) Valid() bool {
	return len(f.Issues) == 0
}

// ValidateFile reads a YAML (or JSON) document of field values and runs the whole-object
// check of kind over it. Missing fields keep their defaults.
func ValidateFile(kind domain.Kind, path string) (FormFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FormFile{}, fmt.Errorf("reading form file: %w", err)
	}
	return ValidateDocument(kind, data)
}

// ValidateDocument is ValidateFile over raw bytes.
func ValidateDocument(kind domain.Kind, data []byte) (FormFile, error) {
	if !kind.Valid() {
		return FormFile{}, fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
	}

	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return FormFile{}, fmt.Errorf("parsing form file: %w", err)
	}

	form := domain.DefaultForm()
	ignored, err := form.Merge(values)
	if err != nil {
		return FormFile{}, fmt.Errorf("form file: %w", err)
	}
	return FormFile{
		Kind:    kind,
		Form:    form,
		Issues:  validator.ValidateAll(kind, form),
		Ignored: ignored,
	}, nil
}

// PrintReport writes a human readable summary of f.
func PrintReport(w io.Writer, f FormFile) {
	for _, k := range f.Ignored {
		fmt.Fprintf(w, "warning: ignoring unknown field %q\n", k)
	}
	if f.Valid() {
		fmt.Fprintf(w, "✓ %s form is valid\n", f.Kind)
		return
	}
	errs := validator.FieldErrors(f.Issues)
	complete, _ := validator.CompleteSchema(f.Kind)
	fmt.Fprintf(w, "✗ %s form has %d invalid field(s):\n", f.Kind, len(errs))
	for _, k := range complete.Keys() {
		if msg, ok := errs[k]; ok {
			fmt.Fprintf(w, "  - %s: %s\n", k, msg)
		}
	}
}
