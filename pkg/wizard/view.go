package wizard

import (
	"maps"

	"github.com/aretw0/intake/pkg/domain"
)

// View is a read-only copy of the controller state for the render layer.
type View struct {
	Kind       domain.Kind
	Step       int
	TotalSteps int
	StepLabel  string
	Form       domain.FormState
	// FieldErrors maps a field key to the message shown under it.
	FieldErrors map[string]string
	// FirstError is the first errored field in form order, the one to focus. Empty if none.
	FirstError string
	Submitted  bool
	Reference  string
	Open       bool
}

// HasErrors reports whether any field carries an error.
func (v View) HasErrors() bool {
	return len(v.FieldErrors) > 0
}

// Progress returns the completed fraction shown by the progress bar.
func (v View) Progress() float64 {
	if v.TotalSteps == 0 {
		return 0
	}
	return float64(v.Step) / float64(v.TotalSteps)
}

func (c *Controller) viewLocked() View {
	v := View{
		Kind:        c.kind,
		Step:        c.step,
		TotalSteps:  c.kind.TotalSteps(),
		StepLabel:   c.kind.StepLabel(c.step),
		Form:        c.form.Clone(),
		FieldErrors: maps.Clone(c.errors),
		Submitted:   c.submitted,
		Reference:   c.reference,
		Open:        c.open,
	}
	for _, k := range c.order {
		if _, ok := c.errors[k]; ok {
			v.FirstError = k
			break
		}
	}
	return v
}
