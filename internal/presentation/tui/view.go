package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/validator"
	"github.com/aretw0/intake/pkg/wizard"
)

// StepMarkdown renders the current step of v: heading, progress, each field with its value and
// the error under it, if any.
func StepMarkdown(v wizard.View) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Step %d of %d: %s\n\n", v.Step, v.TotalSteps, v.StepLabel)
	fmt.Fprintf(&b, "`%s`\n\n", ProgressBar(v.Progress(), 20))

	for i, field := range validator.StepFields(v.Kind, v.Step) {
		marker := ""
		if field == v.FirstError {
			marker = " ←"
		}
		fmt.Fprintf(&b, "%d. **%s** (`%s`): %s%s\n", i+1, FieldLabel(v.Kind, field), field, DisplayValue(v.Form, field), marker)
		if msg, ok := v.FieldErrors[field]; ok {
			fmt.Fprintf(&b, "   > ⚠ %s\n", msg)
		}
	}
	return b.String()
}

// SuccessMarkdown renders the confirmation screen of a submitted wizard.
func SuccessMarkdown(kind domain.Kind, reference string) string {
	s := SuccessCopy(kind)
	var b strings.Builder
	fmt.Fprintf(&b, "# ✓ %s\n\n", s.Title)
	fmt.Fprintf(&b, "**REF: %s**\n\n", reference)
	fmt.Fprintf(&b, "%s\n\n", s.Body)
	fmt.Fprintf(&b, "### %s\n\n", s.NextTitle)
	for i, step := range s.Next {
		fmt.Fprintf(&b, "- `%02d` %s\n", i+1, step)
	}
	return b.String()
}

// OptionsMarkdown lists the choices of a select or set field, or "" for free text.
func OptionsMarkdown(field string) string {
	opts := domain.OptionsFor(field)
	if len(opts) == 0 {
		return ""
	}
	var b strings.Builder
	for _, o := range opts {
		fmt.Fprintf(&b, "- `%s` %s\n", o.Value, o.Label)
	}
	return b.String()
}

// DisplayValue formats the value of field for display. Select values show their option label.
func DisplayValue(form domain.FormState, field string) string {
	raw, ok := form.Get(field)
	if !ok {
		return ""
	}
	switch v := raw.(type) {
	case int:
		if field == domain.FieldVolume {
			return FormatVolume(v)
		}
		return strconv.Itoa(v)
	case []string:
		if len(v) == 0 {
			return "_none_"
		}
		return strings.Join(v, ", ")
	case string:
		if v == "" {
			return "_empty_"
		}
		for _, o := range domain.OptionsFor(field) {
			if o.Value == v {
				return o.Label
			}
		}
		return v
	}
	return fmt.Sprint(raw)
}

// FormatVolume renders a barrel count with thousands separators, e.g. "1,000,000 BBL".
func FormatVolume(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	var out []byte
	for i := range len(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	if neg {
		return "-" + string(out) + " BBL"
	}
	return string(out) + " BBL"
}

// ProgressBar draws a fixed-width bar for a fraction in [0, 1].
func ProgressBar(fraction float64, width int) string {
	fraction = min(max(fraction, 0), 1)
	filled := int(fraction*float64(width) + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
