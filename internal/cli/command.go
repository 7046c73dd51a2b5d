package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/intake/pkg/domain"
)

// Verbs understood by the wizard prompt.
const (
	VerbHelp    = "help"
	VerbShow    = "show"
	VerbSet     = "set"
	VerbToggle  = "toggle"
	VerbOptions = "options"
	VerbNext    = "next"
	VerbBack    = "back"
	VerbSubmit  = "submit"
	VerbReset   = "reset"
	VerbClose   = "close"
	VerbQuit    = "quit"
)

var aliases = map[string]string{
	"?":        VerbHelp,
	"h":        VerbHelp,
	"ls":       VerbShow,
	"s":        VerbShow,
	"t":        VerbToggle,
	"o":        VerbOptions,
	"opts":     VerbOptions,
	"n":        VerbNext,
	"continue": VerbNext,
	"b":        VerbBack,
	"prev":     VerbBack,
	"send":     VerbSubmit,
	"c":        VerbClose,
	"q":        VerbQuit,
	"exit":     VerbQuit,
}

// ErrUnknownCommand is returned for an unrecognised verb.
var ErrUnknownCommand = errors.New("unknown command")

// Command is one parsed prompt line.
type Command struct {
	Verb  string
	Field string
	// Value is the raw argument. For set fields, Set splits it on commas.
	Value string
}

// ParseCommand parses a prompt line. Besides the verbs, "field = value" is shorthand for set.
func ParseCommand(line string) (Command, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{Verb: VerbShow}, nil
	}

	if name, value, ok := strings.Cut(line, "="); ok && !strings.ContainsAny(strings.TrimSpace(name), " \t") {
		return Command{Verb: VerbSet, Field: strings.TrimSpace(name), Value: strings.TrimSpace(value)}, nil
	}

	verb, rest, _ := strings.Cut(line, " ")
	verb = strings.ToLower(verb)
	if a, ok := aliases[verb]; ok {
		verb = a
	}
	rest = strings.TrimSpace(rest)

	switch verb {
	case VerbHelp, VerbShow, VerbNext, VerbBack, VerbSubmit, VerbReset, VerbClose, VerbQuit:
		return Command{Verb: verb}, nil
	case VerbSet, VerbToggle:
		field, value, _ := strings.Cut(rest, " ")
		if field == "" {
			return Command{}, fmt.Errorf("usage: %s <field> <value>", verb)
		}
		value = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(value), "="))
		return Command{Verb: verb, Field: field, Value: value}, nil
	case VerbOptions:
		if rest == "" {
			return Command{}, fmt.Errorf("usage: options <field>")
		}
		return Command{Verb: verb, Field: rest}, nil
	}
	return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, verb)
}

// SetValue converts the raw argument into the value passed to UpdateField.
// Set fields take a comma separated list; an empty argument clears the field.
func (c Command) SetValue() any {
	if !domain.IsSetField(c.Field) {
		return c.Value
	}
	out := []string{}
	for _, part := range strings.Split(c.Value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

const helpText = `Commands:
  set <field> <value>     set a field (also: field = value); lists are comma separated
  toggle <field> <value>  add or remove one entry of products/topics
  options <field>         list the choices of a select field
  next                    validate this step and continue
  back                    previous step
  submit                  validate everything and send (last step)
  show                    redraw the current step
  reset                   start over
  close                   close the form; the draft is discarded
  quit                    leave; the draft is kept for next time
`
