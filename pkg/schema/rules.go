package schema

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Rule is one constraint in a field pipeline. Rules run after the type check, so Check may
// assume the value has the field's type.
type Rule struct {
	name    string
	message string
	check   func(value any) bool
}

// Name describes the rule, e.g. "min_length(2)".
func (r Rule) Name() string { return r.name }

// Message is the issue reported when the rule fails.
func (r Rule) Message() string { return r.message }

// Check reports whether value satisfies the rule.
func (r Rule) Check(value any) bool { return r.check(value) }

// NewRule builds a custom rule.
func NewRule(name, message string, check func(value any) bool) Rule {
	return Rule{name: name, message: message, check: check}
}

// fieldCheck runs single-value tags of go-playground/validator. It caches parsed tags and is
// safe for concurrent use.
var fieldCheck = validator.New()

// MinLength requires a string of at least n characters.
func MinLength(n int, message string) Rule {
	return NewRule(fmt.Sprintf("min_length(%d)", n), message, func(v any) bool {
		s, _ := v.(string)
		return utf8.RuneCountInString(s) >= n
	})
}

// MaxLength requires a string of at most n characters.
func MaxLength(n int, message string) Rule {
	return NewRule(fmt.Sprintf("max_length(%d)", n), message, func(v any) bool {
		s, _ := v.(string)
		return utf8.RuneCountInString(s) <= n
	})
}

// NonEmpty rejects the empty string.
func NonEmpty(message string) Rule {
	return NewRule("non_empty", message, func(v any) bool {
		s, _ := v.(string)
		return s != ""
	})
}

// Email requires a syntactically valid email address.
func Email(message string) Rule {
	return NewRule("email", message, func(v any) bool {
		s, _ := v.(string)
		return fieldCheck.Var(s, "required,email") == nil
	})
}

// MinValue requires an integer of at least n.
func MinValue(n int64, message string) Rule {
	return NewRule(fmt.Sprintf("min_value(%d)", n), message, func(v any) bool {
		return toInt64(v) >= n
	})
}

// MaxValue requires an integer of at most n.
func MaxValue(n int64, message string) Rule {
	return NewRule(fmt.Sprintf("max_value(%d)", n), message, func(v any) bool {
		return toInt64(v) <= n
	})
}

// MinItems requires a list of at least n elements.
func MinItems(n int, message string) Rule {
	return NewRule(fmt.Sprintf("min_items(%d)", n), message, func(v any) bool {
		return len(toStrings(v)) >= n
	})
}

// MaxItems requires a list of at most n elements.
func MaxItems(n int, message string) Rule {
	return NewRule(fmt.Sprintf("max_items(%d)", n), message, func(v any) bool {
		return len(toStrings(v)) <= n
	})
}

// OneOf requires a string from allowed. The empty string passes so that a blank select is
// reported by NonEmpty alone.
func OneOf(allowed []string, message string) Rule {
	return NewRule("one_of("+strings.Join(allowed, "|")+")", message, func(v any) bool {
		s, _ := v.(string)
		return s == "" || slices.Contains(allowed, s)
	})
}

// EachOneOf requires every element of a list to come from allowed.
func EachOneOf(allowed []string, message string) Rule {
	return NewRule("each_one_of("+strings.Join(allowed, "|")+")", message, func(v any) bool {
		for _, s := range toStrings(v) {
			if !slices.Contains(allowed, s) {
				return false
			}
		}
		return true
	})
}
