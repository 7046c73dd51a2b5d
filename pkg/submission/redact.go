package submission

import "regexp"

// Mask replaces redacted values.
const Mask = "***"

// DefaultSensitive matches the contact fields that must not reach logs in clear.
var DefaultSensitive = []string{`(?i)email`, `(?i)phone`}

// Redactor masks values whose key matches one of its patterns.
type Redactor struct {
	patterns []*regexp.Regexp
}

// NewRedactor compiles patterns. It panics on an invalid expression.
func NewRedactor(patterns ...string) *Redactor {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		compiled[i] = regexp.MustCompile(p)
	}
	return &Redactor{patterns: compiled}
}

// Redact returns a copy of m with sensitive values masked, recursing into nested maps.
// m itself is left untouched.
func (r *Redactor) Redact(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if r.sensitive(k) {
			out[k] = Mask
			continue
		}
		if sub, ok := v.(map[string]any); ok {
			out[k] = r.Redact(sub)
			continue
		}
		out[k] = v
	}
	return out
}

func (r *Redactor) sensitive(key string) bool {
	for _, p := range r.patterns {
		if p.MatchString(key) {
			return true
		}
	}
	return false
}
