package submission

import (
	"html"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/validator"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

// Payload is what a submitted wizard hands to the Submitter.
type Payload struct {
	ID          string         `json:"id"`
	Kind        domain.Kind    `json:"kind"`
	Reference   string         `json:"reference"`
	SubmittedAt time.Time      `json:"submittedAt"`
	Fields      map[string]any `json:"fields"`
}

// New builds the payload of a submitted form. Only the fields the kind collects are kept, and
// text values are stripped of markup and surrounding whitespace.
func New(kind domain.Kind, reference string, form domain.FormState, now time.Time) Payload {
	values := form.Values()
	keys := domain.FieldNames
	if complete, err := validator.CompleteSchema(kind); err == nil {
		keys = complete.Keys()
	}

	fields := make(map[string]any, len(keys))
	for _, k := range keys {
		fields[k] = clean(values[k])
	}

	return Payload{
		ID:          uuid.New().String(),
		Kind:        kind,
		Reference:   reference,
		SubmittedAt: now.UTC(),
		Fields:      fields,
	}
}

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

func sanitizer() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}

// maxSanitizePasses bounds the strip-and-decode loop of Sanitize.
const maxSanitizePasses = 4

// Sanitize strips every HTML element from s and trims it. Entities are decoded so "&" stays
// "&"; decoding repeats until stripping changes nothing, so escaped markup cannot come back
// as markup. Input that does not settle keeps the policy's escaped output.
func Sanitize(s string) string {
	out := strings.TrimSpace(s)
	for range maxSanitizePasses {
		next := strings.TrimSpace(html.UnescapeString(sanitizer().Sanitize(out)))
		if next == out {
			return out
		}
		out = next
	}
	return strings.TrimSpace(sanitizer().Sanitize(out))
}

func clean(v any) any {
	switch t := v.(type) {
	case string:
		return Sanitize(t)
	case []string:
		out := make([]string, len(t))
		for i, s := range t {
			out[i] = Sanitize(s)
		}
		return out
	}
	return v
}
