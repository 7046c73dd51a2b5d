package domain

import (
	"fmt"
	"strings"
)

// Kind selects one of the wizard flows.
type Kind string

const (
	// KindMandate is the 3-step buyer mandate submission.
	KindMandate Kind = "mandate"
	// KindSpeak is the 2-step consultation request.
	KindSpeak Kind = "speak"
)

// Kinds lists every supported wizard kind.
var Kinds = []Kind{KindMandate, KindSpeak}

// StorageKeyPrefix prefixes the persisted slot of each kind.
const StorageKeyPrefix = "modal-form-"

var stepLabels = map[Kind][]string{
	KindMandate: {"Company Information", "Product & Volume", "Transaction Details"},
	KindSpeak:   {"Your Details", "Scheduling"},
}

// ParseKind converts a user supplied name into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	_, ok := stepLabels[k]
	return ok
}

// TotalSteps returns the number of steps of the flow, or 0 for an unknown kind.
func (k Kind) TotalSteps() int {
	return len(stepLabels[k])
}

// StepLabel returns the heading of a 1-based step.
func (k Kind) StepLabel(step int) string {
	labels := stepLabels[k]
	if step < 1 || step > len(labels) {
		return ""
	}
	return labels[step-1]
}

// StorageKey is the persistence slot for the kind, e.g. "modal-form-mandate".
func (k Kind) StorageKey() string {
	return StorageKeyPrefix + string(k)
}

// ReferencePrefix is the prefix of the confirmation token handed out on submission.
func (k Kind) ReferencePrefix() string {
	if k == KindMandate {
		return "EST"
	}
	return "CON"
}

func (k Kind) String() string { return string(k) }
