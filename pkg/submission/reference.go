package submission

import (
	"fmt"
	"math/rand/v2"
	"regexp"

	"github.com/aretw0/intake/pkg/domain"
)

// Reference numbers are six digits.
const (
	MinReference = 100000
	MaxReference = 999999
)

var referencePattern = regexp.MustCompile(`^(EST|CON)-\d{6}$`)

// ReferenceFunc issues a confirmation token for a kind.
type ReferenceFunc func(kind domain.Kind) string

// NewReference returns "<prefix>-<n>" with n uniform in [MinReference, MaxReference], e.g.
// "EST-482913" for a mandate and "CON-104222" for a consultation.
func NewReference(kind domain.Kind) string {
	return FormatReference(kind, MinReference+rand.IntN(MaxReference-MinReference+1))
}

// FormatReference renders a reference token from its number.
func FormatReference(kind domain.Kind, n int) string {
	return fmt.Sprintf("%s-%d", kind.ReferencePrefix(), n)
}

// ValidReference reports whether s is a well-formed reference token.
func ValidReference(s string) bool {
	return referencePattern.MatchString(s)
}
