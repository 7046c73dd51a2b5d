package ports

import (
	"context"

	"github.com/aretw0/intake/pkg/submission"
)

// Submitter hands a completed wizard to whatever processes leads.
type Submitter interface {
	Submit(ctx context.Context, payload submission.Payload) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, payload submission.Payload) error

// Submit calls f.
func (f SubmitterFunc) Submit(ctx context.Context, payload submission.Payload) error {
	return f(ctx, payload)
}
