package submission

import (
	"context"
	"log/slog"
)

// LogSubmitter records submissions in the log instead of sending them anywhere.
type LogSubmitter struct {
	logger   *slog.Logger
	redactor *Redactor
}

// LogOption configures a LogSubmitter.
type LogOption func(*LogSubmitter)

// WithRedactor replaces the default email/phone masking.
func WithRedactor(r *Redactor) LogOption {
	return func(s *LogSubmitter) {
		s.redactor = r
	}
}

// NewLogSubmitter creates the logging stub. A nil logger falls back to slog.Default().
func NewLogSubmitter(logger *slog.Logger, opts ...LogOption) *LogSubmitter {
	if logger == nil {
		logger = slog.Default()
	}
	s := &LogSubmitter{
		logger:   logger,
		redactor: NewRedactor(DefaultSensitive...),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit logs the payload with sensitive fields masked. It never fails.
func (s *LogSubmitter) Submit(ctx context.Context, p Payload) error {
	s.logger.InfoContext(ctx, "Form submitted",
		"id", p.ID,
		"kind", p.Kind,
		"reference", p.Reference,
		"submitted_at", p.SubmittedAt,
		"fields", s.redactor.Redact(p.Fields),
	)
	return nil
}
