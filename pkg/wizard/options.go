package wizard

import (
	"log/slog"
	"time"

	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/ports"
	"github.com/aretw0/intake/pkg/submission"
)

// DefaultCloseDelay is how long a closed modal keeps its state before resetting.
const DefaultCloseDelay = 300 * time.Millisecond

// Option configures the Controller.
type Option func(*Controller)

// WithLogger configures a logger for the Controller.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithSubmitter replaces the logging stub that receives submissions.
func WithSubmitter(s ports.Submitter) Option {
	return func(c *Controller) {
		c.submitter = s
	}
}

// WithLifecycleHooks registers observability callbacks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Controller) {
		c.hooks = hooks
	}
}

// WithCloseDelay sets the delay between Close and the reset. Zero resets at once.
func WithCloseDelay(d time.Duration) Option {
	return func(c *Controller) {
		c.closeDelay = d
	}
}

// WithReferenceFunc replaces the random reference generator.
func WithReferenceFunc(fn submission.ReferenceFunc) Option {
	return func(c *Controller) {
		c.newReference = fn
	}
}

// WithClock replaces the clock used for event and submission timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}
