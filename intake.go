package intake

import (
	"log/slog"

	"github.com/aretw0/intake/internal/logging"
	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/persistence"
	"github.com/aretw0/intake/pkg/ports"
	"github.com/aretw0/intake/pkg/schema"
	"github.com/aretw0/intake/pkg/session"
	"github.com/aretw0/intake/pkg/validator"
	"github.com/aretw0/intake/pkg/wizard"
)

// Version is the release of the intake module. Overridden at build time with -ldflags.
var Version = "v0.1.0-dev"

// Intake hosts the wizards of one page over a shared snapshot store.
type Intake struct {
	manager *session.Manager
	logger  *slog.Logger
}

type options struct {
	logger      *slog.Logger
	hooks       domain.LifecycleHooks
	submitter   ports.Submitter
	wizardOpts  []wizard.Option
	persistOpts []persistence.Option
}

// Option configures Intake.
type Option func(*options)

// WithLogger sets a custom structured logger for every component.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks on every wizard.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(o *options) {
		o.hooks = hooks
	}
}

// WithSubmitter replaces the logging stub that receives submitted forms.
func WithSubmitter(s ports.Submitter) Option {
	return func(o *options) {
		o.submitter = s
	}
}

// WithWizardOptions appends controller options such as wizard.WithCloseDelay.
func WithWizardOptions(opts ...wizard.Option) Option {
	return func(o *options) {
		o.wizardOpts = append(o.wizardOpts, opts...)
	}
}

// WithPersistenceOptions appends draft adapter options such as persistence.WithDebounce.
func WithPersistenceOptions(opts ...persistence.Option) Option {
	return func(o *options) {
		o.persistOpts = append(o.persistOpts, opts...)
	}
}

// New creates an Intake over store.
func New(store ports.SnapshotStore, opts ...Option) *Intake {
	o := &options{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(o)
	}

	wopts := []wizard.Option{wizard.WithLogger(o.logger), wizard.WithLifecycleHooks(o.hooks)}
	if o.submitter != nil {
		wopts = append(wopts, wizard.WithSubmitter(o.submitter))
	}
	wopts = append(wopts, o.wizardOpts...)

	return &Intake{
		manager: session.NewManager(store, o.persistOpts,
			session.WithLogger(o.logger),
			session.WithControllerOptions(wopts...),
		),
		logger: o.logger,
	}
}

// Wizard returns the controller of kind. Pair every call with Release.
func (i *Intake) Wizard(kind domain.Kind) (*wizard.Controller, error) {
	return i.manager.Acquire(kind)
}

// Release gives back a controller obtained from Wizard.
func (i *Intake) Release(kind domain.Kind) {
	i.manager.Release(kind)
}

// Manager exposes the underlying session manager.
func (i *Intake) Manager() *session.Manager {
	return i.manager
}

// Close unmounts every wizard and stops pending writes.
func (i *Intake) Close() {
	i.manager.Close()
}

// Validate runs the whole-object check of kind over loosely typed values, as decoded from
// JSON or YAML. It returns the first message per field; a value of the wrong type is an error.
func Validate(kind domain.Kind, values map[string]any) (map[string]string, error) {
	if !kind.Valid() {
		return nil, domain.ErrUnknownKind
	}
	form := domain.DefaultForm()
	if _, err := form.Merge(values); err != nil {
		return nil, err
	}
	return validator.FieldErrors(validator.ValidateAll(kind, form)), nil
}

// Schema returns the whole-object schema of kind, e.g. to publish it as JSON.
func Schema(kind domain.Kind) (schema.Schema, error) {
	return validator.CompleteSchema(kind)
}
