package wizard

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/intake/internal/logging"
	"github.com/aretw0/intake/pkg/adapters/memory"
	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/persistence"
	"github.com/aretw0/intake/pkg/ports"
	"github.com/aretw0/intake/pkg/schema"
	"github.com/aretw0/intake/pkg/submission"
	"github.com/aretw0/intake/pkg/validator"
)

// Controller is the state machine of one wizard kind.
// Safe for concurrent use: persistence and close timers fire on their own goroutines.
//
// Hooks and observers run after the internal lock is released and may call back into the
// Controller. The Submitter runs while the lock is held and must not.
type Controller struct {
	kind         domain.Kind
	key          string
	order        []string
	persist      *persistence.Adapter
	submitter    ports.Submitter
	hooks        domain.LifecycleHooks
	logger       *slog.Logger
	closeDelay   time.Duration
	newReference submission.ReferenceFunc
	now          func() time.Time

	mu         sync.Mutex
	step       int
	form       domain.FormState
	errors     map[string]string
	submitted  bool
	reference  string
	open       bool
	unmounted  bool
	closeTimer *time.Timer
	closeGen   uint64
	closeDone  chan struct{}
	observers  []observer
	nextID     uint64
}

type observer struct {
	id uint64
	fn func(View)
}

// NewController creates the controller of kind. A nil adapter keeps drafts in memory only.
func NewController(kind domain.Kind, persist *persistence.Adapter, opts ...Option) (*Controller, error) {
	complete, err := validator.CompleteSchema(kind)
	if err != nil {
		return nil, err
	}

	c := &Controller{
		kind:         kind,
		key:          kind.StorageKey(),
		order:        complete.Keys(),
		persist:      persist,
		logger:       logging.NewNop(),
		closeDelay:   DefaultCloseDelay,
		newReference: submission.NewReference,
		now:          time.Now,
		step:         1,
		form:         domain.DefaultForm(),
		errors:       map[string]string{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.persist == nil {
		c.persist = persistence.NewAdapter(memory.NewStore(), persistence.WithLogger(c.logger))
	}
	if c.submitter == nil {
		c.submitter = submission.NewLogSubmitter(c.logger)
	}
	return c, nil
}

// Kind returns the wizard kind.
func (c *Controller) Kind() domain.Kind { return c.kind }

// View returns a copy of the current state.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

// Subscribe registers fn to receive the view after every state change.
// The returned function removes the subscription.
func (c *Controller) Subscribe(fn func(View)) (cancel func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	id := c.nextID
	c.observers = append(c.observers, observer{id: id, fn: fn})

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.observers = slices.DeleteFunc(c.observers, func(o observer) bool { return o.id == id })
	}
}

// unlockAndNotify releases the lock, runs effects in order, then notifies observers.
func (c *Controller) unlockAndNotify(effects ...func()) {
	v := c.viewLocked()
	obs := slices.Clone(c.observers)
	c.mu.Unlock()

	for _, effect := range effects {
		if effect != nil {
			effect()
		}
	}
	for _, o := range obs {
		o.fn(v)
	}
}

func (c *Controller) mutableLocked() error {
	if c.unmounted {
		return domain.ErrUnmounted
	}
	if c.submitted {
		return domain.ErrSubmitted
	}
	return nil
}

// UpdateField sets one field and schedules a debounced save.
// Errors already shown for the field stay until the next validation.
func (c *Controller) UpdateField(name string, value any) error {
	c.mu.Lock()
	if err := c.mutableLocked(); err != nil {
		c.mu.Unlock()
		return err
	}
	if err := c.form.Set(name, value); err != nil {
		c.mu.Unlock()
		return fmt.Errorf("update %s: %w", c.kind, err)
	}
	form := c.form.Clone()
	c.unlockAndNotify(func() { c.persist.SaveDebounced(c.key, form) })
	return nil
}

// ToggleSetField adds value to a set field (products, topics) or removes it if present.
// Set sizes are not capped here; validation reports oversize sets.
func (c *Controller) ToggleSetField(name, value string) error {
	c.mu.Lock()
	if err := c.mutableLocked(); err != nil {
		c.mu.Unlock()
		return err
	}
	if err := c.form.Toggle(name, value); err != nil {
		c.mu.Unlock()
		return fmt.Errorf("toggle %s: %w", c.kind, err)
	}
	form := c.form.Clone()
	c.unlockAndNotify(func() { c.persist.SaveDebounced(c.key, form) })
	return nil
}

// GoNext validates the current step. On success it advances (staying put on the last step),
// saves immediately and returns true. On failure it records one error per reported field,
// leaving errors of other steps untouched, and returns false.
func (c *Controller) GoNext(ctx context.Context) bool {
	c.mu.Lock()
	if c.mutableLocked() != nil {
		c.mu.Unlock()
		return false
	}

	from := c.step
	issues := validator.ValidateStep(c.kind, from, c.form)
	c.clearErrorsLocked(validator.StepFields(c.kind, from))

	if len(issues) > 0 {
		fields := c.recordLocked(issues)
		c.unlockAndNotify(c.validationFailed(ctx, from, false, fields))
		return false
	}

	var entered func()
	if from < c.kind.TotalSteps() {
		c.step++
		entered = c.stepEntered(ctx, from, c.step)
	}
	form := c.form.Clone()
	c.unlockAndNotify(
		func() { c.persist.SaveNow(ctx, c.key, form) },
		entered,
	)
	return true
}

// Flush writes the current form at once, replacing any pending debounced save. It does
// nothing before the draft was loaded, after submission, or once unmounted.
func (c *Controller) Flush(ctx context.Context) {
	c.mu.Lock()
	if c.mutableLocked() != nil || !c.persist.Loaded(c.key) {
		c.mu.Unlock()
		return
	}
	form := c.form.Clone()
	c.mu.Unlock()

	c.persist.SaveNow(ctx, c.key, form)
}

// GoBack moves one step back and clears every field error. It is never blocked by
// validation and does nothing on the first step.
func (c *Controller) GoBack() {
	c.mu.Lock()
	if c.mutableLocked() != nil || c.step == 1 {
		c.mu.Unlock()
		return
	}

	from := c.step
	c.step--
	clear(c.errors)
	c.unlockAndNotify(c.stepEntered(context.Background(), from, c.step))
}

// Submit validates the final step, then the whole form, and hands the payload to the
// Submitter. It returns the reference token and true on success. Off the final step, after a
// validation failure, or when the Submitter fails, it returns "" and false.
func (c *Controller) Submit(ctx context.Context) (string, bool) {
	c.mu.Lock()
	total := c.kind.TotalSteps()
	if c.mutableLocked() != nil || c.step != total {
		c.mu.Unlock()
		return "", false
	}

	issues := validator.ValidateStep(c.kind, total, c.form)
	c.clearErrorsLocked(validator.StepFields(c.kind, total))
	if len(issues) > 0 {
		fields := c.recordLocked(issues)
		c.unlockAndNotify(c.validationFailed(ctx, total, false, fields))
		return "", false
	}

	if issues := validator.ValidateAll(c.kind, c.form); len(issues) > 0 {
		c.logger.Warn("complete form validation failed", "kind", c.kind, "issues", len(issues))
		fields := c.recordLocked(issues)
		c.unlockAndNotify(c.validationFailed(ctx, total, true, fields))
		return "", false
	}

	ref := c.newReference(c.kind)
	payload := submission.New(c.kind, ref, c.form, c.now())
	if err := c.submitter.Submit(ctx, payload); err != nil {
		c.logger.Error("form submission failed", "kind", c.kind, "reference", ref, "error", err)
		c.mu.Unlock()
		return "", false
	}

	c.submitted = true
	c.reference = ref
	clear(c.errors)

	var submitted func()
	if c.hooks.OnSubmit != nil {
		ev := &domain.SubmitEvent{EventBase: c.event(domain.EventSubmit), Reference: ref}
		submitted = func() { c.hooks.OnSubmit(ctx, ev) }
	}
	c.unlockAndNotify(
		func() { c.persist.Clear(ctx, c.key) },
		submitted,
	)
	return ref, true
}

// Reset returns to the first step with a fresh form and no errors.
func (c *Controller) Reset() {
	c.mu.Lock()
	if c.unmounted {
		c.mu.Unlock()
		return
	}
	c.resetLocked()
	c.unlockAndNotify(c.resetDone(context.Background()))
}

func (c *Controller) resetLocked() {
	c.step = 1
	c.form = domain.DefaultForm()
	c.errors = map[string]string{}
	c.submitted = false
	c.reference = ""
}

// Open shows the modal. The first open after a clear restores a fresh snapshot if one
// exists. Opening again before the close delay ran cancels the pending reset.
func (c *Controller) Open(ctx context.Context) {
	c.mu.Lock()
	if c.unmounted {
		c.mu.Unlock()
		return
	}

	c.cancelCloseLocked()
	c.open = true
	if !c.persist.Loaded(c.key) {
		if form, ok := c.persist.Load(ctx, c.key); ok && !c.submitted {
			c.form = form
			c.logger.Debug("restored draft", "kind", c.kind)
		}
	}
	c.unlockAndNotify()
}

// Close hides the modal and schedules the reset, which also clears the persisted draft.
func (c *Controller) Close(ctx context.Context) {
	c.mu.Lock()
	if c.unmounted {
		c.mu.Unlock()
		return
	}

	c.cancelCloseLocked()
	c.open = false
	gen := c.closeGen

	if c.closeDelay <= 0 {
		c.unlockAndNotify(func() { c.expireClose(ctx, gen) })
		return
	}
	c.closeDone = make(chan struct{})
	c.closeTimer = time.AfterFunc(c.closeDelay, func() {
		c.expireClose(context.Background(), gen)
	})
	c.unlockAndNotify()
}

// WaitClosed blocks until a pending close reset has run or was cancelled by Open or Unmount.
// It returns at once when no close is pending.
func (c *Controller) WaitClosed(ctx context.Context) error {
	c.mu.Lock()
	done := c.closeDone
	c.mu.Unlock()
	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Controller) cancelCloseLocked() {
	c.closeGen++
	if c.closeTimer != nil {
		c.closeTimer.Stop()
		c.closeTimer = nil
	}
	if c.closeDone != nil {
		close(c.closeDone)
		c.closeDone = nil
	}
}

func (c *Controller) expireClose(ctx context.Context, gen uint64) {
	c.mu.Lock()
	if c.unmounted || c.open || gen != c.closeGen {
		c.mu.Unlock()
		return
	}
	c.closeTimer = nil
	done := c.closeDone
	c.closeDone = nil
	c.resetLocked()
	c.unlockAndNotify(
		func() { c.persist.Clear(ctx, c.key) },
		c.resetDone(ctx),
	)
	if done != nil {
		close(done)
	}
}

// Unmount discards the controller. Pending timers are cancelled and nothing is flushed;
// the last saved snapshot stays in place for the next mount.
func (c *Controller) Unmount() {
	c.mu.Lock()
	if c.unmounted {
		c.mu.Unlock()
		return
	}
	c.unmounted = true
	c.cancelCloseLocked()
	c.observers = nil
	c.mu.Unlock()

	c.persist.Cancel(c.key)
}

func (c *Controller) clearErrorsLocked(fields []string) {
	for _, f := range fields {
		delete(c.errors, f)
	}
}

// recordLocked stores the first issue of each field and returns the errored fields in order.
func (c *Controller) recordLocked(issues []schema.Issue) []string {
	var fields []string
	seen := map[string]bool{}
	for _, is := range issues {
		if seen[is.Field] {
			continue
		}
		seen[is.Field] = true
		c.errors[is.Field] = is.Message
		fields = append(fields, is.Field)
	}
	return fields
}

func (c *Controller) event(t domain.EventType) domain.EventBase {
	return domain.EventBase{Timestamp: c.now(), Type: t, Kind: c.kind}
}

func (c *Controller) stepEntered(ctx context.Context, from, to int) func() {
	if c.hooks.OnStepEnter == nil {
		return nil
	}
	ev := &domain.StepEvent{
		EventBase: c.event(domain.EventStepEnter),
		Step:      to,
		From:      from,
		Label:     c.kind.StepLabel(to),
	}
	return func() { c.hooks.OnStepEnter(ctx, ev) }
}

func (c *Controller) validationFailed(ctx context.Context, step int, complete bool, fields []string) func() {
	if c.hooks.OnValidationFailed == nil {
		return nil
	}
	ev := &domain.ValidationEvent{
		EventBase: c.event(domain.EventValidationFailed),
		Step:      step,
		Complete:  complete,
		Fields:    fields,
	}
	return func() { c.hooks.OnValidationFailed(ctx, ev) }
}

func (c *Controller) resetDone(ctx context.Context) func() {
	if c.hooks.OnReset == nil {
		return nil
	}
	ev := c.event(domain.EventReset)
	return func() { c.hooks.OnReset(ctx, &ev) }
}
