package persistence

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/intake/internal/logging"
	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/ports"
)

// Defaults for NewAdapter.
const (
	DefaultDebounce     = 500 * time.Millisecond
	DefaultWriteTimeout = 5 * time.Second
)

// Operations reported to the error hook.
const (
	OpLoad  = "load"
	OpSave  = "save"
	OpClear = "clear"
)

// ErrorHook observes persistence failures. They are swallowed after the hook returns.
type ErrorHook func(op, key string, err error)

// Adapter is a debounced, best-effort snapshot writer over a SnapshotStore.
// Safe for concurrent use.
type Adapter struct {
	store        ports.SnapshotStore
	logger       *slog.Logger
	debounce     time.Duration
	maxAge       time.Duration
	writeTimeout time.Duration
	now          func() time.Time
	onError      ErrorHook

	mu     sync.Mutex
	slots  map[string]*slot
	closed bool

	// writeMu orders store writes so a stale timer cannot land after a newer synchronous save.
	writeMu sync.Mutex
}

type slot struct {
	loaded bool
	gen    uint64
	timer  *time.Timer
}

// Option configures the Adapter.
type Option func(*Adapter)

// WithLogger configures a logger for the Adapter.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

// WithDebounce sets the quiet period before a debounced write goes out.
func WithDebounce(d time.Duration) Option {
	return func(a *Adapter) {
		a.debounce = d
	}
}

// WithMaxAge sets how old a snapshot may be and still be restored.
func WithMaxAge(d time.Duration) Option {
	return func(a *Adapter) {
		a.maxAge = d
	}
}

// WithClock replaces the clock used for stamping and expiry.
func WithClock(now func() time.Time) Option {
	return func(a *Adapter) {
		a.now = now
	}
}

// WithErrorHook registers a callback for swallowed failures.
func WithErrorHook(hook ErrorHook) Option {
	return func(a *Adapter) {
		a.onError = hook
	}
}

// NewAdapter creates an Adapter writing to store.
func NewAdapter(store ports.SnapshotStore, opts ...Option) *Adapter {
	a := &Adapter{
		store:        store,
		logger:       logging.NewNop(),
		debounce:     DefaultDebounce,
		maxAge:       domain.MaxSnapshotAge,
		writeTimeout: DefaultWriteTimeout,
		now:          time.Now,
		slots:        make(map[string]*slot),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// slotLocked returns the state of key. Caller must hold a.mu.
func (a *Adapter) slotLocked(key string) *slot {
	s, ok := a.slots[key]
	if !ok {
		s = &slot{}
		a.slots[key] = s
	}
	return s
}

// cancelLocked drops any pending write of s and invalidates in-flight timers.
// Caller must hold a.mu.
func (s *slot) cancelLocked() {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Load restores the form stored under key. It returns false when nothing usable is stored;
// expired or undecodable slots are deleted on the way. Either way the key counts as loaded
// afterwards, enabling debounced writes.
func (a *Adapter) Load(ctx context.Context, key string) (domain.FormState, bool) {
	defer func() {
		a.mu.Lock()
		a.slotLocked(key).loaded = true
		a.mu.Unlock()
	}()

	data, err := a.store.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrSnapshotNotFound) {
			a.fail(OpLoad, key, err)
			a.purge(ctx, key)
		}
		return domain.DefaultForm(), false
	}

	snap, err := Decode(data)
	if err != nil {
		a.fail(OpLoad, key, err)
		a.purge(ctx, key)
		return domain.DefaultForm(), false
	}

	if snap.Expired(a.now(), a.maxAge) {
		a.logger.Debug("discarding expired snapshot", "key", key, "saved_at", snap.SavedAt())
		a.purge(ctx, key)
		return domain.DefaultForm(), false
	}

	a.logger.Debug("restored snapshot", "key", key, "saved_at", snap.SavedAt())
	return snap.Fields, true
}

// Loaded reports whether Load has run for key since the last Clear.
func (a *Adapter) Loaded(key string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	s, ok := a.slots[key]
	return ok && s.loaded
}

// SaveDebounced schedules a write of form once the debounce period passes without another
// call for the same key. Nothing is scheduled until the key was loaded.
func (a *Adapter) SaveDebounced(key string, form domain.FormState) {
	form = form.Clone()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return
	}
	s := a.slotLocked(key)
	if !s.loaded {
		return
	}
	s.cancelLocked()
	gen := s.gen
	s.timer = time.AfterFunc(a.debounce, func() {
		a.flush(key, gen, form)
	})
}

func (a *Adapter) flush(key string, gen uint64, form domain.FormState) {
	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	a.mu.Lock()
	s := a.slotLocked(key)
	current := !a.closed && s.gen == gen && s.loaded
	if current {
		s.timer = nil
	}
	a.mu.Unlock()
	if !current {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.writeTimeout)
	defer cancel()
	a.write(ctx, key, form)
}

// SaveNow cancels any pending write for key and writes form synchronously.
func (a *Adapter) SaveNow(ctx context.Context, key string, form domain.FormState) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.slotLocked(key).cancelLocked()
	a.mu.Unlock()

	a.writeMu.Lock()
	defer a.writeMu.Unlock()
	a.write(ctx, key, form)
}

func (a *Adapter) write(ctx context.Context, key string, form domain.FormState) {
	data, err := Encode(domain.NewSnapshot(form, a.now()))
	if err != nil {
		a.fail(OpSave, key, err)
		return
	}
	if err := a.store.Save(ctx, key, data); err != nil {
		a.fail(OpSave, key, err)
		return
	}
	a.logger.Debug("saved snapshot", "key", key)
}

// Cancel drops the pending debounced write of key, if any, leaving the slot as it is.
// The key counts as not loaded afterwards, so the next mount restores from the store.
func (a *Adapter) Cancel(key string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if s, ok := a.slots[key]; ok {
		s.cancelLocked()
		s.loaded = false
	}
}

// Clear cancels any pending write, removes the slot and marks the key not loaded.
func (a *Adapter) Clear(ctx context.Context, key string) {
	a.mu.Lock()
	s := a.slotLocked(key)
	s.cancelLocked()
	s.loaded = false
	a.mu.Unlock()

	a.writeMu.Lock()
	defer a.writeMu.Unlock()
	if err := a.store.Delete(ctx, key); err != nil {
		a.fail(OpClear, key, err)
	}
}

// Close stops all pending writes. Later saves are ignored.
func (a *Adapter) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	for _, s := range a.slots {
		s.cancelLocked()
	}
}

func (a *Adapter) purge(ctx context.Context, key string) {
	if err := a.store.Delete(ctx, key); err != nil {
		a.fail(OpClear, key, err)
	}
}

func (a *Adapter) fail(op, key string, err error) {
	a.logger.Warn("persistence failure", "op", op, "key", key, "error", err)
	if a.onError != nil {
		a.onError(op, key, err)
	}
}
