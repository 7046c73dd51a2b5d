package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/aretw0/intake/internal/logging"
	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/persistence"
	"github.com/aretw0/intake/pkg/ports"
	"github.com/aretw0/intake/pkg/wizard"
)

// ErrClosed is returned by Acquire after Close.
var ErrClosed = errors.New("session manager closed")

// entry holds a mounted controller and the number of holders.
type entry struct {
	ctrl *wizard.Controller
	refs int
}

// Manager mounts wizard controllers over a shared persistence adapter.
type Manager struct {
	persist *persistence.Adapter
	store   ports.SnapshotStore
	opts    []wizard.Option
	logger  *slog.Logger

	mu      sync.Mutex
	mounted map[domain.Kind]*entry
	closed  bool
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithControllerOptions appends options applied to every controller the Manager mounts.
func WithControllerOptions(opts ...wizard.Option) Option {
	return func(m *Manager) {
		m.opts = append(m.opts, opts...)
	}
}

// NewManager creates a Manager over store. persistOpts configure the shared adapter.
func NewManager(store ports.SnapshotStore, persistOpts []persistence.Option, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		mounted: make(map[domain.Kind]*entry),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	persistOpts = append([]persistence.Option{persistence.WithLogger(m.logger)}, persistOpts...)
	m.persist = persistence.NewAdapter(store, persistOpts...)
	return m
}

// Acquire returns the controller of kind, mounting it on first use.
// The caller must call Release(kind) when done.
func (m *Manager) Acquire(kind domain.Kind) (*wizard.Controller, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrClosed
	}
	if e, ok := m.mounted[kind]; ok {
		e.refs++
		return e.ctrl, nil
	}

	opts := append([]wizard.Option{wizard.WithLogger(m.logger)}, m.opts...)
	ctrl, err := wizard.NewController(kind, m.persist, opts...)
	if err != nil {
		return nil, fmt.Errorf("mount %q: %w", kind, err)
	}
	m.mounted[kind] = &entry{ctrl: ctrl, refs: 1}
	m.logger.Debug("wizard mounted", "kind", kind)
	return ctrl, nil
}

// Release drops one holder of kind and unmounts the controller when none remain.
func (m *Manager) Release(kind domain.Kind) {
	m.mu.Lock()
	e, ok := m.mounted[kind]
	if !ok {
		m.mu.Unlock()
		return
	}
	e.refs--
	if e.refs > 0 {
		m.mu.Unlock()
		return
	}
	// Unmount before unlocking, so a concurrent Acquire cannot mount a successor whose pending
	// write the old controller would cancel.
	delete(m.mounted, kind)
	e.ctrl.Unmount()
	m.mu.Unlock()

	m.logger.Debug("wizard unmounted", "kind", kind)
}

// WithController runs fn with the controller of kind held for the duration of the call.
func (m *Manager) WithController(kind domain.Kind, fn func(*wizard.Controller) error) error {
	ctrl, err := m.Acquire(kind)
	if err != nil {
		return err
	}
	defer m.Release(kind)
	return fn(ctrl)
}

// Mounted returns the kinds with a live controller, in sorted order.
func (m *Manager) Mounted() []domain.Kind {
	m.mu.Lock()
	defer m.mu.Unlock()

	kinds := make([]domain.Kind, 0, len(m.mounted))
	for k := range m.mounted {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// Drafts lists the kinds whose slot holds a readable snapshot. Freshness is not checked.
func (m *Manager) Drafts(ctx context.Context) ([]domain.Kind, error) {
	var kinds []domain.Kind
	for _, k := range domain.Kinds {
		if _, err := persistence.Inspect(ctx, m.store, k.StorageKey()); err != nil {
			if errors.Is(err, domain.ErrSnapshotNotFound) || errors.Is(err, persistence.ErrCorrupt) {
				continue
			}
			return nil, fmt.Errorf("inspect %q: %w", k, err)
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

// Store returns the underlying snapshot store.
func (m *Manager) Store() ports.SnapshotStore {
	return m.store
}

// Close unmounts every controller and stops pending writes. Later Acquire calls fail.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	mounted := m.mounted
	m.mounted = make(map[domain.Kind]*entry)
	m.mu.Unlock()

	for _, e := range mounted {
		e.ctrl.Unmount()
	}
	m.persist.Close()
}
