package session_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/intake/pkg/adapters/memory"
	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/persistence"
	"github.com/aretw0/intake/pkg/session"
	"github.com/aretw0/intake/pkg/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T) (*session.Manager, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	m := session.NewManager(store,
		[]persistence.Option{persistence.WithDebounce(5 * time.Millisecond)},
		session.WithControllerOptions(wizard.WithCloseDelay(0)),
	)
	t.Cleanup(m.Close)
	return m, store
}

func TestManager_AcquireSharesController(t *testing.T) {
	m, _ := newManager(t)

	a, err := m.Acquire(domain.KindMandate)
	require.NoError(t, err)
	b, err := m.Acquire(domain.KindMandate)
	require.NoError(t, err)
	assert.Same(t, a, b)

	s, err := m.Acquire(domain.KindSpeak)
	require.NoError(t, err)
	assert.NotSame(t, a, s)
	assert.Equal(t, []domain.Kind{domain.KindMandate, domain.KindSpeak}, m.Mounted())
}

func TestManager_UnknownKind(t *testing.T) {
	m, _ := newManager(t)
	_, err := m.Acquire("quote")
	assert.ErrorIs(t, err, domain.ErrUnknownKind)
	assert.Empty(t, m.Mounted())
}

func TestManager_ReleaseUnmountsLastHolder(t *testing.T) {
	m, _ := newManager(t)

	c, err := m.Acquire(domain.KindSpeak)
	require.NoError(t, err)
	_, err = m.Acquire(domain.KindSpeak)
	require.NoError(t, err)

	m.Release(domain.KindSpeak)
	assert.NoError(t, c.UpdateField(domain.FieldAgenda, "still mounted"))

	m.Release(domain.KindSpeak)
	assert.Empty(t, m.Mounted())
	assert.ErrorIs(t, c.UpdateField(domain.FieldAgenda, "gone"), domain.ErrUnmounted)

	// Unbalanced releases are ignored.
	m.Release(domain.KindSpeak)
}

func TestManager_RemountRestoresDraft(t *testing.T) {
	m, store := newManager(t)
	ctx := context.Background()

	err := m.WithController(domain.KindMandate, func(c *wizard.Controller) error {
		c.Open(ctx)
		if err := c.UpdateField(domain.FieldCompany, "Niger Delta Refining"); err != nil {
			return err
		}
		assert.Eventually(t, func() bool {
			_, err := store.Load(ctx, "modal-form-mandate")
			return err == nil
		}, time.Second, 5*time.Millisecond)
		return nil
	})
	require.NoError(t, err)
	assert.Empty(t, m.Mounted())

	c, err := m.Acquire(domain.KindMandate)
	require.NoError(t, err)
	defer m.Release(domain.KindMandate)
	c.Open(ctx)
	assert.Equal(t, "Niger Delta Refining", c.View().Form.Company)

	drafts, err := m.Drafts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Kind{domain.KindMandate}, drafts)
}

func TestManager_DraftsSkipsCorruptSlots(t *testing.T) {
	m, store := newManager(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "modal-form-speak", []byte("{nope")))

	drafts, err := m.Drafts(ctx)
	require.NoError(t, err)
	assert.Empty(t, drafts)
}

func TestManager_ConcurrentAcquire(t *testing.T) {
	m, _ := newManager(t)

	var wg sync.WaitGroup
	ctrls := make([]*wizard.Controller, 20)
	for i := range ctrls {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := m.Acquire(domain.KindMandate)
			assert.NoError(t, err)
			ctrls[i] = c
		}(i)
	}
	wg.Wait()

	for _, c := range ctrls {
		assert.Same(t, ctrls[0], c)
	}
	for range ctrls {
		m.Release(domain.KindMandate)
	}
	assert.Empty(t, m.Mounted())
}

func TestManager_ReleaseRacingAcquireKeepsSuccessorWrites(t *testing.T) {
	m, store := newManager(t)
	ctx := context.Background()

	for i := range 25 {
		_, err := m.Acquire(domain.KindSpeak)
		require.NoError(t, err)
		want := fmt.Sprintf("agenda %d", i)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			m.Release(domain.KindSpeak)
		}()
		go func() {
			defer wg.Done()
			c, err := m.Acquire(domain.KindSpeak)
			if !assert.NoError(t, err) {
				return
			}
			c.Open(ctx)
			assert.NoError(t, c.UpdateField(domain.FieldAgenda, want))
		}()
		wg.Wait()

		assert.Eventually(t, func() bool {
			snap, err := persistence.Inspect(ctx, store, "modal-form-speak")
			return err == nil && snap.Fields.Agenda == want
		}, time.Second, 2*time.Millisecond, "write of iteration %d was dropped", i)

		m.Release(domain.KindSpeak)
	}
	assert.Empty(t, m.Mounted())
}

func TestManager_Close(t *testing.T) {
	m, _ := newManager(t)
	c, err := m.Acquire(domain.KindMandate)
	require.NoError(t, err)

	m.Close()
	m.Close()

	assert.ErrorIs(t, c.UpdateField(domain.FieldNotes, "x"), domain.ErrUnmounted)
	_, err = m.Acquire(domain.KindMandate)
	assert.ErrorIs(t, err, session.ErrClosed)
}
