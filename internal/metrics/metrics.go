// Package metrics exposes wizard activity as Prometheus counters fed by lifecycle hooks.
package metrics

import (
	"context"

	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/persistence"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "intake"

// Metrics holds the wizard counters.
type Metrics struct {
	StepsEntered       *prometheus.CounterVec
	ValidationFailures *prometheus.CounterVec
	Submissions        *prometheus.CounterVec
	Resets             *prometheus.CounterVec
	PersistenceErrors  *prometheus.CounterVec
}

// New creates the counters and registers them with reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		StepsEntered: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "steps_entered_total",
				Help:      "Total number of wizard steps entered",
			},
			[]string{"kind", "step"},
		),
		ValidationFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validation_failures_total",
				Help:      "Total number of rejected fields, by field",
			},
			[]string{"kind", "field", "complete"},
		),
		Submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "submissions_total",
				Help:      "Total number of accepted submissions",
			},
			[]string{"kind"},
		),
		Resets: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "resets_total",
				Help:      "Total number of wizard resets",
			},
			[]string{"kind"},
		),
		PersistenceErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "persistence_errors_total",
				Help:      "Total number of absorbed snapshot store failures",
			},
			[]string{"op"},
		),
	}

	for _, c := range []prometheus.Collector{
		m.StepsEntered, m.ValidationFailures, m.Submissions, m.Resets, m.PersistenceErrors,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks recording into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepEnter: func(_ context.Context, e *domain.StepEvent) {
			m.StepsEntered.WithLabelValues(string(e.Kind), e.Label).Inc()
		},
		OnValidationFailed: func(_ context.Context, e *domain.ValidationEvent) {
			complete := "false"
			if e.Complete {
				complete = "true"
			}
			for _, f := range e.Fields {
				m.ValidationFailures.WithLabelValues(string(e.Kind), f, complete).Inc()
			}
		},
		OnSubmit: func(_ context.Context, e *domain.SubmitEvent) {
			m.Submissions.WithLabelValues(string(e.Kind)).Inc()
		},
		OnReset: func(_ context.Context, e *domain.EventBase) {
			m.Resets.WithLabelValues(string(e.Kind)).Inc()
		},
	}
}

// ErrorHook returns a persistence error hook counting failures by operation.
func (m *Metrics) ErrorHook() persistence.ErrorHook {
	return func(op, _ string, _ error) {
		m.PersistenceErrors.WithLabelValues(op).Inc()
	}
}

// Combine merges hook sets; each callback of every set runs, in order.
func Combine(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range sets {
		out.OnStepEnter = chain(out.OnStepEnter, h.OnStepEnter)
		out.OnValidationFailed = chain(out.OnValidationFailed, h.OnValidationFailed)
		out.OnSubmit = chain(out.OnSubmit, h.OnSubmit)
		out.OnReset = chain(out.OnReset, h.OnReset)
	}
	return out
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
