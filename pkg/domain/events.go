package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStepEnter        EventType = "step_enter"
	EventValidationFailed EventType = "validation_failed"
	EventSubmit           EventType = "submit"
	EventReset            EventType = "reset"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Kind      Kind      `json:"kind"`
}

// StepEvent is emitted when the wizard lands on a step.
type StepEvent struct {
	EventBase
	Step  int    `json:"step"`
	From  int    `json:"from"`
	Label string `json:"label"`
}

// ValidationEvent is emitted when a step or the safety-net check rejects the form.
type ValidationEvent struct {
	EventBase
	Step int `json:"step"`
	// Complete is true for the whole-object check run at submission.
	Complete bool     `json:"complete"`
	Fields   []string `json:"fields"`
}

// SubmitEvent is emitted once a submission went through.
type SubmitEvent struct {
	EventBase
	Reference string `json:"reference"`
}

// LifecycleHooks defines callbacks for wizard observability.
type LifecycleHooks struct {
	OnStepEnter        func(context.Context, *StepEvent)
	OnValidationFailed func(context.Context, *ValidationEvent)
	OnSubmit           func(context.Context, *SubmitEvent)
	OnReset            func(context.Context, *EventBase)
}
