/*
Package domain contains the core models of the intake wizard.

It defines the two wizard kinds, the explicit form record shared by both flows, the fixed
option catalogues the render layer offers, the persisted snapshot and the lifecycle events.
This package is kept pure and free of I/O, following Hexagonal Architecture principles.

# Key Entities

  - Kind: Mandate (3 steps) or Speak (2 steps).
  - FormState: every field either flow can collect, patched through Set by field name.
  - Snapshot: the persisted copy of a FormState with its save timestamp.
  - LifecycleHooks: callbacks for observability (steps, validation failures, submissions).
*/
package domain
