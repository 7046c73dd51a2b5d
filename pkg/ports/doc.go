/*
Package ports defines the driven ports (interfaces) for the intake wizard.

These interfaces decouple the wizard and its persistence adapter from external
implementations, allowing the same flows to run against memory, files, SQLite or Redis, and
to hand submissions to any backend.

# Key Interfaces

  - SnapshotStore: Responsible for keeping the raw bytes of persisted form slots.
  - Submitter: Receives the validated payload once a wizard is submitted.
*/
package ports
