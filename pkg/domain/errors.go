package domain

import "errors"

// ErrUnknownKind is returned when a wizard kind is not mandate or speak.
var ErrUnknownKind = errors.New("unknown wizard kind")

// ErrUnknownField is returned when a patch names a field FormState does not have.
var ErrUnknownField = errors.New("unknown form field")

// ErrFieldType is returned when a value cannot be coerced into the field's type.
var ErrFieldType = errors.New("invalid value for form field")

// ErrNotSetField is returned when a toggle targets a field that is not a set.
var ErrNotSetField = errors.New("field is not a set")

// ErrSubmitted is returned when the form is mutated after a successful submission.
var ErrSubmitted = errors.New("wizard already submitted")

// ErrSnapshotNotFound is returned when a persistence slot does not exist.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// ErrUnmounted is returned when a wizard is used after it was unmounted.
var ErrUnmounted = errors.New("wizard unmounted")
