package domain

import "time"

// MaxSnapshotAge is how long a persisted form stays restorable.
const MaxSnapshotAge = 24 * time.Hour

// Snapshot is a persisted copy of a form, stamped with the time of the write.
type Snapshot struct {
	Fields FormState `json:"fields"`
	// Timestamp is the save time in Unix milliseconds.
	Timestamp int64 `json:"timestamp"`
}

// NewSnapshot stamps a copy of form with t.
func NewSnapshot(form FormState, t time.Time) Snapshot {
	return Snapshot{Fields: form.Clone(), Timestamp: t.UnixMilli()}
}

// SavedAt returns the timestamp as a time.Time.
func (s Snapshot) SavedAt() time.Time {
	return time.UnixMilli(s.Timestamp)
}

// Expired reports whether the snapshot is older than maxAge at now.
// A snapshot without a timestamp is always expired.
func (s Snapshot) Expired(now time.Time, maxAge time.Duration) bool {
	if s.Timestamp <= 0 {
		return true
	}
	return now.Sub(s.SavedAt()) >= maxAge
}
