// Package persistence keeps partially filled wizard forms across reloads.
//
// An Adapter writes a Snapshot of the form to one slot per wizard kind. Writes triggered by
// typing are debounced; writes triggered by navigation go out at once. Snapshots older than
// the maximum age, or that cannot be decoded, are purged when read. Every failure is logged
// and reported to an optional hook, never returned: losing a draft must not break the form.
//
// Slot values are JSON:
//
//	{"fields": {"fullName": "Ada Obi", "volume": 1200000, ...}, "timestamp": 1767225600000}
//
// Decode also understands the flat layout where the field keys sit at the top level next to
// a "_timestamp" entry.
package persistence
