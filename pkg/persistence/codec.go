package persistence

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aretw0/intake/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// ErrCorrupt is returned by Decode for data that is not a snapshot.
var ErrCorrupt = errors.New("corrupt snapshot")

const (
	keyFields          = "fields"
	keyTimestamp       = "timestamp"
	keyLegacyTimestamp = "_timestamp"
)

// Encode serializes a snapshot.
func Encode(s domain.Snapshot) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return data, nil
}

// Decode parses a snapshot, merging the stored fields over the form defaults.
// Unknown field keys are ignored.
func Decode(data []byte) (domain.Snapshot, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if raw == nil {
		return domain.Snapshot{}, fmt.Errorf("%w: not an object", ErrCorrupt)
	}

	fields, tsValue := raw, raw[keyLegacyTimestamp]
	if nested, ok := raw[keyFields].(map[string]any); ok {
		fields, tsValue = nested, raw[keyTimestamp]
	}

	var ts int64
	if tsValue != nil {
		if err := mapstructure.WeakDecode(tsValue, &ts); err != nil {
			return domain.Snapshot{}, fmt.Errorf("%w: timestamp: %v", ErrCorrupt, err)
		}
	}

	form := domain.DefaultForm()
	if _, err := form.Merge(fields); err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	return domain.Snapshot{Fields: form, Timestamp: ts}, nil
}
