package l10n

import (
	"sort"
)

// StringSource resolves a key to a string.
type StringSource interface {
	// Lookup returns the value for key and ok=false if missing
	Lookup(key string) (string, bool)
}

// OverrideMap is an immutable key/value snapshot of a translation pack,
// read only after construction.
type OverrideMap struct {
	values map[string]string
	keys   []string
}

var _ StringSource = &OverrideMap{}

var emptyOverrides = NewOverrideMap(nil)

// NewOverrideMap builds an immutable snapshot from values. Empty keys and
// empty values are dropped.
func NewOverrideMap(values map[string]string) *OverrideMap {
	if len(values) == 0 {
		return &OverrideMap{values: map[string]string{}}
	}

	clone := make(map[string]string, len(values))
	keys := make([]string, 0, len(values))
	for key, value := range values {
		if key == "" || value == "" {
			continue
		}
		clone[key] = value
		keys = append(keys, key)
	}

	// make keys deterministic
	sort.Strings(keys)

	return &OverrideMap{values: clone, keys: keys}
}

// Lookup returns the value stored for key.
func (m *OverrideMap) Lookup(key string) (string, bool) {
	if m == nil {
		return "", false
	}
	value, ok := m.values[key]
	return value, ok
}

// Len returns the number of entries.
func (m *OverrideMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.values)
}

// Keys returns a sorted copy of all keys.
func (m *OverrideMap) Keys() []string {
	if m == nil || len(m.keys) == 0 {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Map returns a copy of the entries.
func (m *OverrideMap) Map() map[string]string {
	if m == nil {
		return map[string]string{}
	}
	out := make(map[string]string, len(m.values))
	for key, value := range m.values {
		out[key] = value
	}
	return out
}
