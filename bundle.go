package l10n

import (
	_ "embed"
	"sort"
	"sync"
)

// Bundle exposes the strings shipped with the application. It is the
// fallback for keys a translation pack does not override.
type Bundle interface {
	// String returns the bundled value for key
	String(key string) (string, bool)
	// ResourceID returns the identifier of a bundled resource, used to
	// check that a plural variant exists
	ResourceID(key string) (int, bool)
}

// StaticBundle is an in memory Bundle, read only after construction.
type StaticBundle struct {
	values *OverrideMap
	ids    map[string]int
}

var _ Bundle = &StaticBundle{}

// NewStaticBundle builds a bundle from values. Resource ids are assigned in
// key order starting at 1.
func NewStaticBundle(values map[string]string) *StaticBundle {
	snapshot := NewOverrideMap(values)
	keys := snapshot.Keys()
	sort.Strings(keys)

	ids := make(map[string]int, len(keys))
	for i, key := range keys {
		ids[key] = i + 1
	}
	return &StaticBundle{values: snapshot, ids: ids}
}

func (b *StaticBundle) String(key string) (string, bool) {
	if b == nil {
		return "", false
	}
	return b.values.Lookup(key)
}

func (b *StaticBundle) ResourceID(key string) (int, bool) {
	if b == nil {
		return 0, false
	}
	id, ok := b.ids[key]
	return id, ok
}

// Lookup lets a StaticBundle act as a StringSource.
func (b *StaticBundle) Lookup(key string) (string, bool) {
	return b.String(key)
}

// Len returns the number of bundled strings.
func (b *StaticBundle) Len() int {
	if b == nil {
		return 0
	}
	return b.values.Len()
}

//go:embed defaults/strings.xml
var defaultStringsXML []byte

var defaultBundle = sync.OnceValue(func() *StaticBundle {
	values, err := decodePack("strings.xml", defaultStringsXML)
	if err != nil {
		return NewStaticBundle(nil)
	}
	return NewStaticBundle(values)
})

// DefaultBundle returns the English strings embedded in the module.
func DefaultBundle() *StaticBundle {
	return defaultBundle()
}

type bundleSource struct {
	bundle Bundle
}

func (s bundleSource) Lookup(key string) (string, bool) {
	if s.bundle == nil {
		return "", false
	}
	return s.bundle.String(key)
}
