package l10n

import (
	"strconv"
	"sync"
)

// Preference namespaces and keys.
const (
	NamespaceMain      = "mainconfig"
	NamespaceLanguages = "langconfig"
	NamespaceDisplay   = "displayconfig"

	KeyLanguage          = "language"
	KeyInstalledLocales  = "locales"
	KeyAlternateCalendar = "jalali_date"
)

// Preferences is a namespaced key/value store. Reads never fail: adapters
// log backend errors and report the key as absent.
type Preferences interface {
	String(namespace, key string) (string, bool)
	Bool(namespace, key string, fallback bool) bool
	SetString(namespace, key, value string) error
	SetBool(namespace, key string, value bool) error
	Remove(namespace, key string) error
}

// MemoryPreferences keeps preferences in process memory.
type MemoryPreferences struct {
	mu     sync.RWMutex
	values map[string]map[string]string
}

var _ Preferences = &MemoryPreferences{}

func NewMemoryPreferences() *MemoryPreferences {
	return &MemoryPreferences{values: make(map[string]map[string]string)}
}

func (p *MemoryPreferences) String(namespace, key string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	value, ok := p.values[namespace][key]
	return value, ok
}

func (p *MemoryPreferences) Bool(namespace, key string, fallback bool) bool {
	value, ok := p.String(namespace, key)
	if !ok {
		return fallback
	}
	return parseBoolPreference(value, fallback)
}

func (p *MemoryPreferences) SetString(namespace, key, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	bucket, ok := p.values[namespace]
	if !ok {
		bucket = make(map[string]string)
		p.values[namespace] = bucket
	}
	bucket[key] = value
	return nil
}

func (p *MemoryPreferences) SetBool(namespace, key string, value bool) error {
	return p.SetString(namespace, key, strconv.FormatBool(value))
}

func (p *MemoryPreferences) Remove(namespace, key string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.values[namespace], key)
	return nil
}

// Snapshot returns a copy of all stored values.
func (p *MemoryPreferences) Snapshot() map[string]map[string]string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return cloneNamespaces(p.values)
}

func cloneNamespaces(src map[string]map[string]string) map[string]map[string]string {
	out := make(map[string]map[string]string, len(src))
	for ns, bucket := range src {
		copied := make(map[string]string, len(bucket))
		for key, value := range bucket {
			copied[key] = value
		}
		out[ns] = copied
	}
	return out
}

func parseBoolPreference(value string, fallback bool) bool {
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
