package l10n

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// FilePreferences persists preferences as a YAML document of namespaces:
//
//	mainconfig:
//	  language: fa
//	langconfig:
//	  locales: Français|French|fr|/data/packs/fr.xml
//
// Every write rewrites the document through a temporary file and a rename.
type FilePreferences struct {
	mu     sync.RWMutex
	path   string
	values map[string]map[string]string
	logger zerolog.Logger
}

var _ Preferences = &FilePreferences{}

// OpenFilePreferences loads path, treating a missing file as empty.
func OpenFilePreferences(path string, logger zerolog.Logger) (*FilePreferences, error) {
	p := &FilePreferences{
		path:   path,
		values: make(map[string]map[string]string),
		logger: logger,
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return p, nil
	case err != nil:
		return nil, fmt.Errorf("%w: read %s: %v", ErrIO, path, err)
	}

	if err := yaml.Unmarshal(data, &p.values); err != nil {
		return nil, fmt.Errorf("l10n: decode preferences %s: %w", path, err)
	}
	if p.values == nil {
		p.values = make(map[string]map[string]string)
	}
	return p, nil
}

// Path returns the backing file.
func (p *FilePreferences) Path() string {
	return p.path
}

func (p *FilePreferences) String(namespace, key string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	value, ok := p.values[namespace][key]
	return value, ok
}

func (p *FilePreferences) Bool(namespace, key string, fallback bool) bool {
	value, ok := p.String(namespace, key)
	if !ok {
		return fallback
	}
	return parseBoolPreference(value, fallback)
}

func (p *FilePreferences) SetString(namespace, key, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	next := cloneNamespaces(p.values)
	if next[namespace] == nil {
		next[namespace] = make(map[string]string)
	}
	next[namespace][key] = value
	return p.commit(next)
}

func (p *FilePreferences) SetBool(namespace, key string, value bool) error {
	return p.SetString(namespace, key, strconv.FormatBool(value))
}

func (p *FilePreferences) Remove(namespace, key string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.values[namespace][key]; !ok {
		return nil
	}
	next := cloneNamespaces(p.values)
	delete(next[namespace], key)
	if len(next[namespace]) == 0 {
		delete(next, namespace)
	}
	return p.commit(next)
}

// commit writes next to disk and swaps it in. The caller holds p.mu.
func (p *FilePreferences) commit(next map[string]map[string]string) error {
	data, err := yaml.Marshal(next)
	if err != nil {
		return fmt.Errorf("l10n: encode preferences: %w", err)
	}
	if err := writeFileAtomic(p.path, data); err != nil {
		p.logger.Error().Err(err).Str("path", p.path).Msg("persist preferences")
		return err
	}
	p.values = next
	return nil
}

// writeFileAtomic writes data next to path and renames it into place.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: mkdir %s: %v", ErrIO, dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("%w: create temp in %s: %v", ErrIO, dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write %s: %v", ErrIO, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", ErrIO, tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: rename %s: %v", ErrIO, path, err)
	}
	return nil
}
