package l10n

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	recordSeparator = "&"
	fieldSeparator  = "|"
	recordFields    = 4
)

// builtinLocales ship with the application and have no backing file.
var builtinLocales = []LocaleDescriptor{
	{Name: "English", EnglishName: "English", Code: "en"},
	{Name: "Italiano", EnglishName: "Italian", Code: "it"},
	{Name: "Español", EnglishName: "Spanish", Code: "es"},
	{Name: "Deutsch", EnglishName: "German", Code: "de"},
	{Name: "Nederlands", EnglishName: "Dutch", Code: "nl"},
	{Name: "العربية", EnglishName: "Arabic", Code: "ar"},
	{Name: "فارسی", EnglishName: "Farsi", Code: "fa"},
	{Name: "Português (Brasil)", EnglishName: "Portuguese (Brazil)", Code: "pt_BR"},
	{Name: "Português (Portugal)", EnglishName: "Portuguese (Portugal)", Code: "pt_PT"},
	{Name: "한국어", EnglishName: "Korean", Code: "ko"},
}

// BuiltinLocales returns a copy of the locales shipped with the module.
func BuiltinLocales() []LocaleDescriptor {
	return append([]LocaleDescriptor(nil), builtinLocales...)
}

// LocaleRegistry is the catalog of selectable locales: the built-ins plus
// packs installed by the user. Only the installed subset is persisted.
type LocaleRegistry struct {
	mu        sync.RWMutex
	prefs     Preferences
	logger    zerolog.Logger
	system    LocaleDescriptor
	builtins  []LocaleDescriptor
	installed []LocaleDescriptor
	byCode    map[string]LocaleDescriptor
	sorted    []LocaleDescriptor
}

// RegistryOption customises a LocaleRegistry.
type RegistryOption func(*LocaleRegistry)

// WithRegistryLogger sets the logger used for skipped records.
func WithRegistryLogger(logger zerolog.Logger) RegistryOption {
	return func(r *LocaleRegistry) {
		r.logger = logger
	}
}

// WithBuiltins replaces the built-in locale list.
func WithBuiltins(locales ...LocaleDescriptor) RegistryOption {
	return func(r *LocaleRegistry) {
		r.builtins = make([]LocaleDescriptor, 0, len(locales))
		for _, desc := range locales {
			desc.FilePath = ""
			if desc.Code == "" {
				continue
			}
			r.builtins = append(r.builtins, desc)
		}
	}
}

// WithSystemDefaultName sets the display name of the system default entry.
func WithSystemDefaultName(name string) RegistryOption {
	return func(r *LocaleRegistry) {
		if name != "" {
			r.system.Name = name
		}
	}
}

// NewLocaleRegistry seeds the built-ins and loads installed locales from
// prefs. Malformed persisted records are skipped and logged.
func NewLocaleRegistry(prefs Preferences, opts ...RegistryOption) *LocaleRegistry {
	if prefs == nil {
		prefs = NewMemoryPreferences()
	}
	r := &LocaleRegistry{
		prefs:    prefs,
		logger:   zerolog.Nop(),
		system:   LocaleDescriptor{Name: "System default", EnglishName: "System default"},
		builtins: BuiltinLocales(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	r.installed = r.loadInstalled()
	r.rebuild()
	return r
}

// SystemDefault returns the synthetic entry that follows the platform.
func (r *LocaleRegistry) SystemDefault() LocaleDescriptor {
	return r.system
}

// ListSorted returns the system default entry followed by every locale in
// ascending display name order.
func (r *LocaleRegistry) ListSorted() []LocaleDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]LocaleDescriptor, 0, len(r.sorted)+1)
	out = append(out, r.system)
	return append(out, r.sorted...)
}

// Installed returns the user-installed locales in installation order.
func (r *LocaleRegistry) Installed() []LocaleDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]LocaleDescriptor(nil), r.installed...)
}

// IsInstalled reports whether code names a user-installed locale, the
// only kind Uninstall accepts.
func (r *LocaleRegistry) IsInstalled(code string) bool {
	key := registryKey(code)

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, desc := range r.installed {
		if desc.Key() == key {
			return true
		}
	}
	return false
}

// Lookup finds a locale by code. "pt_BR" and "pt-BR" are equivalent.
func (r *LocaleRegistry) Lookup(code string) (LocaleDescriptor, bool) {
	key := registryKey(code)
	if key == "" {
		return LocaleDescriptor{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	desc, ok := r.byCode[key]
	return desc, ok
}

// Has reports whether the code is known.
func (r *LocaleRegistry) Has(code string) bool {
	_, ok := r.Lookup(code)
	return ok
}

// Match finds the registered locale best matching tag: by bare language
// first, then by the full tag.
func (r *LocaleRegistry) Match(tag language.Tag) (LocaleDescriptor, bool) {
	if tag == language.Und {
		return LocaleDescriptor{}, false
	}
	base, _ := tag.Base()
	if desc, ok := r.Lookup(base.String()); ok {
		return desc, true
	}
	for _, candidate := range localeCandidates(tag) {
		if desc, ok := r.Lookup(candidate); ok {
			return desc, true
		}
	}
	return LocaleDescriptor{}, false
}

// Install adds desc, replacing an installed locale with the same code. An
// installed locale shadows a built-in of the same code.
func (r *LocaleRegistry) Install(desc LocaleDescriptor) error {
	if err := validateDescriptor(desc); err != nil {
		return err
	}
	if desc.FilePath == "" {
		return fmt.Errorf("%w: %q has no backing file", ErrInvalidPack, desc.Code)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]LocaleDescriptor, 0, len(r.installed)+1)
	replaced := false
	for _, existing := range r.installed {
		if existing.Key() == desc.Key() {
			next = append(next, desc)
			replaced = true
			continue
		}
		next = append(next, existing)
	}
	if !replaced {
		next = append(next, desc)
	}

	if err := r.persist(next); err != nil {
		return err
	}
	r.installed = next
	r.rebuild()
	return nil
}

// Uninstall removes an installed locale, persists the change and deletes
// its backing file. Built-ins cannot be removed.
func (r *LocaleRegistry) Uninstall(desc LocaleDescriptor) error {
	key := desc.Key()

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, existing := range r.installed {
		if existing.Key() == key {
			idx = i
			break
		}
	}
	if idx < 0 {
		if r.isBuiltinLocked(key) {
			return fmt.Errorf("%w: %q", ErrBuiltinLocale, desc.Code)
		}
		return fmt.Errorf("%w: %q", ErrNotFound, desc.Code)
	}

	removed := r.installed[idx]
	next := make([]LocaleDescriptor, 0, len(r.installed)-1)
	next = append(next, r.installed[:idx]...)
	next = append(next, r.installed[idx+1:]...)

	if err := r.persist(next); err != nil {
		return err
	}
	r.installed = next
	r.rebuild()

	if removed.FilePath != "" {
		if err := os.Remove(removed.FilePath); err != nil && !errors.Is(err, os.ErrNotExist) {
			r.logger.Warn().Err(err).Str("path", removed.FilePath).Msg("remove pack file")
		}
	}
	return nil
}

func (r *LocaleRegistry) isBuiltinLocked(key string) bool {
	for _, b := range r.builtins {
		if b.Key() == key {
			return true
		}
	}
	return false
}

// rebuild recomputes the lookup index and sorted listing. The caller holds
// r.mu or owns r exclusively.
func (r *LocaleRegistry) rebuild() {
	byCode := make(map[string]LocaleDescriptor, len(r.builtins)+len(r.installed))
	for _, desc := range r.builtins {
		byCode[registryKey(desc.Code)] = desc
	}
	for _, desc := range r.installed {
		byCode[registryKey(desc.Code)] = desc
	}

	sorted := make([]LocaleDescriptor, 0, len(byCode))
	for _, desc := range byCode {
		sorted = append(sorted, desc)
	}

	col := collate.New(language.Und)
	sort.SliceStable(sorted, func(i, j int) bool {
		if c := col.CompareString(sorted[i].Name, sorted[j].Name); c != 0 {
			return c < 0
		}
		return sorted[i].Key() < sorted[j].Key()
	})

	r.byCode = byCode
	r.sorted = sorted
}

func (r *LocaleRegistry) loadInstalled() []LocaleDescriptor {
	raw, ok := r.prefs.String(NamespaceLanguages, KeyInstalledLocales)
	if !ok || raw == "" {
		return nil
	}

	records := strings.Split(raw, recordSeparator)
	out := make([]LocaleDescriptor, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for _, record := range records {
		desc, err := decodeRecord(record)
		if err == nil {
			if _, dup := seen[desc.Key()]; dup {
				err = fmt.Errorf("%w: duplicate code %q", ErrMalformedRecord, desc.Code)
			}
		}
		if err != nil {
			r.logger.Warn().Err(err).Str("record", record).Msg("skip persisted locale")
			continue
		}
		seen[desc.Key()] = struct{}{}
		out = append(out, desc)
	}
	return out
}

func (r *LocaleRegistry) persist(installed []LocaleDescriptor) error {
	if len(installed) == 0 {
		return r.prefs.Remove(NamespaceLanguages, KeyInstalledLocales)
	}
	records := make([]string, 0, len(installed))
	for _, desc := range installed {
		records = append(records, encodeRecord(desc))
	}
	return r.prefs.SetString(NamespaceLanguages, KeyInstalledLocales, strings.Join(records, recordSeparator))
}

func encodeRecord(desc LocaleDescriptor) string {
	return strings.Join([]string{desc.Name, desc.EnglishName, desc.Code, desc.FilePath}, fieldSeparator)
}

func decodeRecord(record string) (LocaleDescriptor, error) {
	fields := strings.Split(record, fieldSeparator)
	if len(fields) != recordFields {
		return LocaleDescriptor{}, fmt.Errorf("%w: %d fields", ErrMalformedRecord, len(fields))
	}
	desc := LocaleDescriptor{
		Name:        fields[0],
		EnglishName: fields[1],
		Code:        fields[2],
		FilePath:    fields[3],
	}
	if desc.Code == "" || desc.FilePath == "" {
		return LocaleDescriptor{}, fmt.Errorf("%w: missing code or path", ErrMalformedRecord)
	}
	return desc, nil
}

// validateDescriptor rejects values that would corrupt the persisted
// record format.
func validateDescriptor(desc LocaleDescriptor) error {
	for name, value := range map[string]string{
		KeyLanguageName:          desc.Name,
		KeyLanguageNameInEnglish: desc.EnglishName,
		KeyLanguageCode:          desc.Code,
	} {
		if value == "" {
			return fmt.Errorf("%w: empty %s", ErrInvalidPack, name)
		}
		if strings.ContainsAny(value, recordSeparator+fieldSeparator) {
			return fmt.Errorf("%w: %s contains a reserved character", ErrInvalidPack, name)
		}
	}
	if strings.ContainsAny(desc.FilePath, recordSeparator+fieldSeparator) {
		return fmt.Errorf("%w: file path contains a reserved character", ErrInvalidPack)
	}
	return nil
}

func registryKey(code string) string {
	return strings.ToLower(normalizeLocale(code))
}
