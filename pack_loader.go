package l10n

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/rs/zerolog"
)

// packCodePattern limits pack codes to characters safe in file names.
var packCodePattern = regexp.MustCompile(`^[A-Za-z0-9]+([_-][A-Za-z0-9]+)*$`)

// PackLoader installs translation packs into the managed pack directory
// and activates them.
type PackLoader struct {
	engine *Engine
	dir    string
	logger zerolog.Logger
}

func newPackLoader(e *Engine) *PackLoader {
	return &PackLoader{
		engine: e,
		dir:    e.cfg.PackDir,
		logger: e.logger.With().Str("component", "packs").Logger(),
	}
}

// Dir returns the managed pack directory.
func (l *PackLoader) Dir() string {
	return l.dir
}

// Parse decodes the pack at path without installing it.
func (l *PackLoader) Parse(path string) (map[string]string, error) {
	return ReadPackFile(path)
}

// LoadFromFile validates the pack at path, copies it into the pack
// directory, registers it and makes it the stored, active locale. Nothing
// is installed when validation or the copy fails.
func (l *PackLoader) LoadFromFile(path string) (LocaleDescriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LocaleDescriptor{}, fmt.Errorf("%w: read %s: %v", ErrIO, path, err)
	}

	values, err := decodePack(path, data)
	if err != nil {
		l.logger.Warn().Err(err).Str("path", path).Msg("pack could not be decoded")
		values = map[string]string{}
	}

	desc, verr := descriptorFromPack(values)
	if verr != nil {
		if err != nil {
			return LocaleDescriptor{}, errors.Join(verr, err)
		}
		return LocaleDescriptor{}, verr
	}

	e := l.engine
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	dest := filepath.Join(l.dir, desc.Code+packSuffix(path))
	if err := writeFileAtomic(dest, data); err != nil {
		return LocaleDescriptor{}, err
	}
	desc.FilePath = dest

	previous, known := e.registry.Lookup(desc.Code)
	if known && !previous.IsBuiltin() {
		desc.Name, desc.EnglishName = previous.Name, previous.EnglishName
	}
	if err := e.registry.Install(desc); err != nil {
		if !known || previous.FilePath != dest {
			os.Remove(dest)
		}
		return LocaleDescriptor{}, err
	}
	if known && !previous.IsBuiltin() && previous.FilePath != dest {
		if err := os.Remove(previous.FilePath); err != nil && !errors.Is(err, os.ErrNotExist) {
			l.logger.Warn().Err(err).Str("path", previous.FilePath).Msg("remove replaced pack file")
		}
	}

	categories := SupportedCategories(RuleFor(desc.Code))
	plurals := make([]string, len(categories))
	for i, c := range categories {
		plurals[i] = string(c)
	}
	l.logger.Info().
		Str("locale", desc.Code).
		Str("path", dest).
		Int("strings", len(values)).
		Strs("plural_categories", plurals).
		Msg("pack installed")

	if err := e.applyLocked(applyRequest{desc: desc, persist: true, overrides: NewOverrideMap(values)}); err != nil {
		return desc, err
	}
	return desc, nil
}

// descriptorFromPack reads the metadata keys every pack must carry.
func descriptorFromPack(values map[string]string) (LocaleDescriptor, error) {
	desc := LocaleDescriptor{
		Name:        values[KeyLanguageName],
		EnglishName: values[KeyLanguageNameInEnglish],
		Code:        values[KeyLanguageCode],
	}
	if err := validateDescriptor(desc); err != nil {
		return LocaleDescriptor{}, err
	}
	if !packCodePattern.MatchString(desc.Code) {
		return LocaleDescriptor{}, fmt.Errorf("%w: language code %q", ErrInvalidPack, desc.Code)
	}
	return desc, nil
}
