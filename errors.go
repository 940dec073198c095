package l10n

import "errors"

var (
	// ErrInvalidPack indicates a translation pack without the required
	// metadata keys or with reserved characters in them.
	ErrInvalidPack = errors.New("l10n: invalid translation pack")

	// ErrMalformedPack indicates pack content that could not be decoded.
	ErrMalformedPack = errors.New("l10n: malformed translation pack")

	// ErrUnsupportedFormat indicates a pack file extension with no decoder.
	ErrUnsupportedFormat = errors.New("l10n: unsupported pack format")

	// ErrIO wraps filesystem failures while reading or copying packs.
	ErrIO = errors.New("l10n: io failure")

	// ErrMalformedRecord marks a persisted locale record that was skipped.
	ErrMalformedRecord = errors.New("l10n: malformed persisted record")

	// ErrNotFound indicates a locale that is not installed.
	ErrNotFound = errors.New("l10n: locale not found")

	// ErrBuiltinLocale indicates an attempt to uninstall a built-in locale.
	ErrBuiltinLocale = errors.New("l10n: built-in locale cannot be removed")
)

// sentinelPrefix marks strings returned when resolution or formatting
// failed. Callers render them as is.
const sentinelPrefix = "LOC_ERR:"

func sentinel(key string) string {
	return sentinelPrefix + key
}

// IsSentinel reports whether s is a failure marker returned by a lookup or
// formatting call.
func IsSentinel(s string) bool {
	return len(s) >= len(sentinelPrefix) && s[:len(sentinelPrefix)] == sentinelPrefix
}
