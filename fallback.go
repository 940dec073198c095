package l10n

// ResolveSource tells which link of a FallbackChain produced a value.
type ResolveSource int

const (
	SourceMissing ResolveSource = iota
	SourceOverride
	SourceDefault
	SourceBundle
)

func (s ResolveSource) String() string {
	switch s {
	case SourceOverride:
		return "override"
	case SourceDefault:
		return "default"
	case SourceBundle:
		return "bundle"
	default:
		return "missing"
	}
}

// ChainLink is one step of a FallbackChain. A link with a nil Source and
// SourceDefault kind yields the caller supplied default.
type ChainLink struct {
	Source StringSource
	Kind   ResolveSource
}

// FallbackChain resolves keys through an ordered list of sources and ends
// with a sentinel, so resolution always produces a string.
type FallbackChain struct {
	links []ChainLink
}

func NewFallbackChain(links ...ChainLink) FallbackChain {
	return FallbackChain{links: append([]ChainLink(nil), links...)}
}

// standardChain is override map, caller default, bundle.
func standardChain(overrides *OverrideMap, bundle Bundle) FallbackChain {
	return NewFallbackChain(
		ChainLink{Source: overrides, Kind: SourceOverride},
		ChainLink{Kind: SourceDefault},
		ChainLink{Source: bundleSource{bundle: bundle}, Kind: SourceBundle},
	)
}

// Resolve returns the first value found for key. fallback is used at the
// SourceDefault link when non-empty.
func (c FallbackChain) Resolve(key, fallback string) (string, ResolveSource) {
	for _, link := range c.links {
		if link.Source == nil {
			if link.Kind == SourceDefault && fallback != "" {
				return fallback, SourceDefault
			}
			continue
		}
		if value, ok := link.Source.Lookup(key); ok && value != "" {
			return value, link.Kind
		}
	}
	return sentinel(key), SourceMissing
}

// Lookup resolves key without a caller default.
func (c FallbackChain) Lookup(key string) (string, bool) {
	value, source := c.Resolve(key, "")
	return value, source != SourceMissing
}
