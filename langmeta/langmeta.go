// Package langmeta maps language codes to the display names used when
// instructing the translation agent, plus emoji flags for CLI output.
package langmeta

import "strings"

// Meta describes language display metadata.
type Meta struct {
	Name string
	Flag string
}

// Registry contains the languages the tool knows by name. Codes outside this
// table are passed through verbatim as their own display name.
var Registry = map[string]Meta{
	"en": {Name: "English", Flag: "🇺🇸"},
	"ja": {Name: "Japanese", Flag: "🇯🇵"},
	"zh": {Name: "Chinese", Flag: "🇨🇳"},
	"ko": {Name: "Korean", Flag: "🇰🇷"},
	"es": {Name: "Spanish", Flag: "🇪🇸"},
	"fr": {Name: "French", Flag: "🇫🇷"},
	"de": {Name: "German", Flag: "🇩🇪"},
	"it": {Name: "Italian", Flag: "🇮🇹"},
	"pt": {Name: "Portuguese", Flag: "🇵🇹"},
	"ru": {Name: "Russian", Flag: "🇷🇺"},
}

func canonicalize(lang string) string {
	normalized := strings.ReplaceAll(strings.TrimSpace(lang), "_", "-")
	if normalized == "" {
		return ""
	}
	parts := strings.Split(normalized, "-")
	parts[0] = strings.ToLower(parts[0])
	return strings.Join(parts, "-")
}

// Resolve returns metadata for a language code, handling locale variants
// like ja_JP and pt-BR via base-code fallback. Unknown codes come back
// verbatim with an empty flag.
func Resolve(lang string) Meta {
	if m, ok := Registry[lang]; ok {
		return m
	}
	normalized := canonicalize(lang)
	if m, ok := Registry[normalized]; ok {
		return m
	}
	if parts := strings.SplitN(normalized, "-", 2); len(parts) == 2 {
		if m, ok := Registry[parts[0]]; ok {
			return m
		}
	}
	return Meta{Name: lang, Flag: ""}
}

// Name returns the display name for a language code, falling back to the
// raw code when the language is not in the registry.
func Name(lang string) string {
	return Resolve(lang).Name
}
