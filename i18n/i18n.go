// Package i18n localizes cctr's own user-facing strings.
//
// It wraps the gotext library to provide a simple T() function. Translations
// are embedded in the binary via //go:embed and loaded at startup via Init().
// The package also exposes DetectLanguage, which settings reuses to derive
// the default native language on first run.
package i18n

import (
	"embed"
	"os"
	"strings"

	"github.com/leonelquinteros/gotext"
)

// locales embeds the translation catalogs.
// Directory structure: locales/{lang}/LC_MESSAGES/cctr.po
//
//go:embed all:locales
var locales embed.FS

// domain is the gettext domain name for cctr.
const domain = "cctr"

var po *gotext.Locale

// Init initializes the i18n system. If lang is empty, it auto-detects from
// the environment (LANGUAGE > LC_ALL > LC_MESSAGES > LANG, matching GNU
// gettext). Call once at program startup, before any T() calls.
func Init(lang string) {
	if lang == "" {
		lang = DetectLanguage()
	}

	po = gotext.NewLocaleFSWithPath(lang, locales, "locales")
	po.AddDomain(domain)
	po.SetDomain(domain)
}

// T translates a string. If no translation is available, returns the
// original string unchanged (standard gettext passthrough behavior).
func T(msgid string) string {
	if po == nil {
		return msgid
	}
	return po.Get(msgid)
}

// DetectLanguage reads environment variables to determine the user's
// preferred language, following GNU gettext conventions. The result keeps
// its locale suffix ("ja_JP"); use BaseCode to reduce it to a bare code.
func DetectLanguage() string {
	// GNU gettext priority: LANGUAGE > LC_ALL > LC_MESSAGES > LANG
	for _, env := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		if val := os.Getenv(env); val != "" {
			// LANGUAGE can be a colon-separated list; take the first
			if env == "LANGUAGE" {
				parts := strings.SplitN(val, ":", 2)
				val = parts[0]
			}
			// Strip encoding suffix (e.g. "ja_JP.UTF-8" -> "ja_JP")
			if idx := strings.IndexByte(val, '.'); idx >= 0 {
				val = val[:idx]
			}
			// "C" and "POSIX" mean no translation
			if val == "C" || val == "POSIX" || val == "" {
				continue
			}
			return val
		}
	}
	return "en"
}

// BaseCode reduces a locale identifier to its bare language code:
// "ja_JP" -> "ja", "pt-BR" -> "pt", "en" -> "en".
func BaseCode(locale string) string {
	locale = strings.TrimSpace(locale)
	if idx := strings.IndexAny(locale, "_-"); idx >= 0 {
		locale = locale[:idx]
	}
	if locale == "" {
		return "en"
	}
	return strings.ToLower(locale)
}
