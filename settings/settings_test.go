package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	t.Setenv("LANGUAGE", "")
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "ja_JP.UTF-8")
	return tmp
}

func TestLoadCreatesDefaultsOnFirstRun(t *testing.T) {
	tmp := setupEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	wantPath := filepath.Join(tmp, "cctr", "config.yaml")
	if cfg.FilePath() != wantPath {
		t.Fatalf("FilePath() = %q, want %q", cfg.FilePath(), wantPath)
	}
	if _, err := os.Stat(wantPath); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	if got := cfg.NativeLanguage(); got != "ja" {
		t.Fatalf("NativeLanguage() = %q, want ja (from LANG)", got)
	}
	if got := cfg.DefaultModel(); got != "haiku" {
		t.Fatalf("DefaultModel() = %q, want haiku", got)
	}
}

func TestSetNativeLanguageRoundTrip(t *testing.T) {
	setupEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if err := cfg.SetNativeLanguage("fr"); err != nil {
		t.Fatalf("SetNativeLanguage() error: %v", err)
	}

	reloaded, err := Load()
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	if got := reloaded.NativeLanguage(); got != "fr" {
		t.Fatalf("reloaded NativeLanguage() = %q, want fr", got)
	}
}

func TestSetDefaultModelRoundTrip(t *testing.T) {
	setupEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if err := cfg.SetDefaultModel("sonnet"); err != nil {
		t.Fatalf("SetDefaultModel() error: %v", err)
	}

	reloaded, err := Load()
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	if got := reloaded.DefaultModel(); got != "sonnet" {
		t.Fatalf("reloaded DefaultModel() = %q, want sonnet", got)
	}
}

func TestGetSetPreservesUnknownKeys(t *testing.T) {
	setupEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if err := cfg.Set("future_key", "value"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := cfg.SetNativeLanguage("de"); err != nil {
		t.Fatalf("SetNativeLanguage() error: %v", err)
	}

	reloaded, err := Load()
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	if got := reloaded.Get("future_key", ""); got != "value" {
		t.Fatalf("Get(future_key) = %q, want value", got)
	}
}

func TestGetFallsBackToDefault(t *testing.T) {
	setupEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got := cfg.Get("missing", "fallback"); got != "fallback" {
		t.Fatalf("Get(missing) = %q, want fallback", got)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	tmp := setupEnv(t)

	dir := filepath.Join(tmp, "cctr")
	if err := os.MkdirAll(dir, 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("{not yaml"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load()
	if err == nil {
		t.Fatal("Load() succeeded on malformed YAML")
	}
	if !strings.Contains(err.Error(), "parsing") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSystemLanguageFallsBackToEnglish(t *testing.T) {
	t.Setenv("LANGUAGE", "")
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "")

	if got := SystemLanguage(); got != "en" {
		t.Fatalf("SystemLanguage() = %q, want en", got)
	}
}
