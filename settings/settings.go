// Package settings stores the user's cctr preferences.
//
// Preferences live in a small YAML file in the XDG config directory:
//
//	$XDG_CONFIG_HOME/cctr/config.yaml  (default: ~/.config/cctr/config.yaml)
//
// Two keys are persisted:
//   - native_language — language code used to decide auto-translate direction
//   - default_model   — model name or alias used when --model is not given
//
// The file is created with system-derived defaults on first load. Every Set*
// call persists immediately; the tool is single-instance and single-user, so
// no locking is needed.
package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cctr-tools/cctr/i18n"
)

const (
	configDirName = "cctr"
	fileName      = "config.yaml"

	keyNativeLanguage = "native_language"
	keyDefaultModel   = "default_model"

	defaultModel = "haiku"
)

// configDir returns the XDG config directory for cctr.
// Respects $XDG_CONFIG_HOME (falls back to ~/.config).
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, configDirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", configDirName), nil
}

func filePath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// SystemLanguage returns the bare language code derived from the user's
// locale environment ("ja_JP.UTF-8" -> "ja"), falling back to "en".
func SystemLanguage() string {
	return i18n.BaseCode(i18n.DetectLanguage())
}

// Config is the loaded preference store. Values are kept as a flat string
// map so unknown keys written by newer versions survive a load/save cycle.
type Config struct {
	path   string
	values map[string]string
}

// Load reads the config file, creating it with system-derived defaults if it
// does not exist yet.
func Load() (*Config, error) {
	path, err := filePath()
	if err != nil {
		return nil, err
	}

	cfg := &Config{path: path, values: make(map[string]string)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg.values[keyNativeLanguage] = SystemLanguage()
		cfg.values[keyDefaultModel] = defaultModel
		if err := cfg.save(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg.values); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if cfg.values == nil {
		cfg.values = make(map[string]string)
	}

	return cfg, nil
}

func (c *Config) save() error {
	data, err := yaml.Marshal(c.values)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// FilePath returns the config file location for display purposes.
func (c *Config) FilePath() string {
	return c.path
}

// Get returns the value for key, or def when the key is unset.
func (c *Config) Get(key, def string) string {
	if v, ok := c.values[key]; ok && v != "" {
		return v
	}
	return def
}

// Set stores a value and persists the file immediately.
func (c *Config) Set(key, value string) error {
	c.values[key] = value
	return c.save()
}

// NativeLanguage returns the configured native language, falling back to the
// system locale language when unset.
func (c *Config) NativeLanguage() string {
	return c.Get(keyNativeLanguage, SystemLanguage())
}

// SetNativeLanguage persists a new native language.
func (c *Config) SetNativeLanguage(lang string) error {
	return c.Set(keyNativeLanguage, lang)
}

// DefaultModel returns the configured default model alias or name.
func (c *Config) DefaultModel() string {
	return c.Get(keyDefaultModel, defaultModel)
}

// SetDefaultModel persists a new default model.
func (c *Config) SetDefaultModel(model string) error {
	return c.Set(keyDefaultModel, model)
}
