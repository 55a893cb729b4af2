package driving

import "github.com/custodia-labs/sentinel/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Load builds the effective configuration: defaults, then the config
	// file, then environment overrides.
	Load() (*domain.AppConfig, error)

	// Set writes a single key to the config file after validating it.
	Set(key, value string) error

	// Unset removes a key from the config file.
	Unset(key string) error

	// Entries returns every known key with its effective value.
	// Secrets are masked.
	Entries() ([]SettingEntry, error)

	// Path returns the config file path.
	Path() string
}

// SettingEntry is one configuration key for display.
type SettingEntry struct {
	Key    string
	Value  string
	Source string // "default", "file" or "env"
}
