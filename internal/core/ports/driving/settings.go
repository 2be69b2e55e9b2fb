package driving

import "github.com/custodia-labs/cliprelay/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// Set updates a single setting by its dotted key, e.g. "endpoint.schema".
	Set(key, value string) error

	// SetSchema updates the active wire schema.
	SetSchema(schema domain.SchemaVersion) error

	// Validate checks if current settings can run the relay.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// Keys lists the settable keys.
	Keys() []string
}
