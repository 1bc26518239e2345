package cli

import (
	"github.com/xedit/xedit-cli/pkg/files"
	"github.com/xedit/xedit-cli/pkg/models"
)

// LoadSettingsWithDefault loads settings, falling back to defaults when the
// settings file is missing or unreadable.
func LoadSettingsWithDefault() *models.Settings {
	settings, err := files.ReadSettings()
	if err != nil {
		settings = models.DefaultSettings()
	}
	return settings
}
