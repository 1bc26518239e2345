package files

import (
	"fmt"
	"os"

	"github.com/xedit/xedit-cli/pkg/models"
	"gopkg.in/yaml.v3"
)

// SettingsFile is the per-directory configuration file name.
const SettingsFile = ".xedit.yaml"

// ReadSettings loads settings from the current directory. A missing file
// yields the defaults; any present field overrides its default.
func ReadSettings() (*models.Settings, error) {
	data, err := os.ReadFile(SettingsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return models.DefaultSettings(), nil
		}
		return nil, fmt.Errorf("failed to read settings %s: %w", SettingsFile, err)
	}

	settings := models.DefaultSettings()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings YAML %s: %w", SettingsFile, err)
	}
	return settings, nil
}

// WriteSettings persists settings to the current directory.
func WriteSettings(settings *models.Settings) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings to YAML: %w", err)
	}
	if err := os.WriteFile(SettingsFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings %s: %w", SettingsFile, err)
	}
	return nil
}
