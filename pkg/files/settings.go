package files

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/quillpad/quill-terminal/pkg/models"
	"gopkg.in/yaml.v3"
)

// ReadSettings loads .quill/settings.yaml. A missing file yields defaults.
func ReadSettings() (*models.Settings, error) {
	path := filepath.Join(QuillDir, SettingsFile)

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.DefaultSettings(), nil
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	settings := models.DefaultSettings()
	if err := yaml.Unmarshal(content, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings YAML: %w", err)
	}
	settings.Merge()

	return settings, nil
}

func WriteSettings(settings *models.Settings) error {
	path := filepath.Join(QuillDir, SettingsFile)

	if err := os.MkdirAll(QuillDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory for settings: %w", err)
	}

	content, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings to YAML: %w", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	return nil
}
