package entities

import (
	logger "github.com/sirupsen/logrus"
	"go.uber.org/dig"
)

// RegisterProviders registers all entity providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	return container.Provide(LoadSettings)
}

// LoadSettings resolves the process-wide settings: the first discovered
// config file, or the defaults when none exists or the file is unusable.
func LoadSettings() *Settings {
	path, err := FindConfigFile()
	if err != nil {
		logger.Debugf("No config file found, using defaults: %v", err)
		return DefaultSettings()
	}

	settings, err := NewSettings(path)
	if err != nil {
		logger.Warnf("Failed to load config %q, using defaults: %v", path, err)
		return DefaultSettings()
	}

	logger.Infof("Using config file: %s", path)
	return settings
}
