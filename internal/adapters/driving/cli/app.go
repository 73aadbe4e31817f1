package cli

import (
	"errors"

	"github.com/custodia-labs/brander/internal/core/ports/driving"
)

// Session is a loaded configuration and the generator bound to it.
type Session struct {
	Brander    driving.Brander
	ConfigPath string
}

// AppConfig holds the services the commands run against.
type AppConfig struct {
	// Open loads the configuration at path, or the default file when path
	// is empty.
	Open func(path string) (*Session, error)

	// Catalog lists the registered providers.
	Catalog driving.ProviderCatalog

	// InitConfig writes a starter configuration into dir and returns its
	// path.
	InitConfig func(dir string, force bool) (string, error)
}

// appConfig holds the current application wiring.
var appConfig *AppConfig

// SetAppConfig sets the services used by the commands.
func SetAppConfig(config *AppConfig) {
	appConfig = config
}

var errNotConfigured = errors.New("brander not configured")

func openSession() (*Session, error) {
	if appConfig == nil || appConfig.Open == nil {
		return nil, errNotConfigured
	}
	return appConfig.Open(configPath)
}
