package driven

import "github.com/custodia-labs/brander/internal/core/domain"

// ConfigLoader provides access to the brander configuration.
// Implementations handle file formats (TOML, YAML, JSON) and discovery.
type ConfigLoader interface {
	// Load reads the configuration at path. An empty path searches the
	// working directory for a default configuration file.
	Load(path string) (*domain.Config, error)
}
