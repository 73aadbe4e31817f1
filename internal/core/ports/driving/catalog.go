package driving

// ProviderCatalog lists the registered provider types.
type ProviderCatalog interface {
	// DocumentTypes returns registered document provider types.
	DocumentTypes() []string

	// TaskTypes returns registered task types.
	TaskTypes() []string
}
