package services

import (
	"github.com/custodia-labs/brander/internal/core/ports/driven"
	"github.com/custodia-labs/brander/internal/core/ports/driving"
)

// Ensure Catalog implements the interface.
var _ driving.ProviderCatalog = (*Catalog)(nil)

// Catalog lists the types registered in the document and task registries.
type Catalog struct {
	documents *Registry[driven.DocumentProvider]
	tasks     *Registry[driven.Task]
}

// NewCatalog creates a catalog over both registries.
func NewCatalog(documents *Registry[driven.DocumentProvider], tasks *Registry[driven.Task]) *Catalog {
	return &Catalog{documents: documents, tasks: tasks}
}

// DocumentTypes returns registered document provider types.
func (c *Catalog) DocumentTypes() []string {
	return c.documents.Types()
}

// TaskTypes returns registered task types.
func (c *Catalog) TaskTypes() []string {
	return c.tasks.Types()
}
