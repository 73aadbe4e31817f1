// Package domain defines the core entities for brander.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Config: the loaded project configuration and its run Scope
//   - Context: a typed, deep-copied configuration entry
//   - DocumentContext: a node in the document tree
//   - TaskContext: one unit of asset work
//   - Scope: the per-run index of every context touched by a generation
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
