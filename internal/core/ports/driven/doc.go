// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - DocumentProvider: Builds and renders one document type
//   - Task: Executes one asset task type
//   - FileSystem: Reads, writes and globs files
//   - Templater: Evaluates string templates
//   - ConfigLoader: Loads the brander configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - VCSResolver: Resolves the repository URL. Without it, the
//     "repository" attribute comes from the configuration only.
//   - RepositoryEnricher: Fetches hosted repository metadata.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, provider or task package
package driven
