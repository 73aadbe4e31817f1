// Package services implements the driving port interfaces.
// Services contain the core pipeline logic and orchestrate
// calls to driven ports (providers, tasks and adapters).
//
// The pipeline runs in two phases per context kind: every entry is parsed
// into contexts first, then the contexts run strictly in order. Tasks go
// before documents.
//
// Services are pure Go with no CGO or external dependencies.
package services
