package driving

import "context"

// GenerateOptions selects which phases of a generation run.
type GenerateOptions struct {
	// SkipAssets skips the task phase.
	SkipAssets bool

	// SkipDocs skips the document phase.
	SkipDocs bool
}

// Brander generates assets and documentation from the configuration.
type Brander interface {
	// Generate runs the task phase then the document phase. Each phase
	// parses every context before running any of them.
	Generate(ctx context.Context, opts GenerateOptions) error
}
