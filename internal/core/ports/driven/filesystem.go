package driven

// FileSystem provides the raw file primitives used by providers and tasks.
type FileSystem interface {
	// ReadFile reads a whole file.
	ReadFile(path string) ([]byte, error)

	// WriteFile replaces a file, creating parent directories as needed.
	WriteFile(path string, data []byte) error

	// WriteString replaces a file with a string.
	WriteString(path, content string) error

	// Remove deletes a file or directory tree. Missing paths are not an error.
	Remove(path string) error

	// Glob expands patterns relative to baseDir. Results are files only,
	// sorted and de-duplicated. Patterns support "**".
	Glob(baseDir string, patterns []string) ([]string, error)
}
