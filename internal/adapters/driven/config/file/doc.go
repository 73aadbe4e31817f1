// Package file loads the brander configuration from the local filesystem.
//
// Supported formats, in default search order:
//   - brander.toml (TOML)
//   - brander.yaml, brander.yml (YAML)
//   - brander.json (JSON)
package file
