package driven

// Templater evaluates string templates against variables.
type Templater interface {
	// Render evaluates tmpl. Missing variables render as empty values.
	Render(tmpl string, vars map[string]any) (string, error)
}
