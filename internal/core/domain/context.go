package domain

import "strings"

// Context is the base of every parsed configuration entry.
// The data is a private deep copy so providers cannot corrupt the source
// configuration, and the type never changes after construction.
type Context struct {
	typ    string
	data   Data
	config *Config
}

func newContext(typ string, data Data, cfg *Config) Context {
	return Context{
		typ:    strings.ToLower(strings.TrimSpace(typ)),
		data:   data.Clone(),
		config: cfg,
	}
}

// Type returns the normalised provider type of the context.
func (c *Context) Type() string {
	return c.typ
}

// Data returns a copy of the entry data.
func (c *Context) Data() Data {
	return c.data.Clone()
}

// String reads a string field without copying the entry.
func (c *Context) String(key string) string {
	return c.data.String(key)
}

// Config returns the configuration the context was parsed against.
func (c *Context) Config() *Config {
	return c.config
}
