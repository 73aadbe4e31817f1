// Package tasks provides the built-in asset tasks: clean, convert, optimize
// and package.
//
// Tasks are stateless between runs apart from a per-run counter that
// BeforeAll resets and AfterAll reports.
package tasks
