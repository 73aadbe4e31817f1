// Package documents provides the built-in document providers.
//
// Providers:
//   - root: one Markdown output file
//   - container: a titled group of sections
//   - template: a templated Markdown fragment, inline or from a file
//   - toc: a numbered table of contents over one or more root documents
//   - header, footer: blocks the root provider injects around its sections
package documents
