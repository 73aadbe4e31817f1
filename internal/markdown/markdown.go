// Package markdown provides the small Markdown fragments brander emits and a
// goldmark-based heading reader for templates.
package markdown

import (
	"net/url"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// HR is a horizontal rule.
const HR = "---"

// Heading returns an ATX heading. Levels are clamped to 1..6.
func Heading(level int, title string) string {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return strings.Repeat("#", level) + " " + title
}

// Link returns an inline link.
func Link(label, target string) string {
	return "[" + escapeLabel(label) + "](" + target + ")"
}

// LinkTarget joins a relative file path and an optional fragment into a
// link target. The path uses forward slashes.
func LinkTarget(path, fragment string) string {
	u := url.URL{Path: path, Fragment: fragment}
	return u.String()
}

func escapeLabel(s string) string {
	r := strings.NewReplacer("[", `\[`, "]", `\]`)
	return r.Replace(s)
}

// Headings lists the text of every heading in src, in document order.
func Headings(src []byte) []HeadingInfo {
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var out []HeadingInfo
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok {
			continue
		}
		out = append(out, HeadingInfo{Level: h.Level, Text: headingText(h, src)})
	}
	return out
}

// HeadingInfo is a heading found in a Markdown source.
type HeadingInfo struct {
	Level int
	Text  string
}

// FirstHeading returns the text of the first heading, or "" when src has
// none.
func FirstHeading(src []byte) string {
	headings := Headings(src)
	if len(headings) == 0 {
		return ""
	}
	return headings[0].Text
}

// headingText concatenates the text segments under a heading, which keeps
// the content of emphasis and code spans but drops their markers.
func headingText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
