package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeading(t *testing.T) {
	assert.Equal(t, "# Title", Heading(1, "Title"))
	assert.Equal(t, "### Deep", Heading(3, "Deep"))
	assert.Equal(t, "# Low", Heading(0, "Low"))
	assert.Equal(t, "###### Max", Heading(9, "Max"))
}

func TestLink(t *testing.T) {
	assert.Equal(t, "[Intro](README.md#Intro)", Link("Intro", LinkTarget("README.md", "Intro")))
	assert.Equal(t, "[Guide](docs/GUIDE.md)", Link("Guide", LinkTarget("docs/GUIDE.md", "")))
	assert.Equal(t, `[a \[b\]](x.md)`, Link("a [b]", "x.md"))
}

func TestLinkTarget_EscapesSpaces(t *testing.T) {
	assert.Equal(t, "README.md#Getting%20Started", LinkTarget("README.md", "Getting Started"))
	assert.Equal(t, "README.md#Usage-2", LinkTarget("README.md", "Usage-2"))
}

func TestFirstHeading(t *testing.T) {
	src := []byte("Some intro text.\n\n## Usage *quickly*\n\nbody\n\n## Other\n")
	assert.Equal(t, "Usage quickly", FirstHeading(src))

	assert.Equal(t, "", FirstHeading([]byte("no headings here")))
}

func TestHeadings(t *testing.T) {
	src := []byte("# Top\n\ntext\n\n## `code` section\n\nSetext\n------\n")
	headings := Headings(src)

	assert.Equal(t, []HeadingInfo{
		{Level: 1, Text: "Top"},
		{Level: 2, Text: "code section"},
		{Level: 2, Text: "Setext"},
	}, headings)
}
