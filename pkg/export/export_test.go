package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{input: "", expected: FormatMarkdown},
		{input: "md", expected: FormatMarkdown},
		{input: "Markdown", expected: FormatMarkdown},
		{input: "html", expected: FormatHTML},
		{input: "txt", expected: FormatText},
		{input: "pdf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMarkdown(t *testing.T) {
	x := New()

	md, err := x.Markdown(`<h1>Title</h1><p>Some <strong>bold</strong> text</p><ul><li>one</li><li>two</li></ul>`)
	require.NoError(t, err)
	assert.Contains(t, md, "# Title")
	assert.Contains(t, md, "Some **bold** text")
	assert.Contains(t, md, "one")
	assert.Contains(t, md, "two")
	assert.NotContains(t, md, "<strong>")

	empty, err := x.Markdown("   ")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestExport(t *testing.T) {
	x := New()
	content := "<h2>Intro</h2><p>Hello <em>world</em></p>"

	text, err := x.Export("Post", content, FormatText)
	require.NoError(t, err)
	assert.Equal(t, "Intro\nHello world\n", text)

	page, err := x.Export("A & B", content, FormatHTML)
	require.NoError(t, err)
	assert.Contains(t, page, "<title>A &amp; B</title>")
	assert.Contains(t, page, content)

	md, err := x.Export("Post", content, FormatMarkdown)
	require.NoError(t, err)
	assert.Contains(t, md, "# Post\n\n")
	assert.Contains(t, md, "## Intro")

	_, err = x.Export("Post", content, Format("pdf"))
	assert.Error(t, err)
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".md", FormatMarkdown.Extension())
	assert.Equal(t, ".html", FormatHTML.Extension())
	assert.Equal(t, ".txt", FormatText.Extension())
}
