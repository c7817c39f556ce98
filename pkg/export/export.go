package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/quillpad/quill-terminal/pkg/editor"
)

// Format is an export target
type Format string

const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

// Extension returns the usual file extension for the format
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatText:
		return ".txt"
	}
	return ".html"
}

// ParseFormat accepts the format names and their common aliases
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "md", "markdown":
		return FormatMarkdown, nil
	case "html", "htm":
		return FormatHTML, nil
	case "text", "txt", "plain":
		return FormatText, nil
	}
	return "", fmt.Errorf("unknown export format %q (use markdown, html or text)", s)
}

// Exporter converts post content to other formats
type Exporter struct {
	md *converter.Converter
}

func New() *Exporter {
	return &Exporter{
		md: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

// Markdown converts editor HTML to CommonMark
func (x *Exporter) Markdown(content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", nil
	}
	out, err := x.md.ConvertString(content)
	if err != nil {
		return "", fmt.Errorf("failed to convert to markdown: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// Text returns the plain text of the content, one line per block
func Text(content string) (string, error) {
	doc, err := editor.ParseDocument(content)
	if err != nil {
		return "", err
	}
	return doc.Text(), nil
}

// Page wraps content in a standalone HTML page
func Page(title, content string) string {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&sb, "<title>%s</title>\n", html.EscapeString(title))
	sb.WriteString("</head>\n<body>\n<article>\n")
	sb.WriteString(content)
	sb.WriteString("\n</article>\n</body>\n</html>\n")
	return sb.String()
}

// Export renders content in the requested format
func (x *Exporter) Export(title, content string, f Format) (string, error) {
	switch f {
	case FormatMarkdown:
		md, err := x.Markdown(content)
		if err != nil {
			return "", err
		}
		if title != "" {
			md = "# " + title + "\n\n" + md
		}
		return md + "\n", nil
	case FormatText:
		text, err := Text(content)
		if err != nil {
			return "", err
		}
		return text + "\n", nil
	case FormatHTML:
		return Page(title, content), nil
	}
	return "", fmt.Errorf("unknown export format %q", string(f))
}
