package editor

import "testing"

func TestParseDocument(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
		{
			name:     "blocks kept",
			input:    "<h1>Title</h1><p>Body</p>",
			expected: "<h1>Title</h1><p>Body</p>",
		},
		{
			name:     "loose inline content is wrapped",
			input:    "hello <b>x</b><p>y</p>",
			expected: "<p>hello <b>x</b></p><p>y</p>",
		},
		{
			name:     "whitespace between blocks dropped",
			input:    "  \n<p>a</p>\n  <p>b</p>\n",
			expected: "<p>a</p><p>b</p>",
		},
		{
			name:     "comments dropped",
			input:    "<!-- note --><hr>",
			expected: "<hr/>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseDocument(tt.input)
			if err != nil {
				t.Fatalf("ParseDocument failed: %v", err)
			}
			if got := doc.HTML(); got != tt.expected {
				t.Errorf("HTML() = %q, expected %q", got, tt.expected)
			}
			for _, b := range doc.Blocks() {
				if b.Parent != doc.Root() {
					t.Errorf("block %q is not a direct child of the root", b.Data)
				}
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		input    string
		expected BlockKind
	}{
		{"<p>x</p>", KindParagraph},
		{"<h3>x</h3>", KindHeading},
		{"<ul><li>x</li></ul>", KindList},
		{"<ol><li>x</li></ol>", KindList},
		{"<blockquote>x</blockquote>", KindQuote},
		{`<div class="callout">x</div>`, KindCallout},
		{"<pre><code>x</code></pre>", KindCode},
		{"<figure><img src=\"a.png\"></figure>", KindImage},
		{`<div class="gallery"><img src="a.png"></div>`, KindGallery},
		{"<hr>", KindDivider},
		{`<div class="video-embed"><iframe src="x"></iframe></div>`, KindVideo},
		{"<table><tr><td>x</td></tr></table>", KindOther},
	}

	for _, tt := range tests {
		t.Run(string(tt.expected)+" "+tt.input, func(t *testing.T) {
			doc, err := ParseDocument(tt.input)
			if err != nil {
				t.Fatalf("ParseDocument failed: %v", err)
			}
			blocks := doc.Blocks()
			if len(blocks) != 1 {
				t.Fatalf("expected 1 block, got %d", len(blocks))
			}
			if got := KindOf(blocks[0]); got != tt.expected {
				t.Errorf("KindOf() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestHeadingLevel(t *testing.T) {
	doc, _ := ParseDocument("<h2>a</h2><p>b</p>")
	blocks := doc.Blocks()
	if got := HeadingLevel(blocks[0]); got != 2 {
		t.Errorf("HeadingLevel(h2) = %d, expected 2", got)
	}
	if got := HeadingLevel(blocks[1]); got != 0 {
		t.Errorf("HeadingLevel(p) = %d, expected 0", got)
	}
}

func TestDocumentText(t *testing.T) {
	doc, _ := ParseDocument("<h1>Title</h1><p>Some <em>body</em></p>")
	if got := doc.Text(); got != "Title\nSome body" {
		t.Errorf("Text() = %q", got)
	}
}

func TestDocumentTitle(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{name: "first heading", content: "<p>intro</p><h2> Part one </h2><h1>Later</h1>", expected: "Part one"},
		{name: "no heading", content: "<p>just text</p>", expected: ""},
		{name: "empty", content: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDocument(tt.content)
			if err != nil {
				t.Fatalf("ParseDocument failed: %v", err)
			}
			if got := d.Title(); got != tt.expected {
				t.Errorf("Title() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestDocumentSetTitle(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		title    string
		expected string
	}{
		{name: "replaces first h1", content: "<h1>Old <em>title</em></h1><p>body</p>", title: "New", expected: "<h1>New</h1><p>body</p>"},
		{name: "inserts h1 on top", content: "<p>body</p>", title: "New", expected: "<h1>New</h1><p>body</p>"},
		{name: "escapes text", content: "", title: "A & B", expected: "<h1>A &amp; B</h1>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := ParseDocument(tt.content)
			d.SetTitle(tt.title)
			if got := d.HTML(); got != tt.expected {
				t.Errorf("HTML() = %q, expected %q", got, tt.expected)
			}
		})
	}
}
