package editor

import "testing"

func TestInsertText(t *testing.T) {
	e, rec := newTestEditor(t, "<p>helo</p>")
	text := textOf(t, e, 0)
	e.Select(Caret(text, 3))

	if !e.InsertText("l") {
		t.Fatal("InsertText should change the document")
	}
	assertHTML(t, e, "<p>hello</p>")
	if got := e.Selection().Anchor; got != (Position{Node: text, Offset: 4}) {
		t.Errorf("caret = %+v, expected offset 4", got)
	}
	if rec.last() != "<p>hello</p>" {
		t.Errorf("last emit = %q", rec.last())
	}
}

func TestInsertText_ReplacesRange(t *testing.T) {
	e, _ := newTestEditor(t, "<p>hello world</p>")
	text := textOf(t, e, 0)
	e.Select(Range(text, 0, text, 5))

	e.InsertText("bye")
	assertHTML(t, e, "<p>bye world</p>")
	if !e.Snapshot().Collapsed {
		t.Error("selection should collapse after typing")
	}
}

func TestInsertText_EmptyDocument(t *testing.T) {
	e, _ := newTestEditor(t, "")
	e.Focus()

	e.InsertText("hi")
	assertHTML(t, e, "<p>hi</p>")
}

func TestInsertText_WithoutFocusOrSelection(t *testing.T) {
	e, rec := newTestEditor(t, "<p>a</p>")
	if e.InsertText("x") {
		t.Error("typing without a caret should do nothing")
	}
	if len(rec.values) != 0 {
		t.Error("no-op should not emit")
	}
}

func TestSplitBlock(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		caret    func(e *Editor) Position
		expected string
	}{
		{
			name:    "middle of paragraph",
			content: "<p>helloworld</p>",
			caret: func(e *Editor) Position {
				return Position{Node: e.Root().FirstChild.FirstChild, Offset: 5}
			},
			expected: "<p>hello</p><p>world</p>",
		},
		{
			name:    "end of heading continues as paragraph",
			content: "<h2>Title</h2>",
			caret: func(e *Editor) Position {
				return Position{Node: e.Root().FirstChild.FirstChild, Offset: 5}
			},
			expected: "<h2>Title</h2><p></p>",
		},
		{
			name:    "list item splits into two items",
			content: "<ul><li>ab</li></ul>",
			caret: func(e *Editor) Position {
				return Position{Node: e.Root().FirstChild.FirstChild.FirstChild, Offset: 1}
			},
			expected: "<ul><li>a</li><li>b</li></ul>",
		},
		{
			name:    "empty list item leaves the list",
			content: "<ul><li>a</li><li></li></ul>",
			caret: func(e *Editor) Position {
				return Position{Node: e.Root().FirstChild.LastChild, Offset: 0}
			},
			expected: "<ul><li>a</li></ul><p></p>",
		},
		{
			name:    "code block gets a newline",
			content: "<pre>ab</pre>",
			caret: func(e *Editor) Position {
				return Position{Node: e.Root().FirstChild.FirstChild, Offset: 1}
			},
			expected: "<pre>a\nb</pre>",
		},
		{
			name:    "formatting is carried to the new line",
			content: "<p><em>abcd</em></p>",
			caret: func(e *Editor) Position {
				return Position{Node: e.Root().FirstChild.FirstChild.FirstChild, Offset: 2}
			},
			expected: "<p><em>ab</em></p><p><em>cd</em></p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEditor(t, tt.content)
			p := tt.caret(e)
			e.Select(Selection{Anchor: p, Focus: p})

			if !e.SplitBlock() {
				t.Fatal("SplitBlock should change the document")
			}
			assertHTML(t, e, tt.expected)
		})
	}
}

func TestSplitBlock_CaretMovesToNewLine(t *testing.T) {
	e, _ := newTestEditor(t, "<p>helloworld</p>")
	e.Select(Caret(textOf(t, e, 0), 5))
	e.SplitBlock()

	if e.ActiveBlock() != blockAt(t, e, 1) {
		t.Error("caret should be in the second block")
	}
	if e.Selection().Anchor.Offset != 0 {
		t.Error("caret should be at the start of the new line")
	}
}

func TestDeleteBackward(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		caret    func(e *Editor) Position
		expected string
	}{
		{
			name:    "removes one character",
			content: "<p>abc</p>",
			caret: func(e *Editor) Position {
				return Position{Node: e.Root().FirstChild.FirstChild, Offset: 2}
			},
			expected: "<p>ac</p>",
		},
		{
			name:    "removes a multi-byte rune",
			content: "<p>héllo</p>",
			caret: func(e *Editor) Position {
				return Position{Node: e.Root().FirstChild.FirstChild, Offset: 3}
			},
			expected: "<p>hllo</p>",
		},
		{
			name:    "joins with previous paragraph",
			content: "<p>ab</p><p>cd</p>",
			caret: func(e *Editor) Position {
				return Position{Node: e.Root().LastChild.FirstChild, Offset: 0}
			},
			expected: "<p>abcd</p>",
		},
		{
			name:    "heading at start becomes paragraph",
			content: "<h1>T</h1>",
			caret: func(e *Editor) Position {
				return Position{Node: e.Root().FirstChild.FirstChild, Offset: 0}
			},
			expected: "<p>T</p>",
		},
		{
			name:    "removes divider before the line",
			content: "<hr/><p>x</p>",
			caret: func(e *Editor) Position {
				return Position{Node: e.Root().LastChild.FirstChild, Offset: 0}
			},
			expected: "<p>x</p>",
		},
		{
			name:    "first list item leaves the list",
			content: "<ul><li>a</li></ul>",
			caret: func(e *Editor) Position {
				return Position{Node: e.Root().FirstChild.FirstChild.FirstChild, Offset: 0}
			},
			expected: "<p>a</p>",
		},
		{
			name:    "later list item merges into previous",
			content: "<ul><li>a</li><li>b</li></ul>",
			caret: func(e *Editor) Position {
				return Position{Node: e.Root().FirstChild.LastChild.FirstChild, Offset: 0}
			},
			expected: "<ul><li>ab</li></ul>",
		},
		{
			name:    "character across an inline boundary",
			content: "<p><b>ab</b>cd</p>",
			caret: func(e *Editor) Position {
				return Position{Node: e.Root().FirstChild.LastChild, Offset: 0}
			},
			expected: "<p><b>a</b>cd</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEditor(t, tt.content)
			p := tt.caret(e)
			e.Select(Selection{Anchor: p, Focus: p})

			if !e.DeleteBackward() {
				t.Fatal("DeleteBackward should change the document")
			}
			assertHTML(t, e, tt.expected)
		})
	}
}

func TestDeleteBackward_StartOfDocument(t *testing.T) {
	e, rec := newTestEditor(t, "<p>abc</p>")
	e.Select(Caret(textOf(t, e, 0), 0))

	if e.DeleteBackward() {
		t.Error("backspace at the very start should do nothing")
	}
	if len(rec.values) != 0 {
		t.Error("no-op should not emit")
	}
}

func TestDeleteBackward_Range(t *testing.T) {
	e, _ := newTestEditor(t, "<p>ab</p><p>cd</p><p>ef</p>")
	first := textOf(t, e, 0)
	last := textOf(t, e, 2)
	e.Select(Range(first, 1, last, 1))

	if !e.DeleteBackward() {
		t.Fatal("deleting a range should change the document")
	}
	assertHTML(t, e, "<p>a</p><p>f</p>")
	if got := e.Selection().Anchor; got != (Position{Node: first, Offset: 1}) {
		t.Errorf("caret = %+v, expected end of first line", got)
	}
}

func TestMoveCaret(t *testing.T) {
	e, _ := newTestEditor(t, "<p>ab</p><p>cd</p>")
	first := textOf(t, e, 0)
	second := textOf(t, e, 1)

	e.Select(Caret(first, 2))
	if !e.MoveCaret(Right, false) {
		t.Fatal("MoveCaret(Right) failed")
	}
	if got := e.Selection().Focus; got != (Position{Node: second, Offset: 0}) {
		t.Errorf("after Right: %+v, expected start of second line", got)
	}

	e.Select(Caret(first, 1))
	e.MoveCaret(Down, false)
	if got := e.Selection().Focus; got != (Position{Node: second, Offset: 1}) {
		t.Errorf("after Down: %+v, expected column 1 of second line", got)
	}

	e.MoveCaret(Up, false)
	if got := e.Selection().Focus; got != (Position{Node: first, Offset: 1}) {
		t.Errorf("after Up: %+v, expected column 1 of first line", got)
	}

	e.Select(Caret(first, 0))
	if e.MoveCaret(Left, false) {
		t.Error("moving left from the document start should fail")
	}
}

func TestMoveCaret_Extend(t *testing.T) {
	e, _ := newTestEditor(t, "<p>abc</p>")
	text := textOf(t, e, 0)
	e.Select(Caret(text, 0))

	e.MoveCaret(Right, true)
	e.MoveCaret(Right, true)

	snap := e.Snapshot()
	if snap.Text != "ab" {
		t.Errorf("selected text = %q, expected %q", snap.Text, "ab")
	}
	if _, ok := e.Menu().(BubbleMenu); !ok {
		t.Errorf("Menu() = %T, expected BubbleMenu", e.Menu())
	}

	// Without extend the range collapses at its end.
	e.MoveCaret(Right, false)
	if got := e.Selection(); !got.Collapsed() || got.Anchor.Offset != 2 {
		t.Errorf("selection = %+v, expected caret at offset 2", got)
	}
}

func TestSelectBlock(t *testing.T) {
	e, _ := newTestEditor(t, "<p>one <b>two</b></p>")
	e.Select(Caret(textOf(t, e, 0), 1))

	if !e.SelectBlock() {
		t.Fatal("SelectBlock failed")
	}
	if got := e.Snapshot().Text; got != "one two" {
		t.Errorf("selected text = %q", got)
	}
}

func TestInsertHTML(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		caret    func(e *Editor) (Position, bool)
		fragment string
		expected string
	}{
		{
			name:    "block after active block",
			content: "<p>a</p>",
			caret: func(e *Editor) (Position, bool) {
				return Position{Node: e.Root().FirstChild.FirstChild, Offset: 1}, true
			},
			fragment: "<h2>X</h2>",
			expected: "<p>a</p><h2>X</h2>",
		},
		{
			name:    "block replaces empty active block",
			content: "<p></p><p>b</p>",
			caret: func(e *Editor) (Position, bool) {
				return Position{Node: e.Root().FirstChild, Offset: 0}, true
			},
			fragment: "<h2>X</h2>",
			expected: "<h2>X</h2><p>b</p>",
		},
		{
			name:    "inline at caret",
			content: "<p>ab</p>",
			caret: func(e *Editor) (Position, bool) {
				return Position{Node: e.Root().FirstChild.FirstChild, Offset: 1}, true
			},
			fragment: "<em>X</em>",
			expected: "<p>a<em>X</em>b</p>",
		},
		{
			name:    "single paragraph is inserted inline",
			content: "<p>ab</p>",
			caret: func(e *Editor) (Position, bool) {
				return Position{Node: e.Root().FirstChild.FirstChild, Offset: 1}, true
			},
			fragment: "<p>X</p>",
			expected: "<p>aXb</p>",
		},
		{
			name:    "no selection appends",
			content: "<p>a</p>",
			caret: func(e *Editor) (Position, bool) {
				return Position{}, false
			},
			fragment: "<h2>b</h2>",
			expected: "<p>a</p><h2>b</h2>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, rec := newTestEditor(t, tt.content)
			if p, ok := tt.caret(e); ok {
				e.Select(Selection{Anchor: p, Focus: p})
			}
			if err := e.InsertHTML(tt.fragment); err != nil {
				t.Fatalf("InsertHTML failed: %v", err)
			}
			assertHTML(t, e, tt.expected)
			if rec.last() != tt.expected {
				t.Errorf("last emit = %q, expected %q", rec.last(), tt.expected)
			}
		})
	}
}
