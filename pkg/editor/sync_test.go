package editor

import (
	"strings"
	"testing"
)

func TestShouldOverwrite(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		current  string
		focused  bool
		expected bool
	}{
		{
			name:     "identical value",
			incoming: "<p>Hello</p>",
			current:  "<p>Hello</p>",
			focused:  true,
			expected: false,
		},
		{
			name:     "not focused always replaces",
			incoming: "<p>Hello</p>",
			current:  "<p>Hell</p>",
			focused:  false,
			expected: true,
		},
		{
			name:     "echo of typing while focused",
			incoming: "<p>Hello</p>",
			current:  "<p>Hell</p>",
			focused:  true,
			expected: false,
		},
		{
			name:     "empty value while focused",
			incoming: "",
			current:  "<p>Hello</p>",
			focused:  true,
			expected: true,
		},
		{
			name:     "large jump while focused",
			incoming: "<p>A completely different document</p>",
			current:  "<p>Hello</p>",
			focused:  true,
			expected: true,
		},
		{
			name:     "delta at threshold is an echo",
			incoming: "<p>0123456789</p>",
			current:  "<p></p>",
			focused:  true,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShouldOverwrite(tt.incoming, tt.current, tt.focused, DefaultEchoThreshold)
			if got != tt.expected {
				t.Errorf("ShouldOverwrite() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestSetValue_EchoSuppressedWhileFocused(t *testing.T) {
	e, rec := newTestEditor(t, "<p>Hell</p>")
	e.Focus()
	caret := e.Selection()

	replaced, err := e.SetValue("<p>Hello</p>")
	if err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}
	if replaced {
		t.Error("echo should not replace the document")
	}
	assertHTML(t, e, "<p>Hell</p>")
	if e.Selection() != caret {
		t.Error("caret moved on a suppressed echo")
	}
	if len(rec.values) != 0 {
		t.Errorf("SetValue emitted %d values", len(rec.values))
	}
}

func TestSetValue_ReplacesWhenBlurred(t *testing.T) {
	e, rec := newTestEditor(t, "<p>Hell</p>")

	replaced, err := e.SetValue("<p>Hello</p>")
	if err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}
	if !replaced {
		t.Error("expected replace while blurred")
	}
	assertHTML(t, e, "<p>Hello</p>")
	if !e.Selection().IsZero() {
		t.Error("blurred overwrite should clear the selection")
	}
	if len(rec.values) != 0 {
		t.Errorf("SetValue emitted %d values", len(rec.values))
	}
}

func TestSetValue_EmptyClearsWhileFocused(t *testing.T) {
	e, _ := newTestEditor(t, "<p>Some text</p>")
	e.Focus()

	replaced, err := e.SetValue("")
	if err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}
	if !replaced {
		t.Fatal("empty value should clear the document")
	}
	assertHTML(t, e, "")
	if !e.Snapshot().InRoot {
		t.Error("focused editor should keep a caret in the root")
	}
}

func TestReplace(t *testing.T) {
	e, rec := newTestEditor(t, "<p>a</p>")
	e.Focus()

	if err := e.Replace("<p>b</p>"); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	assertHTML(t, e, "<p>b</p>")
	want := Position{Node: textOf(t, e, 0), Offset: 1}
	if e.Selection().Anchor != want {
		t.Error("focused Replace should put the caret at the end")
	}
	if len(rec.values) != 0 {
		t.Errorf("Replace emitted %d values", len(rec.values))
	}
}

func TestReplace_ClosesMenusAndDrag(t *testing.T) {
	e, _ := newTestEditor(t, "<p>hello world</p>")
	e.Select(Range(textOf(t, e, 0), 0, textOf(t, e, 0), 5))
	e.DragStart(blockAt(t, e, 0))

	if err := e.Replace("<p>other</p>"); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if _, ok := e.Menu().(MenuClosed); !ok {
		t.Errorf("Menu() = %T, expected MenuClosed", e.Menu())
	}
	if _, ok := e.Drag().(DragIdle); !ok {
		t.Errorf("Drag() = %T, expected DragIdle", e.Drag())
	}
}

func TestComputeStats(t *testing.T) {
	tests := []struct {
		name    string
		content string
		words   int
		minutes int
	}{
		{name: "empty", content: "", words: 0, minutes: 0},
		{name: "three words", content: "<p>one two three</p>", words: 3, minutes: 1},
		{name: "blocks separate words", content: "<p>one</p><p>two</p>", words: 2, minutes: 1},
		{name: "inline tags separate words", content: "<p>one<b>two</b></p>", words: 2, minutes: 1},
		{name: "rounds up", content: "<p>" + strings.Repeat("word ", 201) + "</p>", words: 201, minutes: 2},
		{name: "exactly one minute", content: "<p>" + strings.Repeat("word ", 200) + "</p>", words: 200, minutes: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeStats(tt.content)
			if got.Words != tt.words {
				t.Errorf("Words = %d, expected %d", got.Words, tt.words)
			}
			if got.ReadingMinutes != tt.minutes {
				t.Errorf("ReadingMinutes = %d, expected %d", got.ReadingMinutes, tt.minutes)
			}
		})
	}
}
