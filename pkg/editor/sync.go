package editor

import (
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// WordsPerMinute is the reading speed behind ReadingMinutes
const WordsPerMinute = 200

// ShouldOverwrite decides whether an incoming content value replaces what
// the surface currently shows. While the user is typing (focused) the host
// echoes every keystroke back; those echoes differ from the live content by
// a character or two and must be ignored or the caret would jump. An empty
// value or a large length jump means somebody else replaced the document.
func ShouldOverwrite(incoming, current string, focused bool, threshold int) bool {
	if incoming == current {
		return false
	}
	if !focused {
		return true
	}
	if incoming == "" {
		return true
	}
	delta := len(incoming) - len(current)
	if delta < 0 {
		delta = -delta
	}
	return delta > threshold
}

// SetValue reconciles a host-supplied value with the live document. It
// reports whether the document was overwritten. It never calls OnChange.
func (e *Editor) SetValue(content string) (bool, error) {
	current := e.doc.HTML()
	if !ShouldOverwrite(content, current, e.focused, e.opts.EchoThreshold) {
		return false, nil
	}
	if err := e.overwrite(content); err != nil {
		return false, err
	}
	e.log.Debug("content overwritten from host",
		zap.Int("incoming_len", len(content)),
		zap.Int("current_len", len(current)),
		zap.Bool("focused", e.focused))
	return true, nil
}

// Replace overwrites the document unconditionally. Hosts use it when they
// know the value is an external update, e.g. an undo or an AI draft.
// It never calls OnChange.
func (e *Editor) Replace(content string) error {
	if content == e.doc.HTML() {
		return nil
	}
	return e.overwrite(content)
}

func (e *Editor) overwrite(content string) error {
	if err := loadInto(e.doc.root, content); err != nil {
		return err
	}
	// Whatever the old selection pointed at is gone.
	e.drag = DragIdle{}
	if e.rewrite == nil {
		e.menu = MenuClosed{}
	}
	if e.focused {
		e.placeCaret(e.endPosition())
	} else {
		e.sel = Selection{}
	}
	return nil
}

// Stats are values derived from the content string
type Stats struct {
	Words          int `json:"words" yaml:"words"`
	ReadingMinutes int `json:"reading_minutes" yaml:"reading_minutes"`
}

// ComputeStats counts words in the text of an HTML string, treating tags as
// separators, and estimates reading time at WordsPerMinute rounded up.
func ComputeStats(content string) Stats {
	words := CountWords(content)
	return Stats{
		Words:          words,
		ReadingMinutes: (words + WordsPerMinute - 1) / WordsPerMinute,
	}
}

// CountWords counts whitespace separated words in the text of an HTML string
func CountWords(content string) int {
	if strings.TrimSpace(content) == "" {
		return 0
	}
	nodes, err := parseFragment(content)
	if err != nil {
		return len(strings.Fields(content))
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		sb.WriteByte(' ')
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		sb.WriteByte(' ')
	}
	for _, n := range nodes {
		walk(n)
	}
	return len(strings.Fields(sb.String()))
}
