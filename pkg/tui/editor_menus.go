package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"

	"github.com/quillpad/quill-terminal/pkg/editor"
)

const (
	slashMenuWidth  = 34
	slashMenuRows   = 8
	bubbleMenuWidth = 64
)

// bubbleKeys are the single-key shortcuts of the format bubble
var bubbleKeys = map[string]editor.Command{
	"b": editor.CmdBold,
	"i": editor.CmdItalic,
	"s": editor.CmdStrike,
	"c": editor.CmdCode,
	"h": editor.CmdHighlight,
	"f": editor.CmdFontCycle,
	"1": editor.CmdHeading1,
	"2": editor.CmdHeading2,
	"3": editor.CmdHeading3,
	"p": editor.CmdParagraph,
	"l": editor.CmdBulletList,
	"o": editor.CmdNumberedList,
	"[": editor.CmdAlignLeft,
	"|": editor.CmdAlignCenter,
	"]": editor.CmdAlignRight,
	"=": editor.CmdAlignJustify,
}

// slashQuery is the text typed after the "/" that opened the menu
func slashQuery(textBeforeCaret string) string {
	i := strings.LastIndex(textBeforeCaret, "/")
	if i < 0 {
		return ""
	}
	return textBeforeCaret[i+1:]
}

// filterSlashItems keeps the entries whose id or label contains query
func filterSlashItems(items []editor.SlashItem, query string) []editor.SlashItem {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return items
	}
	var out []editor.SlashItem
	for _, item := range items {
		if strings.Contains(item.ID, query) || strings.Contains(strings.ToLower(item.Label), query) {
			out = append(out, item)
		}
	}
	return out
}

func (m *EditorModel) slashMatches() ([]editor.SlashItem, string) {
	query := slashQuery(m.editor.Snapshot().TextBeforeCaret)
	return filterSlashItems(editor.SlashItems(), query), query
}

// handleSlashKey drives the open slash menu. It reports whether the key
// was consumed; other keys keep editing the filter text.
func (m *EditorModel) handleSlashKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	items, query := m.slashMatches()
	switch msg.String() {
	case "up", "ctrl+p":
		if m.slashIndex > 0 {
			m.slashIndex--
		}
		return true, nil
	case "down", "ctrl+n":
		if m.slashIndex < len(items)-1 {
			m.slashIndex++
		}
		return true, nil
	case "esc":
		m.editor.Dismiss()
		m.slashIndex = 0
		return true, nil
	case "enter", "tab":
		if len(items) == 0 {
			m.editor.Dismiss()
			return true, nil
		}
		item := items[min(m.slashIndex, len(items)-1)]
		m.slashIndex = 0
		return true, m.applySlashItem(item, query)
	}
	m.slashIndex = 0
	return false, nil
}

// applySlashItem removes the filter text, then runs the entry
func (m *EditorModel) applySlashItem(item editor.SlashItem, query string) tea.Cmd {
	m.begin("insert " + strings.ToLower(item.Label))
	for range []rune(query) {
		m.editor.DeleteBackward()
	}
	req, err := m.editor.ApplySlashItem(item.ID)
	if err != nil {
		return m.status.ShowError(fmt.Sprintf("Cannot insert %s: %v", item.Label, err))
	}
	return m.handleHostRequest(req)
}

// handleBubbleKey applies a format bubble shortcut
func (m *EditorModel) handleBubbleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	key := msg.String()
	if cmd, ok := bubbleKeys[key]; ok {
		m.begin(string(cmd))
		m.editor.Exec(cmd)
		return true, nil
	}
	switch key {
	case "a":
		if m.ai == nil {
			return true, m.status.ShowWarning(aiUnavailable)
		}
		if m.editor.OpenAIPrompt() {
			m.prompt = promptRewrite
			m.input.Reset()
			m.input.Placeholder = promptRewrite.placeholder()
			return true, m.input.Focus()
		}
		return true, nil
	case "r":
		return true, m.startRewrite(editor.ActionImprove, "")
	case "t":
		return true, m.startRewrite(editor.ActionShorten, "")
	case "esc":
		m.editor.Dismiss()
		return true, nil
	}
	return false, nil
}

func (m *EditorModel) renderSlashMenu() string {
	items, query := m.slashMatches()
	inner := slashMenuWidth - 2

	var lines []string
	if len(items) == 0 {
		lines = append(lines, DescriptionStyle.Render(fmt.Sprintf("No blocks match %q", query)))
	}
	start := 0
	if m.slashIndex >= slashMenuRows {
		start = m.slashIndex - slashMenuRows + 1
	}
	for i := start; i < len(items) && i < start+slashMenuRows; i++ {
		item := items[i]
		label := fmt.Sprintf("%-14s", item.Label)
		desc := truncate.StringWithTail(item.Description, uint(max(0, inner-17)), "…")
		if i == m.slashIndex {
			lines = append(lines, SelectedStyle.Render("▸ "+label+" ")+DescriptionStyle.Render(desc))
			continue
		}
		lines = append(lines, MenuItemStyle.Render("  "+label+" ")+DescriptionStyle.Render(desc))
	}
	return MenuStyle.Width(inner).Render(strings.Join(lines, "\n"))
}

func (m *EditorModel) renderBubbleMenu(mode editor.BubbleMode) string {
	inner := bubbleMenuWidth - 2
	var lines []string
	switch mode {
	case editor.ModeFormat:
		lines = []string{
			bubbleHints("b", "bold", "i", "italic", "s", "strike", "c", "code", "h", "mark", "f", "font"),
			bubbleHints("1-3", "heading", "p", "text", "l", "list", "o", "numbered", "[|]=", "align"),
			bubbleHints("a", "ask AI", "r", "improve", "t", "shorten", "esc", "close"),
		}
	case editor.ModeAIPrompt:
		lines = []string{MenuKeyStyle.Render(promptRewrite.label()) + " " + m.input.View()}
	case editor.ModeAILoading:
		lines = []string{PlaceholderStyle.Render("◌ AI is rewriting the selection…")}
	}
	for i, line := range lines {
		if ansi.PrintableRuneWidth(line) > inner {
			lines[i] = truncate.String(line, uint(inner))
		}
	}
	return MenuStyle.Width(inner).Render(strings.Join(lines, "\n"))
}

// bubbleHints renders key/label pairs
func bubbleHints(pairs ...string) string {
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, MenuKeyStyle.Render(pairs[i])+" "+MenuItemStyle.Render(pairs[i+1]))
	}
	return strings.Join(parts, DescriptionStyle.Render(" · "))
}

// overlay draws box over lines with its top-left corner at x, y
func overlay(lines []string, box string, x, y int) {
	x = max(0, x)
	for i, boxLine := range strings.Split(box, "\n") {
		row := y + i
		if row < 0 || row >= len(lines) {
			continue
		}
		left := truncate.String(lines[row], uint(x))
		if w := ansi.PrintableRuneWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		lines[row] = left + boxLine
	}
}
