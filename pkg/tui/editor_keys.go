package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quillpad/quill-terminal/pkg/editor"
	"github.com/quillpad/quill-terminal/pkg/export"
)

// matches reports whether key is the shortcut on this OS or its default
func matches(key string, s ShortcutKey) bool {
	return key == s.Get() || key == s.Default
}

func (m *EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	case ClearStatusMsg:
		m.status.Clear()
		return m, nil
	case rewriteDoneMsg:
		cmd = m.finishRewrite(msg)
	case imageDoneMsg:
		cmd = m.finishImage(msg)
	case externalEditDoneMsg:
		cmd = m.finishExternal(msg)
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	default:
		if m.prompt == promptImageFile {
			return m, m.updatePicker(msg)
		}
		return m, nil
	}
	m.followCaret()
	return m, cmd
}

func (m *EditorModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.confirm.Active() {
		return m.confirm.Update(msg)
	}
	switch {
	case m.prompt == promptImageFile:
		return m.updatePicker(msg)
	case m.prompt != promptNone:
		return m.updatePrompt(msg)
	}

	key := msg.String()
	switch {
	case key == "ctrl+c":
		return m.requestExit()
	case matches(key, Shortcuts.Save):
		return m.Save()
	case matches(key, Shortcuts.Undo):
		return m.Undo()
	case matches(key, Shortcuts.Copy):
		return m.copyMarkdown()
	case matches(key, Shortcuts.ExternalEdit):
		return m.openExternal()
	}

	switch menu := m.editor.Menu().(type) {
	case editor.SlashMenu:
		if handled, cmd := m.handleSlashKey(msg); handled {
			return cmd
		}
	case editor.BubbleMenu:
		if menu.Mode == editor.ModeFormat {
			if handled, cmd := m.handleBubbleKey(msg); handled {
				return cmd
			}
		}
	}

	switch key {
	case "esc":
		if _, open := m.editor.Menu().(editor.MenuClosed); !open {
			m.editor.Dismiss()
			return nil
		}
		return m.requestExit()
	case "enter":
		m.begin("new line")
		m.editor.SplitBlock()
	case "backspace":
		m.begin(actionDelete)
		m.editor.DeleteBackward()
	case "left", "right", "up", "down":
		m.editor.MoveCaret(direction(key), false)
	case "shift+left", "shift+right", "shift+up", "shift+down":
		m.editor.MoveCaret(direction(key[len("shift+"):]), true)
	case "ctrl+a":
		m.editor.SelectBlock()
	case "alt+up":
		m.begin("move block")
		m.editor.MoveUp()
	case "alt+down":
		m.begin("move block")
		m.editor.MoveDown()
	case "ctrl+d":
		m.begin("duplicate block")
		m.editor.DuplicateBlock()
	case "ctrl+k":
		m.begin("delete block")
		m.editor.DeleteBlock()
	case "ctrl+n":
		m.begin("new block")
		m.editor.InsertNext()
	case "ctrl+e":
		m.begin("inline code")
		m.editor.ToggleInlineCode()
	case "tab":
		m.begin(actionType)
		m.editor.InsertText("    ")
	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			m.begin(actionType)
			m.editor.InsertText(string(msg.Runes))
			if msg.Type == tea.KeySpace && len(msg.Runes) == 0 {
				m.editor.InsertText(" ")
			}
		}
	}
	return nil
}

func direction(key string) editor.Direction {
	switch key {
	case "left":
		return editor.Left
	case "right":
		return editor.Right
	case "up":
		return editor.Up
	}
	return editor.Down
}

// requestExit leaves the editor, asking first when there are unsaved changes
func (m *EditorModel) requestExit() tea.Cmd {
	exit := func() tea.Cmd {
		m.Close()
		slug := m.slug
		return func() tea.Msg { return ExitEditorMsg{Slug: slug} }
	}
	if !m.Dirty() || m.save == nil {
		return exit()
	}
	m.confirm.ShowDialog(
		"Unsaved changes",
		"Save changes before closing?",
		"Choosing no discards your edits.",
		false,
		56, 8,
		func() tea.Cmd {
			if cmd := m.Save(); m.Dirty() {
				return cmd
			}
			return exit()
		},
		exit,
	)
	return nil
}

// copyMarkdown puts the document on the clipboard as Markdown
func (m *EditorModel) copyMarkdown() tea.Cmd {
	if m.copy == nil {
		return nil
	}
	md, err := export.New().Markdown(m.content)
	if err != nil {
		return m.status.ShowError(fmt.Sprintf("Failed to convert: %v", err))
	}
	if err := m.copy(md); err != nil {
		return m.status.ShowError(fmt.Sprintf("Failed to copy: %v", err))
	}
	return m.status.ShowSuccess("Copied as Markdown")
}

// handleMouse maps clicks to blocks and rail drags to block moves
func (m *EditorModel) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scroll -= 3
		m.clampScroll()
		return nil
	case tea.MouseButtonWheelDown:
		m.scroll += 3
		m.clampScroll()
		return nil
	}

	row := msg.Y - headerRows + m.scroll
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || m.prompt != promptNone {
			return nil
		}
		block := m.currentLayout().blockAt(row)
		if block == nil {
			return nil
		}
		if msg.X < railWidth && m.editor.DragStart(block) {
			m.dragging = true
			return nil
		}
		m.editor.Focus()
		m.editor.PlaceCaretInBlock(block)
	case tea.MouseActionMotion:
		if !m.dragging {
			return nil
		}
		if ind, ok := m.editor.DragOver(msg.Y); ok {
			m.drop = &ind
		} else {
			m.drop = nil
		}
	case tea.MouseActionRelease:
		if !m.dragging {
			return nil
		}
		m.dragging, m.drop = false, nil
		m.begin("move block")
		if !m.editor.Drop() {
			m.editor.DragEnd()
		}
	}
	return nil
}
