package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quillpad/quill-terminal/pkg/editor"
)

// promptKind is the host input the editor is currently collecting
type promptKind int

const (
	promptNone promptKind = iota
	promptRewrite
	promptImage
	promptVideoURL
	promptGallery
	promptImageFile
)

func (p promptKind) usesInput() bool {
	switch p {
	case promptImage, promptVideoURL, promptGallery:
		return true
	}
	return false
}

func (p promptKind) label() string {
	switch p {
	case promptRewrite:
		return "Ask AI:"
	case promptImage:
		return "Image prompt:"
	case promptVideoURL:
		return "Video URL:"
	case promptGallery:
		return "Image files:"
	}
	return ""
}

func (p promptKind) placeholder() string {
	switch p {
	case promptRewrite:
		return "e.g. make it more formal"
	case promptImage:
		return "Describe the image"
	case promptVideoURL:
		return "https://youtu.be/..."
	case promptGallery:
		return "a.png, b.jpg, ..."
	}
	return ""
}

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg"}

func newPromptInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 500
	ti.Width = 50
	return ti
}

func newImagePicker() filepicker.Model {
	fp := filepicker.New()
	fp.AllowedTypes = imageExtensions
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.AutoHeight = false
	fp.Height = 10
	return fp
}

// openPrompt starts collecting text input of the given kind
func (m *EditorModel) openPrompt(kind promptKind) tea.Cmd {
	m.prompt = kind
	m.input.Reset()
	m.input.Placeholder = kind.placeholder()
	return m.input.Focus()
}

// openPicker starts the image file picker in the working directory
func (m *EditorModel) openPicker() tea.Cmd {
	dir, err := os.Getwd()
	if err != nil {
		dir = "."
	}
	m.prompt = promptImageFile
	m.picker.CurrentDirectory = dir
	return m.picker.Init()
}

func (m *EditorModel) closePrompt() {
	m.prompt = promptNone
	m.input.Blur()
	m.input.Reset()
}

// handleHostRequest collects what a slash menu entry asked for
func (m *EditorModel) handleHostRequest(req editor.HostRequest) tea.Cmd {
	switch req {
	case editor.RequestImageFile:
		return m.openPicker()
	case editor.RequestGalleryFiles:
		return m.openPrompt(promptGallery)
	case editor.RequestVideoURL:
		return m.openPrompt(promptVideoURL)
	case editor.RequestImagePrompt:
		if m.ai == nil {
			return m.status.ShowWarning(aiUnavailable)
		}
		return m.openPrompt(promptImage)
	}
	return nil
}

// updatePrompt routes keys to the open text input
func (m *EditorModel) updatePrompt(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		kind := m.prompt
		m.closePrompt()
		if kind == promptRewrite {
			m.editor.CloseAIPrompt()
		}
		return nil
	case tea.KeyEnter:
		kind, value := m.prompt, strings.TrimSpace(m.input.Value())
		m.closePrompt()
		return m.submitPrompt(kind, value)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *EditorModel) submitPrompt(kind promptKind, value string) tea.Cmd {
	switch kind {
	case promptRewrite:
		return m.startRewrite(editor.ActionCustom, value)
	case promptImage:
		return m.startImage(value)
	case promptVideoURL:
		m.begin("insert video")
		if err := m.editor.InsertVideo(value); err != nil {
			return m.status.ShowError(fmt.Sprintf("Cannot embed video: %v", err))
		}
		return nil
	case promptGallery:
		return m.insertImageFiles(splitPaths(value))
	}
	return nil
}

// splitPaths splits a comma separated list of file paths
func splitPaths(value string) []string {
	var paths []string
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// insertImageFiles reads the files and inserts them as a figure or gallery
func (m *EditorModel) insertImageFiles(paths []string) tea.Cmd {
	var files []editor.ImageFile
	for _, p := range paths {
		f, err := editor.ImageFileFromPath(p)
		if err != nil {
			return m.status.ShowError(fmt.Sprintf("Cannot use %s: %v", filepath.Base(p), err))
		}
		files = append(files, f)
	}
	m.begin("insert image")
	if err := m.editor.InsertImages(files); err != nil {
		return m.status.ShowError(fmt.Sprintf("Cannot insert images: %v", err))
	}
	return nil
}

// updatePicker routes messages to the file picker
func (m *EditorModel) updatePicker(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc {
		m.prompt = promptNone
		return nil
	}
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.prompt = promptNone
		return m.insertImageFiles([]string{path})
	}
	if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		return m.status.ShowWarning(filepath.Base(path) + " is not an image")
	}
	return cmd
}

func (m *EditorModel) renderPicker() string {
	dir := m.picker.CurrentDirectory
	if dir == "" {
		dir = "."
	}
	return HeaderStyle.Render("Choose an image") + "\n" +
		DescriptionStyle.Render(dir) + "\n\n" +
		m.picker.View()
}
