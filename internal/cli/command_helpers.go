package cli

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/quillpad/quill-terminal/pkg/files"
	"github.com/quillpad/quill-terminal/pkg/models"
)

// CommandContext manages project validation and common command context
type CommandContext struct {
	ProjectPath string
	Settings    *models.Settings
	validated   bool
}

// NewCommandContext creates a new command context
func NewCommandContext() *CommandContext {
	return &CommandContext{
		ProjectPath: files.QuillDir,
	}
}

// ValidateProject ensures the project is initialized
func (c *CommandContext) ValidateProject() error {
	if c.validated {
		return nil
	}

	if _, err := os.Stat(c.ProjectPath); os.IsNotExist(err) {
		return fmt.Errorf("no .quill directory found. Run 'quill init' first")
	}

	c.validated = true
	return nil
}

// LoadSettingsWithDefault loads settings or returns default if error
func (c *CommandContext) LoadSettingsWithDefault() *models.Settings {
	if c.Settings != nil {
		return c.Settings
	}

	settings, err := files.ReadSettings()
	if err != nil {
		PrintWarning("Could not read settings, using defaults: %v", err)
		settings = models.DefaultSettings()
	}

	c.Settings = settings
	return settings
}

// EditorLauncher opens a post's HTML in an external editor
type EditorLauncher struct {
	DefaultEditor string
}

// NewEditorLauncher creates a new editor launcher
func NewEditorLauncher() *EditorLauncher {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}
	return &EditorLauncher{
		DefaultEditor: editor,
	}
}

// Command builds the process that opens path in the configured editor
func (e *EditorLauncher) Command(path string) *exec.Cmd {
	parts := strings.Fields(e.DefaultEditor)
	if len(parts) > 1 {
		return exec.Command(parts[0], append(parts[1:], path)...)
	}
	return exec.Command(e.DefaultEditor, path)
}

// OpenFile opens a file in the configured editor
func (e *EditorLauncher) OpenFile(path string) error {
	editorCmd := e.Command(path)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	if err := editorCmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}

	return nil
}

// PostResolver finds posts by slug, file name, path or title
type PostResolver struct{}

// NewPostResolver creates a new post resolver
func NewPostResolver() *PostResolver {
	return &PostResolver{}
}

// Resolve returns the post a command argument refers to. Active posts win
// over archived ones; a title is matched after slugifying it.
func (r *PostResolver) Resolve(ref string) (*models.Post, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("post reference cannot be empty")
	}

	candidates := []string{files.SlugFromPath(ref)}
	if slug := files.Slugify(ref); slug != candidates[0] {
		candidates = append(candidates, slug)
	}

	var lastErr error
	for _, slug := range candidates {
		post, err := files.FindPost(slug)
		if err == nil {
			return post, nil
		}
		lastErr = err
	}

	if errors.Is(lastErr, files.ErrPostNotFound) || errors.Is(lastErr, files.ErrInvalidSlug) {
		return nil, fmt.Errorf("no post found matching '%s'", ref)
	}
	return nil, lastErr
}
