package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/quillpad/quill-terminal/pkg/editor"
	"github.com/quillpad/quill-terminal/pkg/models"
)

const (
	QuillDir     = ".quill"
	PostsDir     = "posts"
	ArchiveDir   = "archive"
	SettingsFile = "settings.yaml"
	PostExt      = ".html"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrPostExists   = errors.New("post already exists")
	ErrInvalidSlug  = errors.New("invalid post slug")
)

func InitProjectStructure() error {
	dirs := []string{
		QuillDir,
		filepath.Join(QuillDir, PostsDir),
		filepath.Join(QuillDir, ArchiveDir),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// ProjectExists reports whether the current directory holds a .quill project
func ProjectExists() bool {
	info, err := os.Stat(QuillDir)
	return err == nil && info.IsDir()
}

func validateSlug(slug string) error {
	if slug == "" || slug == "." || slug == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidSlug, slug)
	}
	if strings.ContainsAny(slug, `/\`) {
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidSlug, slug)
	}
	return nil
}

// SlugFromPath accepts a slug, a file name or a path and returns the slug
func SlugFromPath(path string) string {
	return strings.TrimSuffix(filepath.Base(path), PostExt)
}

// PostPath returns the on-disk location of a post
func PostPath(slug string, archived bool) string {
	if archived {
		return filepath.Join(QuillDir, ArchiveDir, slug+PostExt)
	}
	return filepath.Join(QuillDir, PostsDir, slug+PostExt)
}

func readPost(slug string, archived bool) (*models.Post, error) {
	if err := validateSlug(slug); err != nil {
		return nil, err
	}
	absPath := PostPath(slug, archived)

	content, err := os.ReadFile(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrPostNotFound, slug)
		}
		return nil, fmt.Errorf("failed to read post %s: %w", slug, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat post %s: %w", slug, err)
	}

	return &models.Post{
		Slug:     slug,
		Path:     absPath,
		Title:    TitleOf(slug, string(content)),
		Content:  string(content),
		Modified: info.ModTime(),
		Archived: archived,
	}, nil
}

func ReadPost(slug string) (*models.Post, error) {
	return readPost(slug, false)
}

// WritePost stores content as the post's HTML, creating the file if needed
func WritePost(slug string, content string) error {
	if err := validateSlug(slug); err != nil {
		return err
	}
	absPath := PostPath(slug, false)

	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory for post: %w", err)
	}

	if err := os.WriteFile(absPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write post %s: %w", slug, err)
	}

	return nil
}

// CreatePost writes a new post whose only block is the title heading
func CreatePost(title string) (*models.Post, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("post title cannot be empty")
	}
	slug := Slugify(title)
	if _, err := os.Stat(PostPath(slug, false)); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrPostExists, slug)
	}
	if _, err := os.Stat(PostPath(slug, true)); err == nil {
		return nil, fmt.Errorf("%w in archive: %s", ErrPostExists, slug)
	}

	doc, err := editor.ParseDocument("<p></p>")
	if err != nil {
		return nil, err
	}
	doc.SetTitle(title)

	if err := WritePost(slug, doc.HTML()); err != nil {
		return nil, err
	}
	return ReadPost(slug)
}

func DeletePost(slug string) error {
	if err := validateSlug(slug); err != nil {
		return err
	}
	absPath := PostPath(slug, false)

	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrPostNotFound, slug)
	}

	if err := os.Remove(absPath); err != nil {
		return fmt.Errorf("failed to delete post '%s': %w", slug, err)
	}

	return nil
}

func listSlugs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	slugs := []string{}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), PostExt) {
			slugs = append(slugs, strings.TrimSuffix(entry.Name(), PostExt))
		}
	}
	sort.Strings(slugs)

	return slugs, nil
}

// ListPosts returns the slugs of active posts in name order
func ListPosts() ([]string, error) {
	return listSlugs(filepath.Join(QuillDir, PostsDir))
}

// WriteFile writes content to a file outside the project (exports)
func WriteFile(path string, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}
