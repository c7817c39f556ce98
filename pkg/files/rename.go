package files

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/quillpad/quill-terminal/pkg/editor"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
	dashRuns     = regexp.MustCompile(`-+`)
)

// Slugify converts a title to a valid filename
// Examples:
//
//	"Hello World" → "hello-world"
//	"What's New?" → "whats-new"
//	"Release #2" → "release-2"
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = strings.ReplaceAll(slug, "'", "")
	slug = nonSlugChars.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	slug = dashRuns.ReplaceAllString(slug, "-")

	if slug == "" {
		slug = "untitled"
	}

	return slug
}

// ExtractDisplayName turns a slug back into a readable name
// Examples:
//
//	"hello-world" → "Hello World"
//	"release-2.html" → "Release 2"
func ExtractDisplayName(filename string) string {
	name := SlugFromPath(filename)
	parts := strings.Split(name, "-")

	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(string(part[0])) + part[1:]
		}
	}

	return strings.Join(parts, " ")
}

// TitleOf returns the post's first heading, falling back to the slug
func TitleOf(slug, content string) string {
	if doc, err := editor.ParseDocument(content); err == nil {
		if title := doc.Title(); title != "" {
			return title
		}
	}
	return ExtractDisplayName(slug)
}

// RenamePost gives a post a new title: its first h1 is rewritten and the
// file moves to the new slug. It returns the new slug.
func RenamePost(oldSlug, newTitle string) (string, error) {
	newTitle = strings.TrimSpace(newTitle)
	if newTitle == "" {
		return "", fmt.Errorf("new title cannot be empty")
	}

	post, err := ReadPost(oldSlug)
	if err != nil {
		return "", err
	}

	newSlug := Slugify(newTitle)
	if newSlug != oldSlug {
		if _, err := os.Stat(PostPath(newSlug, false)); err == nil {
			return "", fmt.Errorf("%w: %s", ErrPostExists, newSlug)
		}
	}

	doc, err := editor.ParseDocument(post.Content)
	if err != nil {
		return "", fmt.Errorf("failed to parse post %s: %w", oldSlug, err)
	}
	doc.SetTitle(newTitle)

	if err := WritePost(newSlug, doc.HTML()); err != nil {
		return "", err
	}
	if newSlug != oldSlug {
		if err := os.Remove(PostPath(oldSlug, false)); err != nil {
			return "", fmt.Errorf("failed to remove old post file: %w", err)
		}
	}

	return newSlug, nil
}
