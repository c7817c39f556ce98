package files

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/quillpad/quill-terminal/pkg/models"
)

// ArchivePost moves a post into .quill/archive
func ArchivePost(slug string) error {
	return movePost(slug, false)
}

// UnarchivePost moves an archived post back into .quill/posts
func UnarchivePost(slug string) error {
	return movePost(slug, true)
}

func movePost(slug string, fromArchive bool) error {
	if err := validateSlug(slug); err != nil {
		return err
	}
	src := PostPath(slug, fromArchive)
	dst := PostPath(slug, !fromArchive)

	if _, err := os.Stat(src); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrPostNotFound, slug)
	}
	if _, err := os.Stat(dst); err == nil {
		return fmt.Errorf("%w at %s", ErrPostExists, dst)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create archive directory: %w", err)
	}
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("failed to move post '%s': %w", slug, err)
	}
	return nil
}

func ReadArchivedPost(slug string) (*models.Post, error) {
	return readPost(slug, true)
}

// ReadArchivedOrActivePost reads a post from either archive or active location
func ReadArchivedOrActivePost(slug string, isArchived bool) (*models.Post, error) {
	if isArchived {
		return ReadArchivedPost(slug)
	}
	return ReadPost(slug)
}

// FindPost looks in the active posts first, then the archive
func FindPost(slug string) (*models.Post, error) {
	post, err := ReadPost(slug)
	if err == nil {
		return post, nil
	}
	if archived, aerr := ReadArchivedPost(slug); aerr == nil {
		return archived, nil
	}
	return nil, err
}

func ListArchivedPosts() ([]string, error) {
	return listSlugs(filepath.Join(QuillDir, ArchiveDir))
}

// DeleteArchivedPost deletes an archived post
func DeleteArchivedPost(slug string) error {
	if err := validateSlug(slug); err != nil {
		return err
	}
	absPath := PostPath(slug, true)

	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return fmt.Errorf("archived post not found: %s", slug)
	}

	if err := os.Remove(absPath); err != nil {
		return fmt.Errorf("failed to delete archived post '%s': %w", slug, err)
	}

	return nil
}
