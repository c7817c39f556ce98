package examples

import (
	"os"
	"testing"

	"github.com/quillpad/quill-terminal/pkg/editor"
	"github.com/quillpad/quill-terminal/pkg/files"
)

func TestGetExamples(t *testing.T) {
	tests := []struct {
		category string
		sets     int
	}{
		{"guide", 1},
		{"writing", 1},
		{"all", 2},
		{"unknown", 0},
	}
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			sets := GetExamples(tt.category)
			if len(sets) != tt.sets {
				t.Fatalf("GetExamples(%q) returned %d sets, want %d", tt.category, len(sets), tt.sets)
			}
			for _, set := range sets {
				if set.Category == "" {
					t.Errorf("set %q has no category", set.Name)
				}
			}
		})
	}
}

func TestExamplePostsAreWellFormed(t *testing.T) {
	seen := map[string]bool{}
	for _, set := range GetExamples("all") {
		for _, post := range set.Posts {
			if seen[post.Slug] {
				t.Errorf("duplicate slug %q", post.Slug)
			}
			seen[post.Slug] = true

			if post.Slug != files.Slugify("example "+post.Title) {
				t.Errorf("slug %q does not match title %q", post.Slug, post.Title)
			}
			doc, err := editor.ParseDocument(post.Content)
			if err != nil {
				t.Fatalf("%s: %v", post.Slug, err)
			}
			if doc.Title() != post.Title {
				t.Errorf("%s: heading %q, want %q", post.Slug, doc.Title(), post.Title)
			}
		}
	}
}

func TestInstall(t *testing.T) {
	tempDir := t.TempDir()
	oldWd, _ := os.Getwd()
	defer os.Chdir(oldWd)
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}
	if err := files.InitProjectStructure(); err != nil {
		t.Fatal(err)
	}

	written, err := Install("guide", false)
	if err != nil {
		t.Fatalf("Install failed: %v", err)
	}
	if len(written) != 2 {
		t.Fatalf("written = %v", written)
	}

	post, err := files.ReadPost("example-welcome-to-quill")
	if err != nil {
		t.Fatalf("ReadPost failed: %v", err)
	}
	if post.Title != "Welcome to Quill" {
		t.Errorf("title = %q", post.Title)
	}

	// A second run keeps what is there
	written, err = Install("guide", false)
	if err != nil {
		t.Fatalf("second Install failed: %v", err)
	}
	if len(written) != 0 {
		t.Errorf("existing posts should be skipped, wrote %v", written)
	}

	if _, err := Install("nope", false); err == nil {
		t.Error("unknown category should fail")
	}
}
