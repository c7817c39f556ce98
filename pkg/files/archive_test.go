package files

import (
	"errors"
	"os"
	"reflect"
	"testing"
)

func TestArchiveAndUnarchivePost(t *testing.T) {
	chdirTemp(t)
	if err := InitProjectStructure(); err != nil {
		t.Fatal(err)
	}
	WritePost("old-news", "<h1>Old News</h1>")

	if err := ArchivePost("old-news"); err != nil {
		t.Fatalf("ArchivePost failed: %v", err)
	}
	if _, err := os.Stat(PostPath("old-news", false)); !os.IsNotExist(err) {
		t.Error("active file should be gone after archiving")
	}

	active, _ := ListPosts()
	archived, _ := ListArchivedPosts()
	if len(active) != 0 || !reflect.DeepEqual(archived, []string{"old-news"}) {
		t.Errorf("active = %v, archived = %v", active, archived)
	}

	post, err := ReadArchivedPost("old-news")
	if err != nil {
		t.Fatalf("ReadArchivedPost failed: %v", err)
	}
	if !post.Archived || post.Title != "Old News" {
		t.Errorf("unexpected archived post %+v", post)
	}

	if err := UnarchivePost("old-news"); err != nil {
		t.Fatalf("UnarchivePost failed: %v", err)
	}
	if _, err := ReadPost("old-news"); err != nil {
		t.Errorf("post should be active again: %v", err)
	}
}

func TestArchivePost_Errors(t *testing.T) {
	chdirTemp(t)

	if err := ArchivePost("missing"); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("expected ErrPostNotFound, got %v", err)
	}

	WritePost("dup", "<p>a</p>")
	os.MkdirAll(".quill/archive", 0755)
	os.WriteFile(PostPath("dup", true), []byte("<p>b</p>"), 0644)
	if err := ArchivePost("dup"); !errors.Is(err, ErrPostExists) {
		t.Errorf("expected ErrPostExists, got %v", err)
	}
}

func TestFindPost(t *testing.T) {
	chdirTemp(t)
	WritePost("live", "<p>a</p>")
	os.MkdirAll(".quill/archive", 0755)
	os.WriteFile(PostPath("shelved", true), []byte("<p>b</p>"), 0644)

	tests := []struct {
		slug     string
		archived bool
		wantErr  bool
	}{
		{slug: "live"},
		{slug: "shelved", archived: true},
		{slug: "nowhere", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			post, err := FindPost(tt.slug)
			if tt.wantErr {
				if !errors.Is(err, ErrPostNotFound) {
					t.Errorf("expected ErrPostNotFound, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FindPost failed: %v", err)
			}
			if post.Archived != tt.archived {
				t.Errorf("Archived = %v, expected %v", post.Archived, tt.archived)
			}
		})
	}
}

func TestDeleteArchivedPost(t *testing.T) {
	chdirTemp(t)
	os.MkdirAll(".quill/archive", 0755)
	os.WriteFile(PostPath("old", true), []byte("<p>b</p>"), 0644)

	if err := DeleteArchivedPost("old"); err != nil {
		t.Fatalf("DeleteArchivedPost failed: %v", err)
	}
	if err := DeleteArchivedPost("old"); err == nil {
		t.Error("expected an error for a missing archived post")
	}
}
