package examples

import (
	"errors"
	"fmt"
	"os"

	"github.com/quillpad/quill-terminal/pkg/files"
)

// ExampleSet represents a collection of related example posts
type ExampleSet struct {
	Category    string
	Name        string
	Description string
	Posts       []ExamplePost
}

// ExamplePost is a ready-made post in editor HTML
type ExamplePost struct {
	Title   string
	Slug    string
	Content string
}

// Categories lists the example categories in display order
func Categories() []string {
	return []string{"guide", "writing"}
}

// GetExamples returns example sets for the given category, or every set
// for "all"
func GetExamples(category string) []ExampleSet {
	switch category {
	case "guide":
		return withCategory("guide", guideExamples())
	case "writing":
		return withCategory("writing", writingExamples())
	case "all":
		var all []ExampleSet
		for _, c := range Categories() {
			all = append(all, GetExamples(c)...)
		}
		return all
	default:
		return []ExampleSet{}
	}
}

func withCategory(category string, sets []ExampleSet) []ExampleSet {
	for i := range sets {
		sets[i].Category = category
	}
	return sets
}

// InstallPost writes an example post into .quill/posts. Existing posts are
// kept unless force is set; the bool reports whether the file was written.
func InstallPost(post ExamplePost, force bool) (bool, error) {
	if !force {
		if _, err := os.Stat(files.PostPath(post.Slug, false)); err == nil {
			return false, fmt.Errorf("%w at %s", files.ErrPostExists, files.PostPath(post.Slug, false))
		}
	}
	if err := files.WritePost(post.Slug, post.Content); err != nil {
		return false, err
	}
	return true, nil
}

// Install writes every post of the category and returns the slugs written
func Install(category string, force bool) ([]string, error) {
	sets := GetExamples(category)
	if len(sets) == 0 {
		return nil, fmt.Errorf("unknown example category: %s", category)
	}

	var written []string
	for _, set := range sets {
		for _, post := range set.Posts {
			ok, err := InstallPost(post, force)
			if errors.Is(err, files.ErrPostExists) {
				continue
			}
			if err != nil {
				return written, err
			}
			if ok {
				written = append(written, post.Slug)
			}
		}
	}
	return written, nil
}

func guideExamples() []ExampleSet {
	return []ExampleSet{
		{
			Name:        "Getting Started",
			Description: "A tour of the block editor",
			Posts: []ExamplePost{
				{
					Title: "Welcome to Quill",
					Slug:  "example-welcome-to-quill",
					Content: `<h1>Welcome to Quill</h1>` +
						`<p>Every paragraph, heading and list is a <strong>block</strong>. ` +
						`Press <code>/</code> at the start of a block to change its type.</p>` +
						`<h2>Moving around</h2>` +
						`<ul><li>Arrow keys move the caret</li><li>Shift and an arrow key selects text</li>` +
						`<li>Drag the ⠿ handle to move a block</li></ul>` +
						`<div class="callout">Select text to open the bubble menu for bold, italic and AI rewrites.</div>` +
						`<hr/>` +
						`<p>Posts are saved as plain HTML in .quill/posts.</p>`,
				},
				{
					Title: "Block Types",
					Slug:  "example-block-types",
					Content: `<h1>Block Types</h1>` +
						`<h2>Heading 2</h2><h3>Heading 3</h3>` +
						`<p>A paragraph with <em>emphasis</em> and a <a href="https://example.com">link</a>.</p>` +
						`<ol><li>Numbered</li><li>Lists</li></ol>` +
						`<blockquote>Quotes stand apart from the text around them.</blockquote>` +
						`<pre><code>fmt.Println("code blocks keep their spacing")</code></pre>` +
						`<div class="video-embed"><iframe src="https://www.youtube.com/embed/dQw4w9WgXcQ" allowfullscreen=""></iframe></div>`,
				},
			},
		},
	}
}

func writingExamples() []ExampleSet {
	return []ExampleSet{
		{
			Name:        "Writing Templates",
			Description: "Starting points for common posts",
			Posts: []ExamplePost{
				{
					Title: "Release Notes",
					Slug:  "example-release-notes",
					Content: `<h1>Release Notes</h1>` +
						`<p>Summarize the release in one or two sentences.</p>` +
						`<h2>New</h2><ul><li>Feature</li></ul>` +
						`<h2>Fixed</h2><ul><li>Bug</li></ul>` +
						`<div class="callout">Upgrade notes go here.</div>`,
				},
				{
					Title: "Weekly Update",
					Slug:  "example-weekly-update",
					Content: `<h1>Weekly Update</h1>` +
						`<h2>Done</h2><ul><li></li></ul>` +
						`<h2>Next</h2><ul><li></li></ul>` +
						`<h2>Blocked</h2><p></p>`,
				},
			},
		},
	}
}
