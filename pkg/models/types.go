package models

import "time"

// Post is a single document on disk. Its content is the editor's HTML
// serialization and nothing else.
type Post struct {
	Slug     string
	Path     string
	Title    string
	Content  string
	Modified time.Time
	Archived bool
}

// PostStats summarises a post for listings
type PostStats struct {
	Words          int `json:"words" yaml:"words"`
	ReadingMinutes int `json:"reading_minutes" yaml:"reading_minutes"`
	Blocks         int `json:"blocks" yaml:"blocks"`
}

// PostSummary is the row shown by `quill list`
type PostSummary struct {
	Slug     string    `json:"slug" yaml:"slug"`
	Title    string    `json:"title" yaml:"title"`
	Modified time.Time `json:"modified" yaml:"modified"`
	Archived bool      `json:"archived,omitempty" yaml:"archived,omitempty"`
	PostStats `yaml:",inline"`
}
