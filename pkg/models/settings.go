package models

// Settings represents the application configuration
type Settings struct {
	Editor EditorSettings `yaml:"editor"`
	Export ExportSettings `yaml:"export"`
	UI     UISettings     `yaml:"ui"`
}

// EditorSettings tunes the block editor
type EditorSettings struct {
	EchoThreshold   int `yaml:"echo_threshold"`
	DragMaxDistance int `yaml:"drag_max_distance"`
	UndoLimit       int `yaml:"undo_limit"`
}

// ExportSettings controls `quill export` defaults
type ExportSettings struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"` // "markdown", "html" or "text"
}

// UISettings controls UI preferences
type UISettings struct {
	ShowStats bool `yaml:"show_stats"`
	Width     int  `yaml:"width"` // 0 follows the terminal
}

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		Editor: EditorSettings{
			EchoThreshold:   10,
			DragMaxDistance: 6,
			UndoLimit:       100,
		},
		Export: ExportSettings{
			Path:   "./",
			Format: "markdown",
		},
		UI: UISettings{
			ShowStats: true,
			Width:     0,
		},
	}
}

// Merge fills zero values in s from the defaults
func (s *Settings) Merge() {
	d := DefaultSettings()
	if s.Editor.EchoThreshold <= 0 {
		s.Editor.EchoThreshold = d.Editor.EchoThreshold
	}
	if s.Editor.DragMaxDistance <= 0 {
		s.Editor.DragMaxDistance = d.Editor.DragMaxDistance
	}
	if s.Editor.UndoLimit <= 0 {
		s.Editor.UndoLimit = d.Editor.UndoLimit
	}
	if s.Export.Path == "" {
		s.Export.Path = d.Export.Path
	}
	if s.Export.Format == "" {
		s.Export.Format = d.Export.Format
	}
}
