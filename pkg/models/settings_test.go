package models

import "testing"

func TestSettingsMerge(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		expected Settings
	}{
		{
			name:     "zero value becomes defaults",
			settings: Settings{},
			expected: Settings{
				Editor: EditorSettings{EchoThreshold: 10, DragMaxDistance: 6, UndoLimit: 100},
				Export: ExportSettings{Path: "./", Format: "markdown"},
			},
		},
		{
			name: "explicit values are kept",
			settings: Settings{
				Editor: EditorSettings{EchoThreshold: 3, DragMaxDistance: 2, UndoLimit: 5},
				Export: ExportSettings{Path: "out", Format: "html"},
				UI:     UISettings{ShowStats: true, Width: 72},
			},
			expected: Settings{
				Editor: EditorSettings{EchoThreshold: 3, DragMaxDistance: 2, UndoLimit: 5},
				Export: ExportSettings{Path: "out", Format: "html"},
				UI:     UISettings{ShowStats: true, Width: 72},
			},
		},
		{
			name:     "negative values are replaced",
			settings: Settings{Editor: EditorSettings{EchoThreshold: -1}},
			expected: Settings{
				Editor: EditorSettings{EchoThreshold: 10, DragMaxDistance: 6, UndoLimit: 100},
				Export: ExportSettings{Path: "./", Format: "markdown"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.settings
			s.Merge()
			if s != tt.expected {
				t.Errorf("Merge() = %+v, want %+v", s, tt.expected)
			}
		})
	}
}
