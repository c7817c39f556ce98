package tui

import (
	"strings"
	"testing"
)

func TestSearchBar_Matches(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		fields   []string
		expected bool
	}{
		{name: "empty query matches everything", query: "", fields: []string{"anything"}, expected: true},
		{name: "case insensitive", query: "GO", fields: []string{"Go Tips"}, expected: true},
		{name: "every word must match", query: "go tips", fields: []string{"Go Tips"}, expected: true},
		{name: "missing word", query: "go travel", fields: []string{"Go Tips"}, expected: false},
		{name: "words may span fields", query: "tips go-tips", fields: []string{"Go Tips", "go-tips"}, expected: true},
		{name: "no match", query: "rust", fields: []string{"Go Tips", "go-tips"}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSearchBar()
			s.SetValue(tt.query)
			if got := s.Matches(tt.fields...); got != tt.expected {
				t.Errorf("Matches(%v) with %q = %v, expected %v", tt.fields, tt.query, got, tt.expected)
			}
		})
	}
}

func TestSearchBar_Typing(t *testing.T) {
	s := NewSearchBar()
	s.SetWidth(60)

	s.Update(keyRunes("ignored"))
	if s.Value() != "" {
		t.Errorf("inactive search bar should ignore keys, got %q", s.Value())
	}

	s.SetActive(true)
	s.Update(keyRunes("draft"))
	if s.Value() != "draft" {
		t.Errorf("Value() = %q", s.Value())
	}
	if !s.Active() {
		t.Error("search bar should be active")
	}

	s.Reset()
	s.SetActive(false)
	if s.Value() != "" || s.Active() {
		t.Error("Reset and SetActive(false) should clear the bar")
	}
	if !strings.Contains(s.View(), "Filter posts...") {
		t.Error("placeholder should show when empty")
	}
}
