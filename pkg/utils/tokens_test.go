package utils

import (
	"strings"
	"testing"
)

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{name: "empty", input: "", expected: 0},
		{name: "whitespace", input: "   \n\t", expected: 0},
		{name: "single short word", input: "a", expected: 1},
		// 44 chars -> 11, 9 words -> 11
		{name: "sentence", input: "The quick brown fox jumps over the lazy dog.", expected: 11},
		// 799 chars -> 199, 100 words -> 130
		{name: "hundred words", input: strings.TrimSpace(strings.Repeat("abcdefg ", 100)), expected: 164},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateTokens(tt.input); got != tt.expected {
				t.Errorf("EstimateTokens() = %d, expected %d", got, tt.expected)
			}
		})
	}
}

func TestFormatTokenCount(t *testing.T) {
	tests := []struct {
		tokens   int
		expected string
	}{
		{100, "~100 tokens"},
		{999, "~999 tokens"},
		{1000, "~1.0K tokens"},
		{1500, "~1.5K tokens"},
		{9999, "~10.0K tokens"},
		{10000, "~10K tokens"},
		{150000, "~150K tokens"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := FormatTokenCount(tt.tokens)
			if result != tt.expected {
				t.Errorf("FormatTokenCount(%d) = %s, expected %s",
					tt.tokens, result, tt.expected)
			}
		})
	}
}
