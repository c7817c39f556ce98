package utils

import "testing"

func TestFormatWordCount(t *testing.T) {
	tests := []struct {
		words    int
		expected string
	}{
		{0, "0 words"},
		{1, "1 word"},
		{42, "42 words"},
		{1234, "1.2K words"},
		{12000, "12K words"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := FormatWordCount(tt.words); got != tt.expected {
				t.Errorf("FormatWordCount(%d) = %s, expected %s", tt.words, got, tt.expected)
			}
		})
	}
}

func TestFormatReadingTime(t *testing.T) {
	tests := []struct {
		minutes  int
		expected string
	}{
		{0, "< 1 min read"},
		{1, "1 min read"},
		{12, "12 min read"},
	}

	for _, tt := range tests {
		if got := FormatReadingTime(tt.minutes); got != tt.expected {
			t.Errorf("FormatReadingTime(%d) = %s, expected %s", tt.minutes, got, tt.expected)
		}
	}
}

func TestGetLengthStatus(t *testing.T) {
	tests := []struct {
		words    int
		expected string
	}{
		{0, "short"},
		{299, "short"},
		{300, "standard"},
		{1499, "standard"},
		{1500, "long"},
	}

	for _, tt := range tests {
		if got := GetLengthStatus(tt.words); got != tt.expected {
			t.Errorf("GetLengthStatus(%d) = %s, expected %s", tt.words, got, tt.expected)
		}
	}
}
