package utils

import "fmt"

// FormatWordCount formats a word count for the status bar
func FormatWordCount(words int) string {
	switch {
	case words == 1:
		return "1 word"
	case words < 1000:
		return fmt.Sprintf("%d words", words)
	case words < 10000:
		return fmt.Sprintf("%.1fK words", float64(words)/1000)
	default:
		return fmt.Sprintf("%.0fK words", float64(words)/1000)
	}
}

// FormatReadingTime formats an estimated reading time in minutes
func FormatReadingTime(minutes int) string {
	if minutes < 1 {
		return "< 1 min read"
	}
	return fmt.Sprintf("%d min read", minutes)
}

// GetLengthStatus buckets a post by length
func GetLengthStatus(words int) string {
	switch {
	case words < 300:
		return "short"
	case words < 1500:
		return "standard"
	default:
		return "long"
	}
}
