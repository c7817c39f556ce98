package utils

import (
	"fmt"
	"strings"
)

// EstimateTokens gives a rough token count for text sent to the model.
// It averages two rules of thumb: about 4 characters per token and about
// 1.3 tokens per word.
func EstimateTokens(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}

	charEstimate := len(text) / 4
	wordEstimate := int(float64(len(strings.Fields(text))) * 1.3)

	estimate := (charEstimate + wordEstimate) / 2
	if estimate < 1 {
		estimate = 1
	}
	return estimate
}

// FormatTokenCount formats the token count for display
func FormatTokenCount(tokens int) string {
	if tokens < 1000 {
		return fmt.Sprintf("~%d tokens", tokens)
	} else if tokens < 10000 {
		return fmt.Sprintf("~%.1fK tokens", float64(tokens)/1000)
	} else {
		return fmt.Sprintf("~%.0fK tokens", float64(tokens)/1000)
	}
}
