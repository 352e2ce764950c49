package prompt

import "strings"

// EstimateTokens gives a rough token count, about 1.33 tokens per English
// word. Used for logging prompt and response sizes.
func EstimateTokens(text string) int {
	words := len(strings.Fields(text))
	if words == 0 {
		return 0
	}
	return max(int(float64(words)*1.33), 1)
}
