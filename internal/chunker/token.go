package chunker

import "unicode"

// EstimateTokens gives a rough token count: about 1.33 tokens per word in
// space-delimited scripts plus one per Han character.
func EstimateTokens(text string) int {
	words, han := 0, 0
	inWord := false
	for _, r := range text {
		switch {
		case unicode.Is(unicode.Han, r):
			han++
			inWord = false
		case unicode.IsSpace(r):
			inWord = false
		default:
			if !inWord {
				words++
				inWord = true
			}
		}
	}
	tokens := int(float64(words)*1.33) + han
	if tokens < 1 && words+han > 0 {
		tokens = 1
	}
	return tokens
}
