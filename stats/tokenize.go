package stats

import (
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"
)

// Tokenize splits text on UAX #29 word boundaries and returns the lower-cased
// tokens that contain at least one letter.
func Tokenize(text string) []string {
	var tokens []string
	seg := words.FromString(text)
	for seg.Next() {
		token := seg.Value()
		if !strings.ContainsFunc(token, unicode.IsLetter) {
			continue
		}
		tokens = append(tokens, strings.ToLower(token))
	}
	return tokens
}
