// Package vary rewrites a snippet of text deterministically so that two
// near-identical submissions stop colliding with the backend's similarity
// predicate. Pure function of (text, seed); no shared state.
package vary

import (
	"math/rand"
	"strings"
)

var endings = []string{"", ".", "!", "…", " ~"}

// Vary returns a lightly reworded copy of text. The same (text, seed) pair
// always yields the same output; different seeds spread outputs apart.
func Vary(text string, seed int64) string {
	trimmed := strings.TrimRight(text, " .!…~")
	if trimmed == "" {
		return text
	}

	rng := rand.New(rand.NewSource(seed))

	words := strings.Fields(trimmed)
	if len(words) > 0 && rng.Intn(2) == 0 {
		i := rng.Intn(len(words))
		words[i] = stretch(words[i])
	}

	return strings.Join(words, " ") + endings[rng.Intn(len(endings))]
}

// stretch doubles the last vowel of a word ("void" -> "voiid"). Words
// without vowels come back unchanged.
func stretch(word string) string {
	runes := []rune(word)
	for i := len(runes) - 1; i >= 0; i-- {
		if strings.ContainsRune("aeiouAEIOU", runes[i]) {
			out := make([]rune, 0, len(runes)+1)
			out = append(out, runes[:i+1]...)
			out = append(out, runes[i])
			out = append(out, runes[i+1:]...)
			return string(out)
		}
	}
	return word
}
