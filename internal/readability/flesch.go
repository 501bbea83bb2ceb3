package readability

import (
	"strings"
	"unicode"
)

// Flesch implements the Flesch reading-ease formula for English text.
// Scores land roughly in [0,100]; 30-70 is the "moderate" band the
// quality assessor rewards. Known limitation: the formula is tuned for
// English, so CJK text yields ErrUnsupportedScript and callers fall back
// to a neutral score.
type Flesch struct{}

// Score computes 206.835 - 1.015*(words/sentences) - 84.6*(syllables/words).
func (Flesch) Score(text string) (float64, error) {
	words := latinWords(text)
	if len(words) == 0 {
		return 0, ErrUnsupportedScript
	}

	sentences := countSentences(text)
	if sentences == 0 {
		sentences = 1
	}

	syllables := 0
	for _, w := range words {
		syllables += countSyllables(w)
	}

	wordCount := float64(len(words))
	score := 206.835 - 1.015*(wordCount/float64(sentences)) - 84.6*(float64(syllables)/wordCount)
	return score, nil
}

func latinWords(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) || unicode.Is(unicode.Han, r)
	})

	var words []string
	for _, f := range fields {
		if isLatinWord(f) {
			words = append(words, strings.ToLower(f))
		}
	}
	return words
}

func isLatinWord(w string) bool {
	for _, r := range w {
		if r > unicode.MaxLatin1 && !unicode.In(r, unicode.Latin) {
			return false
		}
	}
	return w != ""
}

func countSentences(text string) int {
	n := 0
	for _, r := range text {
		switch r {
		case '.', '!', '?', '。', '！', '？':
			n++
		}
	}
	return n
}

// countSyllables estimates syllables as vowel groups, with the usual
// silent-e adjustment. Every word has at least one.
func countSyllables(word string) int {
	const vowels = "aeiouy"

	count := 0
	prevVowel := false
	for _, r := range word {
		isVowel := strings.ContainsRune(vowels, r)
		if isVowel && !prevVowel {
			count++
		}
		prevVowel = isVowel
	}

	if strings.HasSuffix(word, "e") && count > 1 {
		count--
	}
	if count == 0 {
		count = 1
	}
	return count
}
