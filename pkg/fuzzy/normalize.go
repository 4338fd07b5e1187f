// Package fuzzy grades spoken or typed answers against an expected string.
// It is tuned for speech-recognition noise: verbose transcripts, truncated
// transcripts, and tone-mark variance in romanized Chinese input.
package fuzzy

import "strings"

const punctuation = `.,!?;:'"()`

// pinyinToneFold maps toned pinyin vowels to their base letter. The ü
// family folds to "v", the conventional keyboard spelling.
var pinyinToneFold = map[rune]rune{
	'ā': 'a', 'á': 'a', 'ǎ': 'a', 'à': 'a',
	'ē': 'e', 'é': 'e', 'ě': 'e', 'è': 'e',
	'ī': 'i', 'í': 'i', 'ǐ': 'i', 'ì': 'i',
	'ō': 'o', 'ó': 'o', 'ǒ': 'o', 'ò': 'o',
	'ū': 'u', 'ú': 'u', 'ǔ': 'u', 'ù': 'u',
	'ǖ': 'v', 'ǘ': 'v', 'ǚ': 'v', 'ǜ': 'v',
}

// Normalize prepares text for comparison: lower-case, trimmed, punctuation
// stripped, internal whitespace collapsed, and (for "chinese") pinyin tone
// marks folded away. Idempotent.
func Normalize(text, language string) string {
	s := strings.ToLower(strings.TrimSpace(text))

	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(punctuation, r) {
			return -1
		}
		return r
	}, s)

	s = strings.Join(strings.Fields(s), " ")

	if language == "chinese" {
		s = strings.Map(func(r rune) rune {
			if base, ok := pinyinToneFold[r]; ok {
				return base
			}
			return r
		}, s)
	}

	return s
}
