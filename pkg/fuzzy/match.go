package fuzzy

import "strings"

// DefaultThreshold is the similarity cut-off used by the hands-free quiz.
const DefaultThreshold = 0.6

// MatchResult is the grader's verdict on one answer.
type MatchResult struct {
	Correct            bool
	Similarity         float64
	NormalizedInput    string
	NormalizedExpected string
}

// Grade compares a transcript against the expected answer and returns a
// verdict. Checks run in order and short-circuit on the first hit:
//
//  1. exact match after normalization (similarity 1.0)
//  2. transcript contains the expected answer (verbose transcript, 0.95)
//  3. expected answer contains the transcript (truncated transcript,
//     accepted when it covers at least 70% of the expected length)
//  4. normalized Levenshtein similarity against the threshold
//
// Lengths are rune counts, so CJK and accented input measure correctly.
func Grade(transcript, expected, language string, threshold float64) MatchResult {
	in := Normalize(transcript, language)
	exp := Normalize(expected, language)
	result := MatchResult{NormalizedInput: in, NormalizedExpected: exp}

	if in == exp {
		result.Correct = true
		result.Similarity = 1
		return result
	}

	inLen := len([]rune(in))
	expLen := len([]rune(exp))

	if expLen > 2 && strings.Contains(in, exp) {
		result.Correct = true
		result.Similarity = 0.95
		return result
	}

	if inLen > 2 && strings.Contains(exp, in) {
		if ratio := float64(inLen) / float64(expLen); ratio >= 0.7 {
			result.Correct = true
			result.Similarity = ratio
			return result
		}
	}

	result.Similarity = Similarity(in, exp)
	result.Correct = result.Similarity >= threshold
	return result
}

// Similarity returns 1 - editDistance/maxLen over runes. Two empty strings
// are identical (1); one empty string shares nothing with the other (0).
func Similarity(a, b string) float64 {
	ar := []rune(a)
	br := []rune(b)
	if len(ar) == 0 && len(br) == 0 {
		return 1
	}
	if len(ar) == 0 || len(br) == 0 {
		return 0
	}

	distance := levenshtein(ar, br)
	maxLen := len(ar)
	if len(br) > maxLen {
		maxLen = len(br)
	}
	return 1 - float64(distance)/float64(maxLen)
}

// levenshtein computes edit distance with the classic two-row DP.
func levenshtein(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			deletion := prev[j] + 1
			insertion := curr[j-1] + 1
			substitution := prev[j-1] + cost
			min := deletion
			if insertion < min {
				min = insertion
			}
			if substitution < min {
				min = substitution
			}
			curr[j] = min
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
