// Package dedup rejects candidate posts that repeat or closely resemble recent ones.
package dedup

import (
	"strings"
	"unicode"
)

// IsDuplicate reports whether candidate exactly matches any history entry, or its similarity
// to any entry exceeds threshold. A score equal to threshold is not a duplicate.
func IsDuplicate(candidate string, history []string, threshold float64) bool {
	for _, h := range history {
		if h == candidate {
			return true
		}
	}
	for _, h := range history {
		if Similarity(candidate, h) > threshold {
			return true
		}
	}
	return false
}

// MaxSimilarity returns the highest similarity of candidate to history entries
func MaxSimilarity(candidate string, history []string) float64 {
	var best float64
	for _, h := range history {
		if s := Similarity(candidate, h); s > best {
			best = s
		}
	}
	return best
}

// Similarity is the Dice coefficient of character bigrams, in [0, 1].
// Whitespace is ignored and letters are compared case-insensitively.
// Identical normalized strings score 1, strings shorter than two characters score 0.
func Similarity(a, b string) float64 {
	na, nb := normalize(a), normalize(b)
	if string(na) == string(nb) {
		return 1
	}
	if len(na) < 2 || len(nb) < 2 {
		return 0
	}

	bigrams := make(map[[2]rune]int, len(na)-1)
	for i := 0; i < len(na)-1; i++ {
		bigrams[[2]rune{na[i], na[i+1]}]++
	}

	var common int
	for i := 0; i < len(nb)-1; i++ {
		bg := [2]rune{nb[i], nb[i+1]}
		if n := bigrams[bg]; n > 0 {
			bigrams[bg] = n - 1
			common++
		}
	}
	return 2 * float64(common) / float64(len(na)+len(nb)-2)
}

func normalize(s string) []rune {
	res := make([]rune, 0, len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsSpace(r) {
			continue
		}
		res = append(res, r)
	}
	return res
}
