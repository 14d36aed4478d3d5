package intent

import "strings"

// Short tokens that look like gibberish to the heuristics below but are
// legitimate chat input.
var gibberishAllowlist = map[string]struct{}{
	"hi": {}, "yo": {}, "ok": {}, "oo": {}, "gm": {}, "gn": {},
	"sup": {}, "tnx": {}, "thx": {}, "ty": {}, "np": {},
}

var keyboardRows = []string{
	"qwertyuiop", "asdfghjkl", "zxcvbnm",
	"poiuytrewq", "lkjhgfdsa", "mnbvcxz",
}

const vowels = "aeiou"

// isGibberish reports whether normalized text looks like keyboard noise.
// maxConsonantRun bounds the longest consecutive consonant sequence
// tolerated before the text is rejected.
func isGibberish(text string, maxConsonantRun int) bool {
	compact := strings.Join(strings.Fields(text), " ")
	if compact == "" {
		return true
	}
	if _, ok := gibberishAllowlist[compact]; ok {
		return false
	}

	if hasRepeatedRun(compact, 4) {
		return true
	}
	if lowUniqueRatio(compact) {
		return true
	}
	if longestConsonantRun(compact) > maxConsonantRun {
		return true
	}
	if matchesKeyboardRow(compact) {
		return true
	}
	return false
}

// hasRepeatedRun reports a run of n or more identical characters.
func hasRepeatedRun(text string, n int) bool {
	run := 1
	prev := rune(-1)
	for _, r := range text {
		if r == prev {
			run++
			if run >= n {
				return true
			}
		} else {
			run = 1
			prev = r
		}
	}
	return false
}

// lowUniqueRatio flags text whose character variety is implausibly low.
// The bar is stricter for short strings.
func lowUniqueRatio(text string) bool {
	seen := map[rune]struct{}{}
	total := 0
	for _, r := range text {
		if r == ' ' {
			continue
		}
		seen[r] = struct{}{}
		total++
	}
	if total < 4 {
		return false
	}
	ratio := float64(len(seen)) / float64(total)
	if total < 10 {
		return ratio < 0.4
	}
	return ratio < 0.3
}

func longestConsonantRun(text string) int {
	run, longest := 0, 0
	for _, r := range text {
		if r >= 'a' && r <= 'z' && !strings.ContainsRune(vowels, r) {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	return longest
}

// matchesKeyboardRow flags words of four or more characters that are a
// substring of a qwerty row or its reverse.
func matchesKeyboardRow(text string) bool {
	for _, word := range strings.Fields(text) {
		if len(word) < 4 {
			continue
		}
		for _, row := range keyboardRows {
			if strings.Contains(row, word) {
				return true
			}
		}
	}
	return false
}
