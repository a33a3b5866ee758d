package names

import (
	"strings"
	"unicode"
)

// epithetSuffixes are common Latin/Greek species-epithet endings.
var epithetSuffixes = []string{
	"ii", "ae", "is", "us", "um", "a", "ensis", "oides", "ica", "icum",
	"icus",
}

// genusSuffixes are common genus-name endings.
var genusSuffixes = []string{
	"us", "a", "um", "is", "on", "ia", "ops", "yx", "ax",
}

// LooksLikeScientificName reports whether a string handed over as a
// "common name" is most likely a latin binomial. It is a best-effort
// filter for provider rows where a scientific name was miskeyed into a
// vernacular field; false positives and negatives are acceptable.
func LooksLikeScientificName(name string) bool {
	words := strings.Fields(name)
	if len(words) < 2 || len(words) > 4 {
		return false
	}
	if !startsUpper(words[0]) {
		return false
	}
	if containsUpper(words[1]) {
		return false
	}
	if len(words) >= 3 {
		// "Canis lupus familiaris", "Pica pica subsp. pica"
		if isLowerOrDot(words[2]) {
			return true
		}
		if containsUpper(words[2]) {
			return false
		}
	}
	for _, sfx := range epithetSuffixes {
		if strings.HasSuffix(words[1], sfx) {
			return true
		}
	}
	if isLowerOrDot(words[1]) {
		for _, sfx := range genusSuffixes {
			if strings.HasSuffix(words[0], sfx) {
				return true
			}
		}
	}
	return false
}

func startsUpper(word string) bool {
	for _, r := range word {
		return unicode.IsUpper(r)
	}
	return false
}

func containsUpper(word string) bool {
	for _, r := range word {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// isLowerOrDot reports whether a word consists entirely of lowercase
// letters and periods, the shape of subspecies/variety markers.
func isLowerOrDot(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if r == '.' {
			continue
		}
		if !unicode.IsLower(r) {
			return false
		}
	}
	return true
}
