package names

import "strings"

// linkingWords are prepositions that signal the last word of a name is
// part of a longer phrase and should still be caps-checked.
var linkingWords = map[string]bool{
	"of": true, "de": true, "del": true, "di": true, "from": true,
}

// RuleLookup returns the correctly capitalized form of a lowercase word
// and whether a rule exists for it.
type RuleLookup func(word string) (string, bool)

// FindMissingCapsWords tokenizes a raw common name and returns every
// word that should have a capitalization rule but does not. The first
// word is skipped (always capitalized by convention). The last word is
// skipped too, unless the name contains a linking preposition or the
// last word carries trailing punctuation.
func FindMissingCapsWords(name string, hasRule func(string) bool) []string {
	words := strings.Fields(name)
	if len(words) < 2 {
		return nil
	}

	last := len(words) - 1
	checkLast := hasTrailingPunct(words[last])
	if !checkLast {
		for _, w := range words {
			if linkingWords[strings.ToLower(trimPunct(w))] {
				checkLast = true
				break
			}
		}
	}

	var missing []string
	for i := 1; i < len(words); i++ {
		if i == last && !checkLast {
			continue
		}
		core := strings.ToLower(trimPunct(words[i]))
		if core == "" {
			continue
		}
		if !hasRule(core) {
			missing = append(missing, core)
		}
	}
	return missing
}

// ApplyCapitalization renders a common name using a word-casing rule
// lookup. Tokens are split on spaces, edge punctuation is preserved, and
// each token's lowercase core is replaced by its rule form when one
// exists; unknown words stay lowercase. Irregular whitespace collapses
// to single spaces.
func ApplyCapitalization(name string, lookup RuleLookup) string {
	words := strings.Fields(name)
	res := make([]string, len(words))
	for i, w := range words {
		prefix, core, suffix := splitPunct(w)
		core = strings.ToLower(core)
		if fixed, ok := lookup(core); ok {
			core = fixed
		}
		res[i] = prefix + core + suffix
	}
	return strings.Join(res, " ")
}

// splitPunct separates leading and trailing punctuation from a token.
// Punctuation inside the token (apostrophes, hyphens) stays put.
func splitPunct(token string) (prefix, core, suffix string) {
	runes := []rune(token)
	start := 0
	for start < len(runes) && isEdgePunct(runes[start]) {
		start++
	}
	end := len(runes)
	for end > start && isEdgePunct(runes[end-1]) {
		end--
	}
	return string(runes[:start]), string(runes[start:end]), string(runes[end:])
}

func trimPunct(token string) string {
	_, core, _ := splitPunct(token)
	return core
}

func hasTrailingPunct(token string) bool {
	_, _, suffix := splitPunct(token)
	return suffix != ""
}

func isEdgePunct(r rune) bool {
	switch r {
	case '(', ')', '[', ']', '"', ',', '.', ';', ':', '!', '?':
		return true
	}
	return false
}
