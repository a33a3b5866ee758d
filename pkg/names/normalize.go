// Package names provides pure functions for normalizing scientific and
// vernacular name-strings into comparison keys, for judging whether a
// string is a scientific name, and for rendering display capitalization.
// This is a pure package - no I/O, no state.
package names

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// disambigRe matches a trailing parenthetical disambiguation marker in
// encyclopedia-style titles, e.g. "Robin (bird)".
var disambigRe = regexp.MustCompile(`\s*\([^)]*\)\s*$`)

// NormalizeScientificName converts a raw scientific name into the
// canonical comparison key: trimmed, single-spaced, lowercased.
// Returns an empty string for blank input. Idempotent.
func NormalizeScientificName(raw string) string {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(strings.Join(fields, " "))
}

// BuildScientificNameFromParts joins non-blank name parts with a single
// space. Returns an empty string if no parts are present.
func BuildScientificNameFromParts(genus, species, infraName string) string {
	var parts []string
	for _, p := range []string{genus, species, infraName} {
		p = strings.TrimSpace(p)
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// BuildSubgenusForm produces the "Genus (Subgenus) species [infraName]"
// variant used for synonym lookup. Genus, subgenus and species must all
// be present, otherwise an empty string is returned.
func BuildSubgenusForm(genus, subgenus, species, infraName string) string {
	genus = strings.TrimSpace(genus)
	subgenus = strings.TrimSpace(subgenus)
	species = strings.TrimSpace(species)
	infraName = strings.TrimSpace(infraName)
	if genus == "" || subgenus == "" || species == "" {
		return ""
	}
	res := genus + " (" + subgenus + ") " + species
	if infraName != "" {
		res += " " + infraName
	}
	return res
}

// NormalizeCommonNameForMatching converts a vernacular name into its
// comparison key: case-folded, punctuation replaced by spaces so word
// boundaries survive, single-spaced. Returns an empty string when
// nothing alphanumeric remains. Idempotent.
func NormalizeCommonNameForMatching(raw string) string {
	folded := cases.Fold().String(raw)
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, folded)
	fields := strings.Fields(mapped)
	if len(fields) == 0 {
		return ""
	}
	return strings.Join(fields, " ")
}

// RemoveDisambiguationSuffix strips a trailing parenthetical
// disambiguation marker from an encyclopedia-style title:
// "Robin (bird)" becomes "Robin".
func RemoveDisambiguationSuffix(title string) string {
	return strings.TrimSpace(disambigRe.ReplaceAllString(title, ""))
}
