package names_test

import (
	"testing"

	"github.com/gnames/gnvern/pkg/names"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeScientificName(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "already normal",
			raw:      "canis lupus",
			expected: "canis lupus",
		},
		{
			name:     "mixed case",
			raw:      "Canis Lupus",
			expected: "canis lupus",
		},
		{
			name:     "extra whitespace",
			raw:      "  Canis   lupus\t familiaris ",
			expected: "canis lupus familiaris",
		},
		{
			name:     "blank",
			raw:      "   ",
			expected: "",
		},
		{
			name:     "empty",
			raw:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, names.NormalizeScientificName(tt.raw))
		})
	}
}

func TestNormalizeScientificNameIdempotent(t *testing.T) {
	inputs := []string{
		"Canis  lupus", "PANTHERA LEO", "  x  ", "", "Quercus róbur",
	}
	for _, s := range inputs {
		once := names.NormalizeScientificName(s)
		twice := names.NormalizeScientificName(once)
		assert.Equal(t, once, twice, "input %q", s)
	}
}

func TestBuildScientificNameFromParts(t *testing.T) {
	assert.Equal(t, "Canis lupus",
		names.BuildScientificNameFromParts("Canis", "lupus", ""))
	assert.Equal(t, "Canis lupus familiaris",
		names.BuildScientificNameFromParts("Canis", "lupus", "familiaris"))
	assert.Equal(t, "Canis",
		names.BuildScientificNameFromParts("Canis", "", ""))
	assert.Equal(t, "",
		names.BuildScientificNameFromParts("", " ", ""))
}

func TestBuildSubgenusForm(t *testing.T) {
	assert.Equal(t, "Pica (Pica) pica",
		names.BuildSubgenusForm("Pica", "Pica", "pica", ""))
	assert.Equal(t, "Pica (Pica) pica sericea",
		names.BuildSubgenusForm("Pica", "Pica", "pica", "sericea"))
	assert.Equal(t, "", names.BuildSubgenusForm("Pica", "", "pica", ""))
	assert.Equal(t, "", names.BuildSubgenusForm("", "Pica", "pica", ""))
	assert.Equal(t, "", names.BuildSubgenusForm("Pica", "Pica", "", ""))
}

func TestNormalizeCommonNameForMatching(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "plain",
			raw:      "Gray Wolf",
			expected: "gray wolf",
		},
		{
			name:     "hyphenated keeps word boundary",
			raw:      "Large-billed Crow",
			expected: "large billed crow",
		},
		{
			name:     "apostrophe",
			raw:      "Pallas's Cat",
			expected: "pallas s cat",
		},
		{
			name:     "punctuation only",
			raw:      "-- !!",
			expected: "",
		},
		{
			name:     "blank",
			raw:      "  ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names.NormalizeCommonNameForMatching(tt.raw)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, got, names.NormalizeCommonNameForMatching(got))
		})
	}
}

func TestRemoveDisambiguationSuffix(t *testing.T) {
	assert.Equal(t, "Robin", names.RemoveDisambiguationSuffix("Robin (bird)"))
	assert.Equal(t, "Robin", names.RemoveDisambiguationSuffix("Robin"))
	assert.Equal(t, "King Cobra",
		names.RemoveDisambiguationSuffix("King Cobra (snake) "))
	assert.Equal(t, "", names.RemoveDisambiguationSuffix("(bird)"))
}
